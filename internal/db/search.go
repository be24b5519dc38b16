package db

import (
	"strings"
	"time"

	"github.com/go-pg/pg/v10/orm"
)

// Sort selects an allow-listed order by key. Unknown keys fall back to the default order.
type Sort struct {
	By         string
	Descending bool
}

type sortColumns struct {
	keys map[string]string
	def  string
	pk   string
}

// exprs returns ORDER BY expressions; the primary key always comes last as a tie-break.
func (s sortColumns) exprs(sort Sort) []string {
	col, ok := s.keys[strings.ToLower(strings.TrimSpace(sort.By))]
	if !ok {
		return []string{s.def, s.pk + " ASC"}
	}

	dir := " ASC"
	if sort.Descending {
		dir = " DESC"
	}

	return []string{col + dir, s.pk + " ASC"}
}

func (s sortColumns) apply(q *orm.Query, sort Sort) *orm.Query {
	for _, expr := range s.exprs(sort) {
		q = q.OrderExpr(expr)
	}
	return q
}

var (
	newsOrder = sortColumns{
		keys: map[string]string{
			"title":       `"t"."title"`,
			"createddate": `"t"."createdAt"`,
			"category":    `"category"."name"`,
		},
		def: `"t"."createdAt" DESC`,
		pk:  `"t"."newsId"`,
	}

	categoryOrder = sortColumns{
		keys: map[string]string{
			"name":   `"t"."name"`,
			"status": `"t"."isActive"`,
		},
		def: `"t"."name" ASC`,
		pk:  `"t"."categoryId"`,
	}

	accountOrder = sortColumns{
		keys: map[string]string{
			"name":  `"t"."name"`,
			"email": `"t"."email"`,
			"role":  `"t"."role"`,
		},
		def: `"t"."name" ASC`,
		pk:  `"t"."accountId"`,
	}
)

// NewsSearch holds optional news filters. Nil or blank fields are not applied.
type NewsSearch struct {
	SearchTerm  string
	Status      *bool
	CategoryID  *int
	CreatedByID *int
	TagID       *int
	FromDate    *time.Time
	ToDate      *time.Time
}

func (s *NewsSearch) Apply(q *orm.Query) *orm.Query {
	if pattern, ok := likePattern(s.SearchTerm); ok {
		q = q.WhereGroup(func(q *orm.Query) (*orm.Query, error) {
			return q.
				WhereOr(`"t"."title" ILIKE ?`, pattern).
				WhereOr(`"t"."headline" ILIKE ?`, pattern).
				WhereOr(`"t"."content" ILIKE ?`, pattern), nil
		})
	}
	if s.Status != nil {
		q = q.Where(`"t"."status" = ?`, *s.Status)
	}
	if s.CategoryID != nil {
		q = q.Where(`"t"."categoryId" = ?`, *s.CategoryID)
	}
	if s.CreatedByID != nil {
		q = q.Where(`"t"."createdById" = ?`, *s.CreatedByID)
	}
	if s.TagID != nil {
		q = q.Where(`? = ANY("t"."tagIds")`, *s.TagID)
	}
	if s.FromDate != nil {
		q = q.Where(`"t"."createdAt" >= ?`, *s.FromDate)
	}
	if s.ToDate != nil {
		q = q.Where(`"t"."createdAt" <= ?`, *s.ToDate)
	}

	return q
}

// CategorySearch holds optional category filters.
type CategorySearch struct {
	SearchTerm       string
	IsActive         *bool
	ParentCategoryID *int
}

func (s *CategorySearch) Apply(q *orm.Query) *orm.Query {
	if pattern, ok := likePattern(s.SearchTerm); ok {
		q = q.WhereGroup(func(q *orm.Query) (*orm.Query, error) {
			return q.
				WhereOr(`"t"."name" ILIKE ?`, pattern).
				WhereOr(`"t"."description" ILIKE ?`, pattern), nil
		})
	}
	if s.IsActive != nil {
		q = q.Where(`"t"."isActive" = ?`, *s.IsActive)
	}
	if s.ParentCategoryID != nil {
		q = q.Where(`"t"."parentCategoryId" = ?`, *s.ParentCategoryID)
	}

	return q
}

// AccountSearch holds optional account filters.
type AccountSearch struct {
	SearchTerm string
	Role       *int
}

func (s *AccountSearch) Apply(q *orm.Query) *orm.Query {
	if pattern, ok := likePattern(s.SearchTerm); ok {
		q = q.WhereGroup(func(q *orm.Query) (*orm.Query, error) {
			return q.
				WhereOr(`"t"."name" ILIKE ?`, pattern).
				WhereOr(`"t"."email" ILIKE ?`, pattern), nil
		})
	}
	if s.Role != nil {
		q = q.Where(`"t"."role" = ?`, *s.Role)
	}

	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a substring ILIKE pattern; ok is false for a blank term.
func likePattern(term string) (string, bool) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", false
	}

	return "%" + likeEscaper.Replace(term) + "%", true
}
