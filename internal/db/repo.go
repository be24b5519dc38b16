package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/daniilsolovey/fu-news/internal/paging"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

const (
	newsIDPrefix = "NEWS"

	foreignKeyViolation = "23503"
)

// ErrReferenced is returned when a delete is blocked by a foreign key.
var ErrReferenced = errors.New("row is still referenced")

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// InTx runs fn with a repository bound to a single transaction.
// Inside an existing transaction fn joins it.
func (r *Repository) InTx(ctx context.Context, fn func(tx *Repository) error) error {
	db, ok := r.db.(*pg.DB)
	if !ok {
		return fn(r)
	}

	return db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		return fn(New(tx))
	})
}

// snapshot runs fn so that every query inside it sees the same data state.
func (r *Repository) snapshot(ctx context.Context, fn func(db pg.DBI) error) error {
	db, ok := r.db.(*pg.DB)
	if !ok {
		return fn(r.db)
	}

	return db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		if _, err := tx.ExecContext(ctx, `SET TRANSACTION ISOLATION LEVEL REPEATABLE READ READ ONLY`); err != nil {
			return fmt.Errorf("set isolation level: %w", err)
		}
		return fn(tx)
	})
}

// page counts the filtered query and selects its window from one snapshot.
func page(q *orm.Query, order sortColumns, sort Sort, p paging.Params) (int, error) {
	p = p.Normalize()

	count, err := q.Clone().Count()
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	if p.PastEnd(count) {
		return count, nil
	}

	err = order.apply(q, sort).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Select()
	if err != nil {
		return 0, fmt.Errorf("select: %w", err)
	}

	return count, nil
}

// NewsArticles returns a window of news with category and creator loaded plus the filtered total.
func (r *Repository) NewsArticles(ctx context.Context, search NewsSearch, sort Sort, p paging.Params) ([]News, int, error) {
	var (
		news  []News
		count int
	)

	err := r.snapshot(ctx, func(db pg.DBI) (err error) {
		q := db.ModelContext(ctx, &news).
			Relation(Columns.News.Category).
			Relation(Columns.News.CreatedBy)
		count, err = page(search.Apply(q), newsOrder, sort, p)
		return err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query news page: %w", err)
	}

	return news, count, nil
}

// NewsByID returns a news article with category, creator and editor, or nil if absent.
func (r *Repository) NewsByID(ctx context.Context, id string) (*News, error) {
	news := &News{}
	err := r.db.ModelContext(ctx, news).
		Relation(Columns.News.Category).
		Relation(Columns.News.CreatedBy).
		Relation(Columns.News.UpdatedBy).
		Where(`"t"."newsId" = ?`, id).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get news by id: %w", err)
	}

	return news, nil
}

func (r *Repository) ActiveNews(ctx context.Context) ([]News, error) {
	var news []News
	err := r.db.ModelContext(ctx, &news).
		Relation(Columns.News.Category).
		Relation(Columns.News.CreatedBy).
		Where(`"t"."status" = ?`, true).
		OrderExpr(`"t"."createdAt" DESC`).
		OrderExpr(`"t"."newsId" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query active news: %w", err)
	}

	return news, nil
}

func (r *Repository) NewsByCreator(ctx context.Context, accountID int) ([]News, error) {
	var news []News
	err := r.db.ModelContext(ctx, &news).
		Relation(Columns.News.Category).
		Where(`"t"."createdById" = ?`, accountID).
		OrderExpr(`"t"."createdAt" DESC`).
		OrderExpr(`"t"."newsId" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query news by creator: %w", err)
	}

	return news, nil
}

// NewsBetween returns news created within [from, to], newest first.
func (r *Repository) NewsBetween(ctx context.Context, from, to time.Time) ([]News, error) {
	var news []News
	err := r.db.ModelContext(ctx, &news).
		Relation(Columns.News.Category).
		Relation(Columns.News.CreatedBy).
		Where(`"t"."createdAt" >= ?`, from).
		Where(`"t"."createdAt" <= ?`, to).
		OrderExpr(`"t"."createdAt" DESC`).
		OrderExpr(`"t"."newsId" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query news by period: %w", err)
	}

	return news, nil
}

func (r *Repository) CountNewsByCreator(ctx context.Context, accountID int) (int, error) {
	count, err := r.db.ModelContext(ctx, (*News)(nil)).
		Where(`"t"."createdById" = ?`, accountID).
		Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count news by creator: %w", err)
	}

	return count, nil
}

// NextNewsID returns the id following the highest NEWSnnnn id. Call it inside the
// transaction that inserts the news after LockNews.
func (r *Repository) NextNewsID(ctx context.Context) (string, error) {
	var last int
	_, err := r.db.QueryOneContext(ctx, pg.Scan(&last), `
		SELECT COALESCE(MAX(CAST(SUBSTRING("newsId" FROM 5) AS integer)), 0)
		FROM "news"
		WHERE "newsId" ~ '^NEWS[0-9]+$'`)
	if err != nil {
		return "", fmt.Errorf("failed to get last news id: %w", err)
	}

	return fmt.Sprintf("%s%04d", newsIDPrefix, last+1), nil
}

// LockNews serializes id generation until the surrounding transaction ends.
func (r *Repository) LockNews(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `LOCK TABLE "news" IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return fmt.Errorf("failed to lock news: %w", err)
	}
	return nil
}

func (r *Repository) AddNews(ctx context.Context, news *News) error {
	if news.TagIDs == nil {
		news.TagIDs = []int{}
	}
	if _, err := r.db.ModelContext(ctx, news).Insert(); err != nil {
		return fmt.Errorf("failed to insert news: %w", err)
	}
	return nil
}

// UpdateNews overwrites all columns of the news row, tags included.
func (r *Repository) UpdateNews(ctx context.Context, news *News) (bool, error) {
	if news.TagIDs == nil {
		news.TagIDs = []int{}
	}
	res, err := r.db.ModelContext(ctx, news).
		ExcludeColumn(Columns.News.CreatedAt, Columns.News.CreatedByID).
		WherePK().
		Update()
	if err != nil {
		return false, fmt.Errorf("failed to update news: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

func (r *Repository) DeleteNews(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ModelContext(ctx, &News{ID: id}).WherePK().Delete()
	if err != nil {
		return false, fmt.Errorf("failed to delete news: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

func (r *Repository) Categories(ctx context.Context, search CategorySearch, sort Sort, p paging.Params) ([]Category, int, error) {
	var (
		categories []Category
		count      int
	)

	err := r.snapshot(ctx, func(db pg.DBI) (err error) {
		q := db.ModelContext(ctx, &categories).
			Relation(Columns.Category.ParentCategory)
		count, err = page(search.Apply(q), categoryOrder, sort, p)
		return err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query categories page: %w", err)
	}

	return categories, count, nil
}

func (r *Repository) CategoryByID(ctx context.Context, id int) (*Category, error) {
	category := &Category{}
	err := r.db.ModelContext(ctx, category).
		Relation(Columns.Category.ParentCategory).
		Where(`"t"."categoryId" = ?`, id).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	return category, nil
}

func (r *Repository) ActiveCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := r.db.ModelContext(ctx, &categories).
		Relation(Columns.Category.ParentCategory).
		Where(`"t"."isActive" = ?`, true).
		OrderExpr(`"t"."name" ASC`).
		OrderExpr(`"t"."categoryId" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query active categories: %w", err)
	}

	return categories, nil
}

func (r *Repository) CategoryHasNews(ctx context.Context, id int) (bool, error) {
	exists, err := r.db.ModelContext(ctx, (*News)(nil)).
		Where(`"t"."categoryId" = ?`, id).
		Exists()
	if err != nil {
		return false, fmt.Errorf("failed to check category news: %w", err)
	}

	return exists, nil
}

// CategoryHasChildren reports whether any category names id as its parent.
func (r *Repository) CategoryHasChildren(ctx context.Context, id int) (bool, error) {
	exists, err := r.db.ModelContext(ctx, (*Category)(nil)).
		Where(`"t"."parentCategoryId" = ?`, id).
		Exists()
	if err != nil {
		return false, fmt.Errorf("failed to check child categories: %w", err)
	}

	return exists, nil
}

func (r *Repository) AddCategory(ctx context.Context, category *Category) error {
	if _, err := r.db.ModelContext(ctx, category).Insert(); err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *Repository) UpdateCategory(ctx context.Context, category *Category) (bool, error) {
	res, err := r.db.ModelContext(ctx, category).WherePK().Update()
	if err != nil {
		return false, fmt.Errorf("failed to update category: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ModelContext(ctx, &Category{ID: id}).WherePK().Delete()
	if err != nil {
		return false, fmt.Errorf("failed to delete category: %w", referenced(err))
	}

	return res.RowsAffected() > 0, nil
}

func (r *Repository) Accounts(ctx context.Context, search AccountSearch, sort Sort, p paging.Params) ([]Account, int, error) {
	var (
		accounts []Account
		count    int
	)

	err := r.snapshot(ctx, func(db pg.DBI) (err error) {
		q := db.ModelContext(ctx, &accounts)
		count, err = page(search.Apply(q), accountOrder, sort, p)
		return err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query accounts page: %w", err)
	}

	return accounts, count, nil
}

func (r *Repository) AccountByID(ctx context.Context, id int) (*Account, error) {
	account := &Account{}
	err := r.db.ModelContext(ctx, account).
		Where(`"t"."accountId" = ?`, id).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

func (r *Repository) AccountByEmail(ctx context.Context, email string) (*Account, error) {
	account := &Account{}
	err := r.db.ModelContext(ctx, account).
		Where(`lower("t"."email") = lower(?)`, email).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

// EmailExists checks email uniqueness, ignoring the account excludeID when set.
func (r *Repository) EmailExists(ctx context.Context, email string, excludeID *int) (bool, error) {
	q := r.db.ModelContext(ctx, (*Account)(nil)).
		Where(`lower("t"."email") = lower(?)`, email)
	if excludeID != nil {
		q = q.Where(`"t"."accountId" <> ?`, *excludeID)
	}

	exists, err := q.Exists()
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return exists, nil
}

func (r *Repository) AccountHasNews(ctx context.Context, id int) (bool, error) {
	exists, err := r.db.ModelContext(ctx, (*News)(nil)).
		Where(`"t"."createdById" = ?`, id).
		Exists()
	if err != nil {
		return false, fmt.Errorf("failed to check account news: %w", err)
	}

	return exists, nil
}

func (r *Repository) AddAccount(ctx context.Context, account *Account) error {
	if _, err := r.db.ModelContext(ctx, account).Insert(); err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (r *Repository) UpdateAccount(ctx context.Context, account *Account) (bool, error) {
	res, err := r.db.ModelContext(ctx, account).WherePK().Update()
	if err != nil {
		return false, fmt.Errorf("failed to update account: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

func (r *Repository) DeleteAccount(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ModelContext(ctx, &Account{ID: id}).WherePK().Delete()
	if err != nil {
		return false, fmt.Errorf("failed to delete account: %w", referenced(err))
	}

	return res.RowsAffected() > 0, nil
}

func (r *Repository) Tags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	err := r.db.ModelContext(ctx, &tags).
		OrderExpr(`"t"."name" ASC`).
		OrderExpr(`"t"."tagId" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}

	return tags, nil
}

func (r *Repository) TagsByIDs(ctx context.Context, tagIDs []int) ([]Tag, error) {
	if len(tagIDs) == 0 {
		return []Tag{}, nil
	}

	tags := []Tag{}
	err := r.db.ModelContext(ctx, &tags).
		Where(`"t"."tagId" IN (?)`, pg.In(tagIDs)).
		OrderExpr(`"t"."name" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query tags by ids: %w", err)
	}

	return tags, nil
}

func (r *Repository) TagByID(ctx context.Context, id int) (*Tag, error) {
	tag := &Tag{}
	err := r.db.ModelContext(ctx, tag).
		Where(`"t"."tagId" = ?`, id).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get tag by id: %w", err)
	}

	return tag, nil
}

// TagNameExists checks case-insensitive tag name uniqueness, ignoring the tag excludeID when set.
func (r *Repository) TagNameExists(ctx context.Context, name string, excludeID *int) (bool, error) {
	q := r.db.ModelContext(ctx, (*Tag)(nil)).
		Where(`lower("t"."name") = lower(?)`, name)
	if excludeID != nil {
		q = q.Where(`"t"."tagId" <> ?`, *excludeID)
	}

	exists, err := q.Exists()
	if err != nil {
		return false, fmt.Errorf("failed to check tag name: %w", err)
	}

	return exists, nil
}

func (r *Repository) TagHasNews(ctx context.Context, id int) (bool, error) {
	exists, err := r.db.ModelContext(ctx, (*News)(nil)).
		Where(`? = ANY("t"."tagIds")`, id).
		Exists()
	if err != nil {
		return false, fmt.Errorf("failed to check tag news: %w", err)
	}

	return exists, nil
}

func (r *Repository) AddTag(ctx context.Context, tag *Tag) error {
	if _, err := r.db.ModelContext(ctx, tag).Insert(); err != nil {
		return fmt.Errorf("failed to insert tag: %w", err)
	}
	return nil
}

func (r *Repository) UpdateTag(ctx context.Context, tag *Tag) (bool, error) {
	res, err := r.db.ModelContext(ctx, tag).WherePK().Update()
	if err != nil {
		return false, fmt.Errorf("failed to update tag: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

func (r *Repository) DeleteTag(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ModelContext(ctx, &Tag{ID: id}).WherePK().Delete()
	if err != nil {
		return false, fmt.Errorf("failed to delete tag: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

// referenced translates a foreign key violation into ErrReferenced.
func referenced(err error) error {
	var pgErr pg.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == foreignKeyViolation {
		return fmt.Errorf("%w: %s", ErrReferenced, pgErr.Field('M'))
	}
	return err
}
