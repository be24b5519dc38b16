package newsportal

import (
	"cmp"
	"context"
	"fmt"
	"strings"

	"github.com/daniilsolovey/fu-news/internal/db"
	"github.com/daniilsolovey/fu-news/internal/paging"
)

var tagSorting = paging.Sorting[Tag]{
	Keys: map[string]func(a, b Tag) int{
		"name": func(a, b Tag) int { return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
	},
	Default: paging.Order[Tag]{
		Compare: func(a, b Tag) int { return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
	},
}

// Tags pages the whole tag set in memory.
func (m *Manager) Tags(ctx context.Context, q TagQuery) (paging.Envelope[Tag], error) {
	list, err := m.db.Tags(ctx)
	if err != nil {
		return paging.Envelope[Tag]{}, fmt.Errorf("db get tags: %w", err)
	}

	filters := []paging.Predicate[Tag]{
		paging.Contains(q.SearchTerm,
			func(t Tag) string { return t.Name },
			func(t Tag) string { return t.Note },
		),
	}

	items, total := paging.Query[Tag]{
		Filters:    filters,
		SortKey:    q.Sort.By,
		Descending: q.Sort.Descending,
		Params:     q.Paging,
	}.Run(NewTags(list), tagSorting)

	return paging.NewEnvelope(items, total, q.Paging), nil
}

// AllTags returns every tag ordered by name.
func (m *Manager) AllTags(ctx context.Context) ([]Tag, error) {
	list, err := m.db.Tags(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get tags: %w", err)
	}

	return NewTags(list), nil
}

func (m *Manager) TagByID(ctx context.Context, id int) (*Tag, error) {
	tag, err := m.db.TagByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get tag: %w", err)
	} else if tag == nil {
		return nil, ErrNotFound
	}

	t := NewTag(tag)
	return &t, nil
}

func (m *Manager) CreateTag(ctx context.Context, in TagInput) (*Tag, error) {
	exists, err := m.db.TagNameExists(ctx, in.Name, nil)
	if err != nil {
		return nil, fmt.Errorf("db check tag name: %w", err)
	} else if exists {
		return nil, ErrTagNameExists
	}

	tag := &db.Tag{Name: in.Name, Note: in.Note}
	if err := m.db.AddTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("db add tag: %w", err)
	}

	t := NewTag(tag)
	return &t, nil
}

func (m *Manager) UpdateTag(ctx context.Context, id int, in TagInput) (*Tag, error) {
	exists, err := m.db.TagNameExists(ctx, in.Name, &id)
	if err != nil {
		return nil, fmt.Errorf("db check tag name: %w", err)
	} else if exists {
		return nil, ErrTagNameExists
	}

	tag := &db.Tag{ID: id, Name: in.Name, Note: in.Note}
	ok, err := m.db.UpdateTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("db update tag: %w", err)
	} else if !ok {
		return nil, ErrNotFound
	}

	t := NewTag(tag)
	return &t, nil
}

// DeleteTag refuses to remove a tag that news still carry. Tag ids in news have no
// foreign key, so the check runs under the news table lock that news writers take.
func (m *Manager) DeleteTag(ctx context.Context, id int) error {
	return m.db.InTx(ctx, func(tx Repository) error {
		if err := tx.LockNews(ctx); err != nil {
			return fmt.Errorf("db lock news: %w", err)
		}

		used, err := tx.TagHasNews(ctx, id)
		if err != nil {
			return fmt.Errorf("db check tag news: %w", err)
		} else if used {
			return ErrHasNews
		}

		ok, err := tx.DeleteTag(ctx, id)
		if err != nil {
			return fmt.Errorf("db delete tag: %w", err)
		} else if !ok {
			return ErrNotFound
		}

		return nil
	})
}
