package newsportal

import (
	"context"
	"errors"
	"fmt"

	"github.com/daniilsolovey/fu-news/internal/db"
	"github.com/daniilsolovey/fu-news/internal/paging"
)

func (m *Manager) Categories(ctx context.Context, q CategoryQuery) (paging.Envelope[Category], error) {
	list, total, err := m.db.Categories(ctx, q.CategorySearch, q.Sort, q.Paging)
	if err != nil {
		return paging.Envelope[Category]{}, fmt.Errorf("db get categories: %w", err)
	}

	return paging.NewEnvelope(NewCategories(list), total, q.Paging), nil
}

func (m *Manager) ActiveCategories(ctx context.Context) ([]Category, error) {
	list, err := m.db.ActiveCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get active categories: %w", err)
	}

	return NewCategories(list), nil
}

func (m *Manager) CategoryByID(ctx context.Context, id int) (*Category, error) {
	category, err := m.db.CategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get category: %w", err)
	} else if category == nil {
		return nil, ErrNotFound
	}

	c := NewCategory(category)
	return &c, nil
}

func (m *Manager) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	if err := m.checkParent(ctx, nil, in.ParentCategoryID); err != nil {
		return nil, err
	}

	category := &db.Category{
		Name:             in.Name,
		Description:      in.Description,
		ParentCategoryID: in.ParentCategoryID,
		IsActive:         in.IsActive,
	}
	if err := m.db.AddCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("db add category: %w", err)
	}

	return m.CategoryByID(ctx, category.ID)
}

func (m *Manager) UpdateCategory(ctx context.Context, id int, in CategoryInput) (*Category, error) {
	if err := m.checkParent(ctx, &id, in.ParentCategoryID); err != nil {
		return nil, err
	}

	ok, err := m.db.UpdateCategory(ctx, &db.Category{
		ID:               id,
		Name:             in.Name,
		Description:      in.Description,
		ParentCategoryID: in.ParentCategoryID,
		IsActive:         in.IsActive,
	})
	if err != nil {
		return nil, fmt.Errorf("db update category: %w", err)
	} else if !ok {
		return nil, ErrNotFound
	}

	return m.CategoryByID(ctx, id)
}

// DeleteCategory refuses to remove a category that news or child categories still reference.
func (m *Manager) DeleteCategory(ctx context.Context, id int) error {
	return m.db.InTx(ctx, func(tx Repository) error {
		used, err := tx.CategoryHasNews(ctx, id)
		if err != nil {
			return fmt.Errorf("db check category news: %w", err)
		} else if used {
			return ErrHasNews
		}

		parent, err := tx.CategoryHasChildren(ctx, id)
		if err != nil {
			return fmt.Errorf("db check child categories: %w", err)
		} else if parent {
			return ErrHasChildren
		}

		ok, err := tx.DeleteCategory(ctx, id)
		if errors.Is(err, db.ErrReferenced) {
			return fmt.Errorf("%w: %w", ErrInUse, err)
		} else if err != nil {
			return fmt.Errorf("db delete category: %w", err)
		} else if !ok {
			return ErrNotFound
		}

		return nil
	})
}

func (m *Manager) checkParent(ctx context.Context, id, parentID *int) error {
	if parentID == nil {
		return nil
	}
	if id != nil && *id == *parentID {
		return ErrSelfParent
	}

	parent, err := m.db.CategoryByID(ctx, *parentID)
	if err != nil {
		return fmt.Errorf("db get parent category: %w", err)
	} else if parent == nil {
		return ErrParentNotFound
	}

	return nil
}
