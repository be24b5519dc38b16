package newsportal

import (
	"context"
	"fmt"

	"github.com/daniilsolovey/fu-news/internal/db"
	"github.com/daniilsolovey/fu-news/internal/paging"
)

// NewsArticles returns one page of news matching the query, with tags attached.
func (m *Manager) NewsArticles(ctx context.Context, q NewsQuery) (paging.Envelope[News], error) {
	list, total, err := m.db.NewsArticles(ctx, q.NewsSearch, q.Sort, q.Paging)
	if err != nil {
		return paging.Envelope[News]{}, fmt.Errorf("db get news: %w", err)
	}

	news, err := m.fillTags(ctx, NewNewsList(list))
	if err != nil {
		return paging.Envelope[News]{}, err
	}

	return paging.NewEnvelope(news, total, q.Paging), nil
}

func (m *Manager) ActiveNews(ctx context.Context) ([]News, error) {
	list, err := m.db.ActiveNews(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get active news: %w", err)
	}

	return m.fillTags(ctx, NewNewsList(list))
}

func (m *Manager) NewsByCreator(ctx context.Context, accountID int) ([]News, error) {
	list, err := m.db.NewsByCreator(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("db get news by creator: %w", err)
	}

	return m.fillTags(ctx, NewNewsList(list))
}

func (m *Manager) NewsByID(ctx context.Context, id string) (*News, error) {
	dbNews, err := m.db.NewsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get news by id: %w", err)
	} else if dbNews == nil {
		return nil, ErrNotFound
	}

	result, err := m.fillTags(ctx, []News{NewNews(dbNews)})
	if err != nil {
		return nil, err
	}

	return &result[0], nil
}

// CreateNews stores a news article under the next sequential id.
func (m *Manager) CreateNews(ctx context.Context, in NewsInput, authorID int) (*News, error) {
	var id string
	err := m.db.InTx(ctx, func(tx Repository) error {
		if err := checkCategory(ctx, tx, in.CategoryID); err != nil {
			return err
		}

		if err := tx.LockNews(ctx); err != nil {
			return err
		}

		tagIDs, err := existingTagIDs(ctx, tx, in.TagIDs)
		if err != nil {
			return err
		}

		id, err = tx.NextNewsID(ctx)
		if err != nil {
			return err
		}

		return tx.AddNews(ctx, &db.News{
			ID:          id,
			Title:       in.Title,
			Headline:    in.Headline,
			Content:     in.Content,
			Source:      in.Source,
			CategoryID:  in.CategoryID,
			Status:      in.Status,
			CreatedByID: authorID,
			CreatedAt:   m.now().UTC(),
			TagIDs:      tagIDs,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}

	return m.NewsByID(ctx, id)
}

// UpdateNews overwrites the article and replaces its tags.
func (m *Manager) UpdateNews(ctx context.Context, id string, in NewsInput, editorID int) (*News, error) {
	err := m.db.InTx(ctx, func(tx Repository) error {
		if err := tx.LockNews(ctx); err != nil {
			return err
		}

		current, err := tx.NewsByID(ctx, id)
		if err != nil {
			return err
		} else if current == nil {
			return ErrNotFound
		}

		if current.CategoryID != in.CategoryID {
			if err := checkCategory(ctx, tx, in.CategoryID); err != nil {
				return err
			}
		}

		tagIDs, err := existingTagIDs(ctx, tx, in.TagIDs)
		if err != nil {
			return err
		}

		now := m.now().UTC()
		current.Title = in.Title
		current.Headline = in.Headline
		current.Content = in.Content
		current.Source = in.Source
		current.CategoryID = in.CategoryID
		current.Status = in.Status
		current.UpdatedByID = &editorID
		current.ModifiedAt = &now
		current.TagIDs = tagIDs

		ok, err := tx.UpdateNews(ctx, current)
		if err != nil {
			return err
		} else if !ok {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update news: %w", err)
	}

	return m.NewsByID(ctx, id)
}

func (m *Manager) DeleteNews(ctx context.Context, id string) error {
	ok, err := m.db.DeleteNews(ctx, id)
	if err != nil {
		return fmt.Errorf("db delete news: %w", err)
	} else if !ok {
		return ErrNotFound
	}

	return nil
}

func (m *Manager) fillTags(ctx context.Context, list []News) ([]News, error) {
	tags, err := m.db.TagsByIDs(ctx, uniqueTagIDs(list))
	if err != nil {
		return nil, fmt.Errorf("failed to attach tags to news: %w", err)
	}

	setTags(list, NewTags(tags))
	return list, nil
}

func checkCategory(ctx context.Context, repo Repository, id int) error {
	category, err := repo.CategoryByID(ctx, id)
	if err != nil {
		return err
	} else if category == nil {
		return ErrCategoryNotFound
	} else if !category.IsActive {
		return ErrCategoryInactive
	}

	return nil
}

// existingTagIDs drops duplicates and ids of tags that do not exist.
func existingTagIDs(ctx context.Context, repo Repository, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return []int{}, nil
	}

	tags, err := repo.TagsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	known := make(map[int]bool, len(tags))
	for _, t := range tags {
		known[t.ID] = true
	}

	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if known[id] {
			out = append(out, id)
			known[id] = false
		}
	}

	return out, nil
}
