package rpc

import (
	"github.com/daniilsolovey/fu-news/internal/db"
	"github.com/daniilsolovey/fu-news/internal/newsportal"
)

func NewNews(n newsportal.News) News {
	return News{
		NewsID:     n.ID,
		CategoryID: n.CategoryID,
		Title:      n.Title,
		Headline:   n.Headline,
		Content:    n.Content,
		Source:     n.Source,
		Author:     author(n.CreatedBy),
		CreatedAt:  n.CreatedAt,
		Category:   newCategoryRef(n.Category),
		Tags:       NewTags(n.Tags),
	}
}

func NewNewsSummary(n newsportal.News) NewsSummary {
	return NewsSummary{
		NewsID:     n.ID,
		CategoryID: n.CategoryID,
		Title:      n.Title,
		Headline:   n.Headline,
		Author:     author(n.CreatedBy),
		CreatedAt:  n.CreatedAt,
		Category:   newCategoryRef(n.Category),
		Tags:       NewTags(n.Tags),
	}
}

func NewCategory(c newsportal.Category) Category {
	return Category{
		CategoryID:       c.ID,
		Name:             c.Name,
		Description:      c.Description,
		ParentCategoryID: c.ParentCategoryID,
	}
}

func NewCategories(list []newsportal.Category) []Category {
	out := make([]Category, len(list))
	for i := range list {
		out[i] = NewCategory(list[i])
	}
	return out
}

func NewTag(t newsportal.Tag) Tag {
	return Tag{
		TagID: t.ID,
		Name:  t.Name,
	}
}

func NewTags(list []newsportal.Tag) []Tag {
	out := make([]Tag, len(list))
	for i := range list {
		out[i] = NewTag(list[i])
	}
	return out
}

func newCategoryRef(c *db.Category) *Category {
	if c == nil {
		return nil
	}
	category := NewCategory(newsportal.Category{Category: *c})
	return &category
}

func author(a *db.Account) string {
	if a == nil {
		return ""
	}
	return a.Name
}
