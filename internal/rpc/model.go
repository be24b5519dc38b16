package rpc

import (
	"time"

	"github.com/daniilsolovey/fu-news/internal/db"
	"github.com/daniilsolovey/fu-news/internal/newsportal"
	"github.com/daniilsolovey/fu-news/internal/paging"
)

type NewsFilter struct {
	//searchTerm substring of title, headline or content
	SearchTerm string `json:"searchTerm,omitempty"`
	//categoryId optional category filter
	CategoryID *int `json:"categoryId,omitempty"`
	//tagId optional tag filter
	TagID *int `json:"tagId,omitempty"`
	//sortBy title, createdDate or category
	SortBy string `json:"sortBy,omitempty"`
	//isDescending reverse the sort order
	IsDescending bool `json:"isDescending,omitempty"`
	//page=1 page number (1-based)
	Page int `json:"page,omitempty"`
	//pageSize=10 items per page
	PageSize int `json:"pageSize,omitempty"`
}

// ToQuery returns a query over active news only.
func (f NewsFilter) ToQuery() newsportal.NewsQuery {
	active := true

	return newsportal.NewsQuery{
		NewsSearch: db.NewsSearch{
			SearchTerm: f.SearchTerm,
			Status:     &active,
			CategoryID: f.CategoryID,
			TagID:      f.TagID,
		},
		Sort:   db.Sort{By: f.SortBy, Descending: f.IsDescending},
		Paging: paging.Params{Page: f.Page, PageSize: f.PageSize},
	}
}

type Category struct {
	CategoryID       int    `json:"categoryId"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	ParentCategoryID *int   `json:"parentCategoryId,omitempty"`
}

type Tag struct {
	TagID int    `json:"tagId"`
	Name  string `json:"name"`
}

type News struct {
	NewsID     string    `json:"newsId"`
	CategoryID int       `json:"categoryId"`
	Title      string    `json:"title"`
	Headline   string    `json:"headline"`
	Content    string    `json:"content"`
	Source     string    `json:"source"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"createdAt"`
	Category   *Category `json:"category,omitempty"`
	Tags       []Tag     `json:"tags"`
}

type NewsSummary struct {
	NewsID     string    `json:"newsId"`
	CategoryID int       `json:"categoryId"`
	Title      string    `json:"title"`
	Headline   string    `json:"headline"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"createdAt"`
	Category   *Category `json:"category,omitempty"`
	Tags       []Tag     `json:"tags"`
}

type NewsPage = paging.Envelope[NewsSummary]
