package rpc

import (
	"context"
	"errors"
	"strings"

	"github.com/daniilsolovey/fu-news/internal/newsportal"
	"github.com/daniilsolovey/fu-news/internal/paging"
	"github.com/vmkteam/zenrpc/v2"
)

//go:generate zenrpc

// Reader is the read-only part of the portal exposed over JSON-RPC.
type Reader interface {
	NewsArticles(ctx context.Context, q newsportal.NewsQuery) (paging.Envelope[newsportal.News], error)
	NewsByID(ctx context.Context, id string) (*newsportal.News, error)
	ActiveCategories(ctx context.Context) ([]newsportal.Category, error)
	AllTags(ctx context.Context) ([]newsportal.Tag, error)
}

// NewsService provides RPC methods for the public news feed.
type NewsService struct {
	zenrpc.Service
	portal Reader
}

func NewNewsService(portal Reader) *NewsService {
	return &NewsService{portal: portal}
}

// List retrieves active news with optional filters, sorted and paged.
// Returns NewsSummary (without content), newest first by default.
//
//zenrpc:filter news filter
//zenrpc:return page of news summaries
//zenrpc:500 internal server error
func (s NewsService) List(ctx context.Context, filter NewsFilter) (*NewsPage, error) {
	env, err := s.portal.NewsArticles(ctx, filter.ToQuery())
	if err != nil {
		return nil, err
	}

	page := paging.MapEnvelope(env, NewNewsSummary)
	return &page, nil
}

// ByID retrieves a single news item with full content, category and tags.
//
//zenrpc:id news ID, e.g. NEWS0001
//zenrpc:return news with full content
//zenrpc:400 id is required
//zenrpc:404 news not found
//zenrpc:500 internal server error
func (s NewsService) ByID(ctx context.Context, id string) (*News, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return nil, zenrpc.NewStringError(400, "id is required")
	}

	n, err := s.portal.NewsByID(ctx, id)
	if errors.Is(err, newsportal.ErrNotFound) {
		return nil, zenrpc.NewStringError(404, "news not found")
	} else if err != nil {
		return nil, err
	}

	news := NewNews(*n)
	return &news, nil
}

// Categories retrieves active categories ordered by name.
//
//zenrpc:return list of categories
//zenrpc:500 internal server error
func (s NewsService) Categories(ctx context.Context) ([]Category, error) {
	categories, err := s.portal.ActiveCategories(ctx)
	if err != nil {
		return nil, err
	}

	return NewCategories(categories), nil
}

// Tags retrieves all tags ordered by name.
//
//zenrpc:return list of tags
//zenrpc:500 internal server error
func (s NewsService) Tags(ctx context.Context) ([]Tag, error) {
	tags, err := s.portal.AllTags(ctx)
	if err != nil {
		return nil, err
	}

	return NewTags(tags), nil
}
