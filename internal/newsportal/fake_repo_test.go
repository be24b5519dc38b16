package newsportal

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/daniilsolovey/fu-news/internal/db"
	"github.com/daniilsolovey/fu-news/internal/paging"
)

var errFakeDB = errors.New("fake db failure")

// fakeRepo is an in-memory Repository. Paged methods ignore search and sort.
type fakeRepo struct {
	accounts   map[int]db.Account
	categories map[int]db.Category
	news       map[string]db.News
	tags       map[int]db.Tag
	nextID     int
	failWith   error
	txCalls    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		accounts:   map[int]db.Account{},
		categories: map[int]db.Category{},
		news:       map[string]db.News{},
		tags:       map[int]db.Tag{},
		nextID:     100,
	}
}

func (f *fakeRepo) id() int {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) InTx(_ context.Context, fn func(tx Repository) error) error {
	f.txCalls++
	return fn(f)
}

func (f *fakeRepo) sortedNews(keep func(db.News) bool) []db.News {
	out := []db.News{}
	for _, n := range f.news {
		if keep(n) {
			c := f.categories[n.CategoryID]
			n.Category = &c
			if a, ok := f.accounts[n.CreatedByID]; ok {
				n.CreatedBy = &a
			}
			out = append(out, n)
		}
	}
	slices.SortFunc(out, func(a, b db.News) int { return strings.Compare(a.ID, b.ID) })
	return out
}

func (f *fakeRepo) NewsArticles(_ context.Context, _ db.NewsSearch, _ db.Sort, p paging.Params) ([]db.News, int, error) {
	if f.failWith != nil {
		return nil, 0, f.failWith
	}
	all := f.sortedNews(func(db.News) bool { return true })
	p = p.Normalize()
	if p.PastEnd(len(all)) {
		return nil, len(all), nil
	}
	return all[p.Offset():min(p.Offset()+p.Limit(), len(all))], len(all), nil
}

func (f *fakeRepo) NewsByID(_ context.Context, id string) (*db.News, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	list := f.sortedNews(func(n db.News) bool { return n.ID == id })
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (f *fakeRepo) ActiveNews(context.Context) ([]db.News, error) {
	return f.sortedNews(func(n db.News) bool { return n.Status }), nil
}

func (f *fakeRepo) NewsByCreator(_ context.Context, accountID int) ([]db.News, error) {
	return f.sortedNews(func(n db.News) bool { return n.CreatedByID == accountID }), nil
}

func (f *fakeRepo) NewsBetween(_ context.Context, from, to time.Time) ([]db.News, error) {
	return f.sortedNews(func(n db.News) bool {
		return !n.CreatedAt.Before(from) && !n.CreatedAt.After(to)
	}), nil
}

func (f *fakeRepo) CountNewsByCreator(_ context.Context, accountID int) (int, error) {
	return len(f.sortedNews(func(n db.News) bool { return n.CreatedByID == accountID })), nil
}

func (f *fakeRepo) LockNews(context.Context) error { return nil }

func (f *fakeRepo) NextNewsID(context.Context) (string, error) {
	last := 0
	for id := range f.news {
		var n int
		if _, err := fmt.Sscanf(id, "NEWS%d", &n); err == nil && n > last {
			last = n
		}
	}
	return fmt.Sprintf("NEWS%04d", last+1), nil
}

func (f *fakeRepo) AddNews(_ context.Context, news *db.News) error {
	if f.failWith != nil {
		return f.failWith
	}
	n := *news
	n.Category, n.CreatedBy, n.UpdatedBy = nil, nil, nil
	f.news[n.ID] = n
	return nil
}

func (f *fakeRepo) UpdateNews(_ context.Context, news *db.News) (bool, error) {
	if _, ok := f.news[news.ID]; !ok {
		return false, nil
	}
	return true, f.AddNews(context.Background(), news)
}

func (f *fakeRepo) DeleteNews(_ context.Context, id string) (bool, error) {
	_, ok := f.news[id]
	delete(f.news, id)
	return ok, nil
}

func (f *fakeRepo) Categories(_ context.Context, _ db.CategorySearch, _ db.Sort, _ paging.Params) ([]db.Category, int, error) {
	out := []db.Category{}
	for _, c := range f.categories {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b db.Category) int { return a.ID - b.ID })
	return out, len(out), nil
}

func (f *fakeRepo) CategoryByID(_ context.Context, id int) (*db.Category, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	c, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeRepo) ActiveCategories(ctx context.Context) ([]db.Category, error) {
	all, _, _ := f.Categories(ctx, db.CategorySearch{}, db.Sort{}, paging.Params{})
	return slices.DeleteFunc(all, func(c db.Category) bool { return !c.IsActive }), nil
}

func (f *fakeRepo) CategoryHasNews(_ context.Context, id int) (bool, error) {
	return len(f.sortedNews(func(n db.News) bool { return n.CategoryID == id })) > 0, nil
}

func (f *fakeRepo) CategoryHasChildren(_ context.Context, id int) (bool, error) {
	for _, c := range f.categories {
		if c.ParentCategoryID != nil && *c.ParentCategoryID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) AddCategory(_ context.Context, category *db.Category) error {
	category.ID = f.id()
	f.categories[category.ID] = *category
	return nil
}

func (f *fakeRepo) UpdateCategory(_ context.Context, category *db.Category) (bool, error) {
	if _, ok := f.categories[category.ID]; !ok {
		return false, nil
	}
	f.categories[category.ID] = *category
	return true, nil
}

func (f *fakeRepo) DeleteCategory(_ context.Context, id int) (bool, error) {
	_, ok := f.categories[id]
	delete(f.categories, id)
	return ok, nil
}

func (f *fakeRepo) Accounts(_ context.Context, _ db.AccountSearch, _ db.Sort, _ paging.Params) ([]db.Account, int, error) {
	out := []db.Account{}
	for _, a := range f.accounts {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b db.Account) int { return a.ID - b.ID })
	return out, len(out), nil
}

func (f *fakeRepo) AccountByID(_ context.Context, id int) (*db.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f *fakeRepo) AccountByEmail(_ context.Context, email string) (*db.Account, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, a := range f.accounts {
		if strings.EqualFold(a.Email, email) {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) EmailExists(_ context.Context, email string, excludeID *int) (bool, error) {
	for _, a := range f.accounts {
		if strings.EqualFold(a.Email, email) && (excludeID == nil || a.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) AccountHasNews(_ context.Context, id int) (bool, error) {
	return len(f.sortedNews(func(n db.News) bool { return n.CreatedByID == id })) > 0, nil
}

func (f *fakeRepo) AddAccount(_ context.Context, account *db.Account) error {
	account.ID = f.id()
	f.accounts[account.ID] = *account
	return nil
}

func (f *fakeRepo) UpdateAccount(_ context.Context, account *db.Account) (bool, error) {
	if _, ok := f.accounts[account.ID]; !ok {
		return false, nil
	}
	f.accounts[account.ID] = *account
	return true, nil
}

func (f *fakeRepo) DeleteAccount(_ context.Context, id int) (bool, error) {
	_, ok := f.accounts[id]
	delete(f.accounts, id)
	return ok, nil
}

func (f *fakeRepo) Tags(context.Context) ([]db.Tag, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []db.Tag{}
	for _, t := range f.tags {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b db.Tag) int { return a.ID - b.ID })
	return out, nil
}

func (f *fakeRepo) TagsByIDs(ctx context.Context, tagIDs []int) ([]db.Tag, error) {
	all, err := f.Tags(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(all, func(t db.Tag) bool { return !slices.Contains(tagIDs, t.ID) }), nil
}

func (f *fakeRepo) TagByID(_ context.Context, id int) (*db.Tag, error) {
	t, ok := f.tags[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeRepo) TagNameExists(_ context.Context, name string, excludeID *int) (bool, error) {
	for _, t := range f.tags {
		if strings.EqualFold(t.Name, name) && (excludeID == nil || t.ID != *excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) TagHasNews(_ context.Context, id int) (bool, error) {
	return len(f.sortedNews(func(n db.News) bool { return slices.Contains(n.TagIDs, id) })) > 0, nil
}

func (f *fakeRepo) AddTag(_ context.Context, tag *db.Tag) error {
	tag.ID = f.id()
	f.tags[tag.ID] = *tag
	return nil
}

func (f *fakeRepo) UpdateTag(_ context.Context, tag *db.Tag) (bool, error) {
	if _, ok := f.tags[tag.ID]; !ok {
		return false, nil
	}
	f.tags[tag.ID] = *tag
	return true, nil
}

func (f *fakeRepo) DeleteTag(_ context.Context, id int) (bool, error) {
	_, ok := f.tags[id]
	delete(f.tags, id)
	return ok, nil
}
