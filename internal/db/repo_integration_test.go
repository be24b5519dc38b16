//go:build integration

package db

import (
	"fmt"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/daniilsolovey/fu-news/internal/paging"
	"github.com/go-pg/pg/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *pg.DB

func TestMain(m *testing.M) {
	var err error
	testDB, err = SetupTestDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to set up test database. Make sure PostgreSQL is running:")
		fmt.Fprintln(os.Stderr, "  docker-compose -f docker-compose.test.yml up -d")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := testDB.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close database connection: %v\n", err)
	}

	os.Exit(code)
}

func TestNewsArticles_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	tests := []struct {
		name      string
		search    NewsSearch
		sort      Sort
		params    paging.Params
		wantIDs   []string
		wantTotal int
	}{
		{
			name:      "DefaultOrderIsNewestFirst",
			params:    paging.Params{Page: 1, PageSize: 3},
			wantIDs:   []string{"NEWS0007", "NEWS0006", "NEWS0005"},
			wantTotal: 7,
		},
		{
			name:      "StatusFilter",
			search:    NewsSearch{Status: boolPtr(false)},
			params:    paging.Params{Page: 1, PageSize: 10},
			wantIDs:   []string{"NEWS0006", "NEWS0003"},
			wantTotal: 2,
		},
		{
			name:      "SearchTermMatchesContentCaseInsensitive",
			search:    NewsSearch{SearchTerm: "MIDNIGHT"},
			params:    paging.Params{Page: 1, PageSize: 10},
			wantIDs:   []string{"NEWS0003"},
			wantTotal: 1,
		},
		{
			name:      "SearchTermEscapesWildcards",
			search:    NewsSearch{SearchTerm: "%"},
			params:    paging.Params{Page: 1, PageSize: 10},
			wantIDs:   []string{},
			wantTotal: 0,
		},
		{
			name:      "TagAndCategoryAreAndCombined",
			search:    NewsSearch{TagID: intPtr(1), CategoryID: intPtr(1)},
			params:    paging.Params{Page: 1, PageSize: 10},
			wantIDs:   []string{"NEWS0002"},
			wantTotal: 1,
		},
		{
			name:      "CreatorAndDateRange",
			search:    NewsSearch{CreatedByID: intPtr(1), FromDate: timePtr(BaseTime.Add(-5 * 24 * time.Hour)), ToDate: timePtr(BaseTime.Add(-2 * 24 * time.Hour))},
			params:    paging.Params{Page: 1, PageSize: 10},
			wantIDs:   []string{"NEWS0005", "NEWS0002"},
			wantTotal: 2,
		},
		{
			name:      "SortByTitleAscending",
			sort:      Sort{By: "TITLE"},
			params:    paging.Params{Page: 1, PageSize: 2},
			wantIDs:   []string{"NEWS0007", "NEWS0002"},
			wantTotal: 7,
		},
		{
			name:      "SortByCategoryBreaksTiesByID",
			sort:      Sort{By: "category"},
			params:    paging.Params{Page: 1, PageSize: 3},
			wantIDs:   []string{"NEWS0002", "NEWS0003", "NEWS0005"},
			wantTotal: 7,
		},
		{
			name:      "UnknownSortFallsBackToDefault",
			sort:      Sort{By: "password"},
			params:    paging.Params{Page: 1, PageSize: 1},
			wantIDs:   []string{"NEWS0007"},
			wantTotal: 7,
		},
		{
			name:      "PageBeyondLast",
			params:    paging.Params{Page: 5, PageSize: 3},
			wantIDs:   []string{},
			wantTotal: 7,
		},
		{
			name:      "InvalidParamsAreNormalized",
			params:    paging.Params{Page: 0, PageSize: 500},
			wantIDs:   []string{"NEWS0007", "NEWS0006", "NEWS0005", "NEWS0004", "NEWS0003", "NEWS0002", "NEWS0001"},
			wantTotal: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			news, total, err := repo.NewsArticles(ctx, tt.search, tt.sort, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantIDs, newsIDs(news))
			for i := range news {
				require.NotNil(t, news[i].Category, "category not loaded for %s", news[i].ID)
				assert.Equal(t, news[i].CategoryID, news[i].Category.ID)
			}
		})
	}
}

func TestNewsArticles_OutsideTransaction_Integration(t *testing.T) {
	ctx := t.Context()
	repo := New(testDB)

	news, total, err := repo.NewsArticles(ctx, NewsSearch{}, Sort{}, paging.Params{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Equal(t, []string{"NEWS0004", "NEWS0003", "NEWS0002"}, newsIDs(news))
}

func TestNewsCRUD_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	require.NoError(t, repo.LockNews(ctx))
	id, err := repo.NextNewsID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NEWS0008", id)

	news := &News{
		ID:          id,
		Title:       "Graduation",
		Headline:    "Class of 2024",
		Content:     "Ceremony details.",
		CategoryID:  2,
		Status:      true,
		CreatedByID: 1,
		CreatedAt:   BaseTime,
		TagIDs:      []int{1, 2},
	}
	require.NoError(t, repo.AddNews(ctx, news))

	got, err := repo.NewsByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []int{1, 2}, got.TagIDs)
	assert.Equal(t, "Anna Staff", got.CreatedBy.Name)

	modified := BaseTime.Add(time.Hour)
	got.TagIDs = []int{3}
	got.UpdatedByID = intPtr(2)
	got.ModifiedAt = &modified
	ok, err := repo.UpdateNews(ctx, got)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.NewsByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, got.TagIDs)
	require.NotNil(t, got.UpdatedBy)
	assert.Equal(t, 2, got.UpdatedBy.ID)

	ok, err = repo.DeleteNews(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = repo.NewsByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCategories_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	list, total, err := repo.Categories(ctx, CategorySearch{IsActive: boolPtr(true)}, Sort{}, paging.Params{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, "Academic", list[0].Name)

	list, total, err = repo.Categories(ctx, CategorySearch{ParentCategoryID: intPtr(2)}, Sort{}, paging.Params{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.NotNil(t, list[0].ParentCategory)
	assert.Equal(t, "Events", list[0].ParentCategory.Name)

	has, err := repo.CategoryHasNews(ctx, 3)
	require.NoError(t, err)
	assert.True(t, has)

	active, err := repo.ActiveCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 3)
}

func TestAccounts_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	list, total, err := repo.Accounts(ctx, AccountSearch{Role: intPtr(1)}, Sort{By: "email", Descending: true}, paging.Params{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "boris@fu.edu", list[0].Email)

	exists, err := repo.EmailExists(ctx, "ANNA@fu.edu", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.EmailExists(ctx, "anna@fu.edu", intPtr(1))
	require.NoError(t, err)
	assert.False(t, exists)

	account, err := repo.AccountByEmail(ctx, "Clara@FU.edu")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, 3, account.ID)

	count, err := repo.CountNewsByCreator(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	has, err := repo.AccountHasNews(ctx, 3)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestTags_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	tags, err := repo.TagsByIDs(ctx, []int{3, 1})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Important", tags[0].Name)

	exists, err := repo.TagNameExists(ctx, "Research", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.TagNameExists(ctx, "rESEARCH", nil)
	require.NoError(t, err)
	assert.True(t, exists, "tag names are unique regardless of case")

	exists, err = repo.TagNameExists(ctx, "Research", intPtr(3))
	require.NoError(t, err)
	assert.False(t, exists)

	has, err := repo.TagHasNews(ctx, 3)
	require.NoError(t, err)
	assert.True(t, has)

	tag := &Tag{Name: "Unused"}
	require.NoError(t, repo.AddTag(ctx, tag))
	has, err = repo.TagHasNews(ctx, tag.ID)
	require.NoError(t, err)
	assert.False(t, has)

	ok, err := repo.DeleteTag(ctx, tag.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHugePage_Integration(t *testing.T) {
	huge := paging.Params{Page: math.MaxInt / 5, PageSize: 10}
	_, _, txRepo := withTx(t)

	for name, repo := range map[string]*Repository{"Tx": txRepo, "DB": New(testDB)} {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()

			news, total, err := repo.NewsArticles(ctx, NewsSearch{}, Sort{}, huge)
			require.NoError(t, err)
			assert.Empty(t, news)
			assert.Equal(t, 7, total)

			categories, total, err := repo.Categories(ctx, CategorySearch{}, Sort{}, huge)
			require.NoError(t, err)
			assert.Empty(t, categories)
			assert.Equal(t, 4, total)

			accounts, total, err := repo.Accounts(ctx, AccountSearch{}, Sort{}, huge)
			require.NoError(t, err)
			assert.Empty(t, accounts)
			assert.Equal(t, 3, total)
		})
	}
}

func TestNewsLongFields_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	require.NoError(t, repo.LockNews(ctx))
	id, err := repo.NextNewsID(ctx)
	require.NoError(t, err)

	news := &News{
		ID:          id,
		Title:       strings.Repeat("t", 400),
		Headline:    strings.Repeat("h", 150),
		Content:     "Long fields.",
		Source:      strings.Repeat("s", 400),
		CategoryID:  1,
		Status:      true,
		CreatedByID: 1,
		CreatedAt:   BaseTime,
		TagIDs:      []int{},
	}
	require.NoError(t, repo.AddNews(ctx, news))

	got, err := repo.NewsByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Title, 400)
	assert.Len(t, got.Source, 400)
}

func TestCategoryChildren_Integration(t *testing.T) {
	_, ctx, repo := withTx(t)

	has, err := repo.CategoryHasChildren(ctx, 2)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = repo.CategoryHasChildren(ctx, 4)
	require.NoError(t, err)
	assert.False(t, has)

	parent := &Category{Name: "Clubs", IsActive: true}
	require.NoError(t, repo.AddCategory(ctx, parent))
	child := &Category{Name: "Chess", ParentCategoryID: &parent.ID, IsActive: true}
	require.NoError(t, repo.AddCategory(ctx, child))

	// the foreign key error aborts the transaction, so it is the last statement here
	_, err = repo.DeleteCategory(ctx, parent.ID)
	assert.ErrorIs(t, err, ErrReferenced)
}

func timePtr(v time.Time) *time.Time { return &v }
