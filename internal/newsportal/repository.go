package newsportal

import (
	"context"
	"time"

	"github.com/daniilsolovey/fu-news/internal/db"
	"github.com/daniilsolovey/fu-news/internal/paging"
)

// Repository is the storage the Manager depends on. *db.Repository satisfies it through NewRepository.
type Repository interface {
	InTx(ctx context.Context, fn func(tx Repository) error) error

	NewsArticles(ctx context.Context, search db.NewsSearch, sort db.Sort, p paging.Params) ([]db.News, int, error)
	NewsByID(ctx context.Context, id string) (*db.News, error)
	ActiveNews(ctx context.Context) ([]db.News, error)
	NewsByCreator(ctx context.Context, accountID int) ([]db.News, error)
	NewsBetween(ctx context.Context, from, to time.Time) ([]db.News, error)
	CountNewsByCreator(ctx context.Context, accountID int) (int, error)
	LockNews(ctx context.Context) error
	NextNewsID(ctx context.Context) (string, error)
	AddNews(ctx context.Context, news *db.News) error
	UpdateNews(ctx context.Context, news *db.News) (bool, error)
	DeleteNews(ctx context.Context, id string) (bool, error)

	Categories(ctx context.Context, search db.CategorySearch, sort db.Sort, p paging.Params) ([]db.Category, int, error)
	CategoryByID(ctx context.Context, id int) (*db.Category, error)
	ActiveCategories(ctx context.Context) ([]db.Category, error)
	CategoryHasNews(ctx context.Context, id int) (bool, error)
	CategoryHasChildren(ctx context.Context, id int) (bool, error)
	AddCategory(ctx context.Context, category *db.Category) error
	UpdateCategory(ctx context.Context, category *db.Category) (bool, error)
	DeleteCategory(ctx context.Context, id int) (bool, error)

	Accounts(ctx context.Context, search db.AccountSearch, sort db.Sort, p paging.Params) ([]db.Account, int, error)
	AccountByID(ctx context.Context, id int) (*db.Account, error)
	AccountByEmail(ctx context.Context, email string) (*db.Account, error)
	EmailExists(ctx context.Context, email string, excludeID *int) (bool, error)
	AccountHasNews(ctx context.Context, id int) (bool, error)
	AddAccount(ctx context.Context, account *db.Account) error
	UpdateAccount(ctx context.Context, account *db.Account) (bool, error)
	DeleteAccount(ctx context.Context, id int) (bool, error)

	Tags(ctx context.Context) ([]db.Tag, error)
	TagsByIDs(ctx context.Context, tagIDs []int) ([]db.Tag, error)
	TagByID(ctx context.Context, id int) (*db.Tag, error)
	TagNameExists(ctx context.Context, name string, excludeID *int) (bool, error)
	TagHasNews(ctx context.Context, id int) (bool, error)
	AddTag(ctx context.Context, tag *db.Tag) error
	UpdateTag(ctx context.Context, tag *db.Tag) (bool, error)
	DeleteTag(ctx context.Context, id int) (bool, error)
}

type dbRepository struct {
	*db.Repository
}

func NewRepository(repo *db.Repository) Repository {
	return dbRepository{Repository: repo}
}

func (r dbRepository) InTx(ctx context.Context, fn func(tx Repository) error) error {
	return r.Repository.InTx(ctx, func(tx *db.Repository) error {
		return fn(dbRepository{Repository: tx})
	})
}
