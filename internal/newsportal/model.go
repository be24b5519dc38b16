package newsportal

import (
	"time"

	"github.com/daniilsolovey/fu-news/internal/db"
	"github.com/daniilsolovey/fu-news/internal/paging"
)

type Role int

const (
	RoleAdmin    Role = 0
	RoleStaff    Role = 1
	RoleLecturer Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleStaff:
		return "Staff"
	case RoleLecturer:
		return "Lecturer"
	}
	return "Unknown"
}

type Account struct {
	db.Account
	NewsCount int
}

type Category struct {
	db.Category
}

type Tag struct {
	db.Tag
}

type News struct {
	db.News
	Tags []Tag
}

type AccountInput struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

type CategoryInput struct {
	Name             string
	Description      string
	ParentCategoryID *int
	IsActive         bool
}

type NewsInput struct {
	Title      string
	Headline   string
	Content    string
	Source     string
	CategoryID int
	Status     bool
	TagIDs     []int
}

type TagInput struct {
	Name string
	Note string
}

// NewsQuery combines news filters, ordering and paging.
type NewsQuery struct {
	db.NewsSearch
	Sort   db.Sort
	Paging paging.Params
}

type CategoryQuery struct {
	db.CategorySearch
	Sort   db.Sort
	Paging paging.Params
}

type AccountQuery struct {
	db.AccountSearch
	Sort   db.Sort
	Paging paging.Params
}

type TagQuery struct {
	SearchTerm string
	Sort       db.Sort
	Paging     paging.Params
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	AccountID int
	Email     string
	Name      string
	Role      Role
}

type NewsStatistics struct {
	StartDate time.Time
	EndDate   time.Time
	Total     int
	Rows      []NewsStatisticsRow
}

type NewsStatisticsRow struct {
	NewsID        string
	Title         string
	CreatedAt     time.Time
	CategoryName  string
	CreatedByName string
	Status        bool
	StatusText    string
}
