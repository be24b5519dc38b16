package rest

import (
	"fmt"
	"time"
)

// Response is the envelope of every API reply.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data"`
	Errors  []string `json:"errors"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	AccountID int       `json:"accountId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      int       `json:"role"`
	RoleName  string    `json:"roleName"`
}

type Account struct {
	AccountID int    `json:"accountId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      int    `json:"role"`
	RoleName  string `json:"roleName"`
	NewsCount *int   `json:"newsCount,omitempty"`
}

type CreateAccountRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=70"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Role     int    `json:"role" validate:"required,oneof=1 2"`
}

// UpdateAccountRequest keeps the current password when Password is empty.
type UpdateAccountRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=70"`
	Password string `json:"password" validate:"omitempty,min=6,max=100"`
	Role     int    `json:"role" validate:"required,oneof=1 2"`
}

type AccountListRequest struct {
	SearchTerm   string `query:"searchTerm"`
	Role         *int   `query:"role"`
	SortBy       string `query:"sortBy"`
	IsDescending bool   `query:"isDescending"`
	Page         int    `query:"page"`
	PageSize     int    `query:"pageSize"`
}

type Category struct {
	CategoryID         int     `json:"categoryId"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	ParentCategoryID   *int    `json:"parentCategoryId"`
	ParentCategoryName *string `json:"parentCategoryName,omitempty"`
	IsActive           bool    `json:"isActive"`
}

type CategoryRequest struct {
	Name             string `json:"name" validate:"required,max=100"`
	Description      string `json:"description" validate:"required,max=250"`
	ParentCategoryID *int   `json:"parentCategoryId" validate:"omitempty,min=1"`
	IsActive         bool   `json:"isActive"`
}

type CategoryListRequest struct {
	SearchTerm       string `query:"searchTerm"`
	IsActive         *bool  `query:"isActive"`
	ParentCategoryID *int   `query:"parentCategoryId"`
	SortBy           string `query:"sortBy"`
	IsDescending     bool   `query:"isDescending"`
	Page             int    `query:"page"`
	PageSize         int    `query:"pageSize"`
}

type Tag struct {
	TagID int    `json:"tagId"`
	Name  string `json:"name"`
	Note  string `json:"note"`
}

type TagRequest struct {
	Name string `json:"name" validate:"required,max=50"`
	Note string `json:"note" validate:"max=400"`
}

type TagListRequest struct {
	SearchTerm   string `query:"searchTerm"`
	SortBy       string `query:"sortBy"`
	IsDescending bool   `query:"isDescending"`
	Page         int    `query:"page"`
	PageSize     int    `query:"pageSize"`
}

type NewsArticle struct {
	NewsArticleID string     `json:"newsArticleId"`
	Title         string     `json:"title"`
	Headline      string     `json:"headline"`
	Content       string     `json:"content"`
	Source        string     `json:"source"`
	CategoryID    int        `json:"categoryId"`
	CategoryName  string     `json:"categoryName"`
	Status        bool       `json:"status"`
	CreatedByID   int        `json:"createdById"`
	CreatedByName string     `json:"createdByName"`
	UpdatedByID   *int       `json:"updatedById"`
	CreatedDate   time.Time  `json:"createdDate"`
	ModifiedDate  *time.Time `json:"modifiedDate"`
	Tags          []Tag      `json:"tags"`
}

type NewsArticleRequest struct {
	Title      string `json:"title" validate:"required,max=400"`
	Headline   string `json:"headline" validate:"required,max=150"`
	Content    string `json:"content" validate:"required"`
	Source     string `json:"source" validate:"max=400"`
	CategoryID int    `json:"categoryId" validate:"required,min=1"`
	Status     bool   `json:"status"`
	TagIDs     []int  `json:"tagIds" validate:"dive,min=1"`
}

type NewsListRequest struct {
	SearchTerm   string `query:"searchTerm"`
	Status       *bool  `query:"status"`
	CategoryID   *int   `query:"categoryId"`
	CreatedByID  *int   `query:"createdById"`
	TagID        *int   `query:"tagId"`
	FromDate     *Date  `query:"fromDate"`
	ToDate       *Date  `query:"toDate"`
	SortBy       string `query:"sortBy"`
	IsDescending bool   `query:"isDescending"`
	Page         int    `query:"page"`
	PageSize     int    `query:"pageSize"`
}

type StatisticsRequest struct {
	StartDate *Date `query:"startDate" validate:"required"`
	EndDate   *Date `query:"endDate" validate:"required"`
}

type NewsStatistics struct {
	StartDate         time.Time           `json:"startDate"`
	EndDate           time.Time           `json:"endDate"`
	TotalNewsArticles int                 `json:"totalNewsArticles"`
	NewsArticles      []NewsStatisticsRow `json:"newsArticles"`
}

type NewsStatisticsRow struct {
	NewsArticleID string    `json:"newsArticleId"`
	NewsTitle     string    `json:"newsTitle"`
	CreatedDate   time.Time `json:"createdDate"`
	CategoryName  string    `json:"categoryName"`
	CreatedByName string    `json:"createdByName"`
	NewsStatus    bool      `json:"newsStatus"`
	StatusText    string    `json:"statusText"`
}

// Date is a query parameter given as 2006-01-02 or RFC 3339.
type Date struct {
	time.Time
	dayOnly bool
}

func (d *Date) UnmarshalParam(param string) error {
	if t, err := time.Parse(time.DateOnly, param); err == nil {
		d.Time, d.dayOnly = t, true
		return nil
	}

	t, err := time.Parse(time.RFC3339, param)
	if err != nil {
		return fmt.Errorf("invalid date %q", param)
	}
	d.Time, d.dayOnly = t, false
	return nil
}

// Start returns the first instant covered by d.
func (d *Date) Start() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// End returns the last instant covered by d. A plain date covers the whole day.
func (d *Date) End() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	if d.dayOnly {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}
