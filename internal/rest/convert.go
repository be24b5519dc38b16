package rest

import (
	"github.com/daniilsolovey/fu-news/internal/db"
	"github.com/daniilsolovey/fu-news/internal/newsportal"
	"github.com/daniilsolovey/fu-news/internal/paging"
)

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewAccount(a newsportal.Account) Account {
	return Account{
		AccountID: a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		RoleName:  newsportal.Role(a.Role).String(),
	}
}

// NewAccountDetail includes the number of authored news.
func NewAccountDetail(a newsportal.Account) Account {
	account := NewAccount(a)
	account.NewsCount = &a.NewsCount
	return account
}

func NewCategory(c newsportal.Category) Category {
	category := Category{
		CategoryID:       c.ID,
		Name:             c.Name,
		Description:      c.Description,
		ParentCategoryID: c.ParentCategoryID,
		IsActive:         c.IsActive,
	}
	if c.ParentCategory != nil {
		category.ParentCategoryName = &c.ParentCategory.Name
	}

	return category
}

func NewTag(t newsportal.Tag) Tag {
	return Tag{
		TagID: t.ID,
		Name:  t.Name,
		Note:  t.Note,
	}
}

func NewNewsArticle(n newsportal.News) NewsArticle {
	news := NewsArticle{
		NewsArticleID: n.ID,
		Title:         n.Title,
		Headline:      n.Headline,
		Content:       n.Content,
		Source:        n.Source,
		CategoryID:    n.CategoryID,
		Status:        n.Status,
		CreatedByID:   n.CreatedByID,
		UpdatedByID:   n.UpdatedByID,
		CreatedDate:   n.CreatedAt,
		ModifiedDate:  n.ModifiedAt,
		Tags:          Map(n.Tags, NewTag),
	}
	if n.Category != nil {
		news.CategoryName = n.Category.Name
	}
	if n.CreatedBy != nil {
		news.CreatedByName = n.CreatedBy.Name
	}

	return news
}

func NewNewsStatistics(s newsportal.NewsStatistics) NewsStatistics {
	return NewsStatistics{
		StartDate:         s.StartDate,
		EndDate:           s.EndDate,
		TotalNewsArticles: s.Total,
		NewsArticles: Map(s.Rows, func(r newsportal.NewsStatisticsRow) NewsStatisticsRow {
			return NewsStatisticsRow{
				NewsArticleID: r.NewsID,
				NewsTitle:     r.Title,
				CreatedDate:   r.CreatedAt,
				CategoryName:  r.CategoryName,
				CreatedByName: r.CreatedByName,
				NewsStatus:    r.Status,
				StatusText:    r.StatusText,
			}
		}),
	}
}

func NewLoginResponse(s newsportal.Session) LoginResponse {
	return LoginResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		AccountID: s.AccountID,
		Email:     s.Email,
		Name:      s.Name,
		Role:      int(s.Role),
		RoleName:  s.Role.String(),
	}
}

func (r NewsArticleRequest) Input() newsportal.NewsInput {
	return newsportal.NewsInput{
		Title:      r.Title,
		Headline:   r.Headline,
		Content:    r.Content,
		Source:     r.Source,
		CategoryID: r.CategoryID,
		Status:     r.Status,
		TagIDs:     r.TagIDs,
	}
}

func (r CategoryRequest) Input() newsportal.CategoryInput {
	return newsportal.CategoryInput{
		Name:             r.Name,
		Description:      r.Description,
		ParentCategoryID: r.ParentCategoryID,
		IsActive:         r.IsActive,
	}
}

func (r TagRequest) Input() newsportal.TagInput {
	return newsportal.TagInput{Name: r.Name, Note: r.Note}
}

func (r CreateAccountRequest) Input() newsportal.AccountInput {
	return newsportal.AccountInput{Name: r.Name, Email: r.Email, Password: r.Password, Role: newsportal.Role(r.Role)}
}

func (r UpdateAccountRequest) Input() newsportal.AccountInput {
	return newsportal.AccountInput{Name: r.Name, Email: r.Email, Password: r.Password, Role: newsportal.Role(r.Role)}
}

func (r NewsListRequest) Query() newsportal.NewsQuery {
	return newsportal.NewsQuery{
		NewsSearch: db.NewsSearch{
			SearchTerm:  r.SearchTerm,
			Status:      r.Status,
			CategoryID:  r.CategoryID,
			CreatedByID: r.CreatedByID,
			TagID:       r.TagID,
			FromDate:    r.FromDate.Start(),
			ToDate:      r.ToDate.End(),
		},
		Sort:   db.Sort{By: r.SortBy, Descending: r.IsDescending},
		Paging: paging.Params{Page: r.Page, PageSize: r.PageSize},
	}
}

func (r CategoryListRequest) Query() newsportal.CategoryQuery {
	return newsportal.CategoryQuery{
		CategorySearch: db.CategorySearch{
			SearchTerm:       r.SearchTerm,
			IsActive:         r.IsActive,
			ParentCategoryID: r.ParentCategoryID,
		},
		Sort:   db.Sort{By: r.SortBy, Descending: r.IsDescending},
		Paging: paging.Params{Page: r.Page, PageSize: r.PageSize},
	}
}

func (r AccountListRequest) Query() newsportal.AccountQuery {
	return newsportal.AccountQuery{
		AccountSearch: db.AccountSearch{SearchTerm: r.SearchTerm, Role: r.Role},
		Sort:          db.Sort{By: r.SortBy, Descending: r.IsDescending},
		Paging:        paging.Params{Page: r.Page, PageSize: r.PageSize},
	}
}

func (r TagListRequest) Query() newsportal.TagQuery {
	return newsportal.TagQuery{
		SearchTerm: r.SearchTerm,
		Sort:       db.Sort{By: r.SortBy, Descending: r.IsDescending},
		Paging:     paging.Params{Page: r.Page, PageSize: r.PageSize},
	}
}
