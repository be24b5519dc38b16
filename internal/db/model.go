// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Columns = struct {
	Account struct {
		ID, Name, Email, Role, Password string
	}
	Category struct {
		ID, Name, Description, ParentCategoryID, IsActive string

		ParentCategory string
	}
	GooseDbVersion struct {
		ID, VersionID, IsApplied, Tstamp string
	}
	News struct {
		ID, Title, Headline, Content, Source, CategoryID, Status, CreatedByID, UpdatedByID, CreatedAt, ModifiedAt, TagIDs string

		Category, CreatedBy, UpdatedBy string
	}
	Tag struct {
		ID, Name, Note string
	}
}{
	Account: struct {
		ID, Name, Email, Role, Password string
	}{
		ID:       "accountId",
		Name:     "name",
		Email:    "email",
		Role:     "role",
		Password: "password",
	},
	Category: struct {
		ID, Name, Description, ParentCategoryID, IsActive string

		ParentCategory string
	}{
		ID:               "categoryId",
		Name:             "name",
		Description:      "description",
		ParentCategoryID: "parentCategoryId",
		IsActive:         "isActive",

		ParentCategory: "ParentCategory",
	},
	GooseDbVersion: struct {
		ID, VersionID, IsApplied, Tstamp string
	}{
		ID:        "id",
		VersionID: "version_id",
		IsApplied: "is_applied",
		Tstamp:    "tstamp",
	},
	News: struct {
		ID, Title, Headline, Content, Source, CategoryID, Status, CreatedByID, UpdatedByID, CreatedAt, ModifiedAt, TagIDs string

		Category, CreatedBy, UpdatedBy string
	}{
		ID:          "newsId",
		Title:       "title",
		Headline:    "headline",
		Content:     "content",
		Source:      "source",
		CategoryID:  "categoryId",
		Status:      "status",
		CreatedByID: "createdById",
		UpdatedByID: "updatedById",
		CreatedAt:   "createdAt",
		ModifiedAt:  "modifiedAt",
		TagIDs:      "tagIds",

		Category:  "Category",
		CreatedBy: "CreatedBy",
		UpdatedBy: "UpdatedBy",
	},
	Tag: struct {
		ID, Name, Note string
	}{
		ID:   "tagId",
		Name: "name",
		Note: "note",
	},
}

var Tables = struct {
	Account struct {
		Name, Alias string
	}
	Category struct {
		Name, Alias string
	}
	GooseDbVersion struct {
		Name, Alias string
	}
	News struct {
		Name, Alias string
	}
	Tag struct {
		Name, Alias string
	}
}{
	Account: struct {
		Name, Alias string
	}{
		Name:  "accounts",
		Alias: "t",
	},
	Category: struct {
		Name, Alias string
	}{
		Name:  "categories",
		Alias: "t",
	},
	GooseDbVersion: struct {
		Name, Alias string
	}{
		Name:  "goose_db_version",
		Alias: "t",
	},
	News: struct {
		Name, Alias string
	}{
		Name:  "news",
		Alias: "t",
	},
	Tag: struct {
		Name, Alias string
	}{
		Name:  "tags",
		Alias: "t",
	},
}

type Account struct {
	tableName struct{} `pg:"accounts,alias:t,discard_unknown_columns"`

	ID       int    `pg:"accountId,pk"`
	Name     string `pg:"name,use_zero"`
	Email    string `pg:"email,use_zero"`
	Role     int    `pg:"role,use_zero"`
	Password string `pg:"password,use_zero"`
}

type Category struct {
	tableName struct{} `pg:"categories,alias:t,discard_unknown_columns"`

	ID               int    `pg:"categoryId,pk"`
	Name             string `pg:"name,use_zero"`
	Description      string `pg:"description,use_zero"`
	ParentCategoryID *int   `pg:"parentCategoryId"`
	IsActive         bool   `pg:"isActive,use_zero"`

	ParentCategory *Category `pg:"fk:parentCategoryId,rel:has-one"`
}

type GooseDbVersion struct {
	tableName struct{} `pg:"goose_db_version,alias:t,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	VersionID int64     `pg:"version_id,use_zero"`
	IsApplied bool      `pg:"is_applied,use_zero"`
	Tstamp    time.Time `pg:"tstamp,use_zero"`
}

type News struct {
	tableName struct{} `pg:"news,alias:t,discard_unknown_columns"`

	ID          string     `pg:"newsId,pk"`
	Title       string     `pg:"title,use_zero"`
	Headline    string     `pg:"headline,use_zero"`
	Content     string     `pg:"content,use_zero"`
	Source      string     `pg:"source,use_zero"`
	CategoryID  int        `pg:"categoryId,use_zero"`
	Status      bool       `pg:"status,use_zero"`
	CreatedByID int        `pg:"createdById,use_zero"`
	UpdatedByID *int       `pg:"updatedById"`
	CreatedAt   time.Time  `pg:"createdAt,use_zero"`
	ModifiedAt  *time.Time `pg:"modifiedAt"`
	TagIDs      []int      `pg:"tagIds,array,use_zero"`

	Category  *Category `pg:"fk:categoryId,rel:has-one"`
	CreatedBy *Account  `pg:"fk:createdById,rel:has-one"`
	UpdatedBy *Account  `pg:"fk:updatedById,rel:has-one"`
}

type Tag struct {
	tableName struct{} `pg:"tags,alias:t,discard_unknown_columns"`

	ID   int    `pg:"tagId,pk"`
	Name string `pg:"name,use_zero"`
	Note string `pg:"note,use_zero"`
}
