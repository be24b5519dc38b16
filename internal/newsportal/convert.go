package newsportal

import (
	"github.com/daniilsolovey/fu-news/internal/db"
)

func NewAccount(a *db.Account) Account {
	return Account{Account: *a}
}

func NewAccounts(list []db.Account) []Account {
	out := make([]Account, len(list))
	for i := range list {
		out[i] = NewAccount(&list[i])
	}
	return out
}

func NewCategory(c *db.Category) Category {
	return Category{Category: *c}
}

func NewCategories(list []db.Category) []Category {
	out := make([]Category, len(list))
	for i := range list {
		out[i] = NewCategory(&list[i])
	}
	return out
}

func NewTag(t *db.Tag) Tag {
	return Tag{Tag: *t}
}

func NewTags(list []db.Tag) []Tag {
	out := make([]Tag, len(list))
	for i := range list {
		out[i] = NewTag(&list[i])
	}
	return out
}

func NewNews(n *db.News) News {
	return News{News: *n}
}

func NewNewsList(list []db.News) []News {
	out := make([]News, len(list))
	for i := range list {
		out[i] = NewNews(&list[i])
	}
	return out
}

// uniqueTagIDs returns every tag id referenced by the list, in first-seen order.
func uniqueTagIDs(list []News) []int {
	seen := make(map[int]struct{})
	ids := []int{}
	for i := range list {
		for _, id := range list[i].TagIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// setTags resolves TagIDs of every news to loaded tags. Unknown ids are skipped.
func setTags(list []News, tags []Tag) {
	index := make(map[int]Tag, len(tags))
	for _, t := range tags {
		index[t.ID] = t
	}

	for i := range list {
		list[i].Tags = make([]Tag, 0, len(list[i].TagIDs))
		for _, id := range list[i].TagIDs {
			if t, ok := index[id]; ok {
				list[i].Tags = append(list[i].Tags, t)
			}
		}
	}
}
