package newsportal

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrTagNameExists      = errors.New("tag name already exists")
	ErrSelfParent         = errors.New("category cannot be its own parent")
	ErrParentNotFound     = errors.New("parent category not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryInactive   = errors.New("category is inactive")
	ErrInUse              = errors.New("referenced by other records")
	ErrHasNews            = fmt.Errorf("%w: news articles", ErrInUse)
	ErrHasChildren        = fmt.Errorf("%w: child categories", ErrInUse)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidPeriod      = errors.New("start date must not be after end date")
)
