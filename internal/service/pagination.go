package service

import "scribe/internal/models"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// MsgInvalidPagination is returned for negative limit or offset values.
const MsgInvalidPagination = "limit and offset must be non-negative integers"

// Page is a validated limit/offset window.
type Page struct {
	Limit  int
	Offset int
}

// NewPage validates limit and offset. A zero limit means DefaultPageLimit and
// limits above MaxPageLimit are clamped.
func NewPage(limit, offset int) (Page, error) {
	if limit < 0 || offset < 0 {
		return Page{}, models.NewValidationError(MsgInvalidPagination)
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{Limit: limit, Offset: offset}, nil
}
