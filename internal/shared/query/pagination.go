package query

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Pagination applies defaults and the boundary-layer cap. Services honor
// whatever bounded skip/limit they are handed; the cap lives here.
func Pagination(c *gin.Context) (page, limit int) {
	page = 1
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	limit = DefaultLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				l = MaxLimit
			}
			limit = l
		}
	}
	return page, limit
}

// BoolParam parses an optional boolean query parameter, nil when absent or
// malformed.
func BoolParam(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
