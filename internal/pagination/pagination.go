// Package pagination implements page-based listing with a caller-overridable
// page size and a count/next/previous/results response envelope.
package pagination

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Params is the parsed pagination request.
type Params struct {
	Page  int
	Limit int
}

// Parse reads the "page" and "limit" query parameters, falling back to page 1
// and the configured default page size.
func Parse(c *fiber.Ctx, defaultLimit int) Params {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset converts the page number to a row offset.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is the response envelope for paginated listings.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// NewPage wraps results in the envelope, deriving next/previous links from
// the request path and the total count.
func NewPage(path string, count int64, p Params, results interface{}) Page {
	page := Page{Count: count, Results: results}
	if int64(p.Page*p.Limit) < count {
		next := fmt.Sprintf("%s?page=%d&limit=%d", path, p.Page+1, p.Limit)
		page.Next = &next
	}
	if p.Page > 1 {
		previous := fmt.Sprintf("%s?page=%d&limit=%d", path, p.Page-1, p.Limit)
		page.Previous = &previous
	}
	return page
}
