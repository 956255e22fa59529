package pagination_test

import (
	"net/http/httptest"
	"testing"

	"foodgram/internal/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseQuery(t *testing.T, query string, defaultLimit int) pagination.Params {
	t.Helper()
	app := fiber.New()
	var params pagination.Params
	app.Get("/probe", func(c *fiber.Ctx) error {
		params = pagination.Parse(c, defaultLimit)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/probe"+query, nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	return params
}

func TestParseDefaults(t *testing.T) {
	params := parseQuery(t, "", 6)
	assert.Equal(t, pagination.Params{Page: 1, Limit: 6}, params)
	assert.Equal(t, 0, params.Offset())
}

func TestParseOverrides(t *testing.T) {
	params := parseQuery(t, "?page=3&limit=2", 6)
	assert.Equal(t, pagination.Params{Page: 3, Limit: 2}, params)
	assert.Equal(t, 4, params.Offset())
}

func TestParseRejectsNonPositiveValues(t *testing.T) {
	params := parseQuery(t, "?page=0&limit=-5", 6)
	assert.Equal(t, pagination.Params{Page: 1, Limit: 6}, params)
}

func TestNewPageLinks(t *testing.T) {
	// Middle page: both links present.
	page := pagination.NewPage("/api/recipes", 10, pagination.Params{Page: 2, Limit: 3}, nil)
	require.NotNil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "/api/recipes?page=3&limit=3", *page.Next)
	assert.Equal(t, "/api/recipes?page=1&limit=3", *page.Previous)

	// First page of a short listing: no links at all.
	page = pagination.NewPage("/api/recipes", 3, pagination.Params{Page: 1, Limit: 6}, nil)
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)

	// Last page: previous only.
	page = pagination.NewPage("/api/recipes", 10, pagination.Params{Page: 4, Limit: 3}, nil)
	assert.Nil(t, page.Next)
	assert.NotNil(t, page.Previous)
}

func TestNewPageExactBoundary(t *testing.T) {
	// count == page*limit means the current page is the last one.
	page := pagination.NewPage("/api/recipes", 6, pagination.Params{Page: 1, Limit: 6}, nil)
	assert.Nil(t, page.Next)
}
