package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/newsdesk/portal-gateway/internal/core/ports"
)

// ContentHandler serves the public article and category reads.
type ContentHandler struct {
	content ports.ContentAPI
}

func NewContentHandler(content ports.ContentAPI) *ContentHandler {
	return &ContentHandler{content: content}
}

func (h *ContentHandler) Articles(c echo.Context) error {
	q := ports.ArticleQuery{
		CategorySlug: c.QueryParam("category"),
		Search:       c.QueryParam("search"),
	}
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		q.Page = page
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		q.Limit = limit
	}

	articles, err := h.content.Articles(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"articles": articles})
}

func (h *ContentHandler) ArticleBySlug(c echo.Context) error {
	article, err := h.content.ArticleBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"article": article})
}

func (h *ContentHandler) Categories(c echo.Context) error {
	categories, err := h.content.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"categories": categories})
}

func (h *ContentHandler) CategoryBySlug(c echo.Context) error {
	category, err := h.content.CategoryBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"category": category})
}
