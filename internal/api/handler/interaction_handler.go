package handler

import (
	"errors"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/newsdesk/portal-gateway/internal/api/metrics"
	"github.com/newsdesk/portal-gateway/internal/api/middleware"
	"github.com/newsdesk/portal-gateway/internal/core/domain"
	"github.com/newsdesk/portal-gateway/internal/core/ports"
	"github.com/newsdesk/portal-gateway/internal/session"
	"github.com/newsdesk/portal-gateway/internal/widgets"
)

// InteractionHandler relays the bookmark toggle and comment CRUD operations.
// Each request drives a widget controller seeded with the visitor's session,
// so the gateway enforces the same preconditions and rollback rules the
// client core does; the notice the widget emits travels back in the JSON.
type InteractionHandler struct {
	bookmarks ports.BookmarkAPI
	comments  ports.CommentAPI
	notify    widgets.Notifier
	log       zerolog.Logger
}

func NewInteractionHandler(bookmarks ports.BookmarkAPI, comments ports.CommentAPI, log zerolog.Logger) *InteractionHandler {
	return &InteractionHandler{
		bookmarks: bookmarks,
		comments:  comments,
		notify:    widgets.LogNotifier{Log: log},
		log:       log,
	}
}

// noticeCollector captures widget notices for the HTTP response and forwards
// them to the handler's notifier.
type noticeCollector struct {
	mu     sync.Mutex
	next   widgets.Notifier
	notice string
	failed bool
}

func (n *noticeCollector) Success(msg string) {
	n.mu.Lock()
	n.notice = msg
	n.failed = false
	n.mu.Unlock()
	if n.next != nil {
		n.next.Success(msg)
	}
}

func (n *noticeCollector) Error(msg string) {
	n.mu.Lock()
	n.notice = msg
	n.failed = true
	n.mu.Unlock()
	if n.next != nil {
		n.next.Error(msg)
	}
}

func (h *InteractionHandler) collect() *noticeCollector {
	return &noticeCollector{next: h.notify}
}

func requestStore(c echo.Context) *session.Store {
	st := session.NewStore()
	st.Set(middleware.CurrentUser(c))
	return st
}

type toggleBookmarkRequest struct {
	ArticleID  string `json:"articleId" validate:"required"`
	Bookmarked bool   `json:"bookmarked"`
}

type toggleBookmarkResponse struct {
	Bookmarked bool   `json:"bookmarked"`
	Notice     string `json:"notice,omitempty"`
}

// ToggleBookmark flips the bookmark state the client reports. The response
// echoes the state the backend acknowledged, which equals the request state
// when the call failed.
func (h *InteractionHandler) ToggleBookmark(c echo.Context) error {
	var req toggleBookmarkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	notices := h.collect()
	toggle := widgets.NewBookmarkToggle(req.ArticleID, req.Bookmarked, h.bookmarks, requestStore(c), notices)

	if err := toggle.Toggle(c.Request().Context()); err != nil {
		metrics.InteractionFailuresTotal.WithLabelValues("bookmark", "toggle").Inc()
		if errors.Is(err, domain.ErrLoginRequired) {
			return echo.NewHTTPError(http.StatusUnauthorized, notices.notice)
		}
		return err
	}

	return c.JSON(http.StatusOK, toggleBookmarkResponse{Bookmarked: toggle.Bookmarked(), Notice: notices.notice})
}

type commentResponse struct {
	Comment *domain.Comment `json:"comment,omitempty"`
	Notice  string          `json:"notice,omitempty"`
}

func (h *InteractionHandler) Comments(c echo.Context) error {
	thread := widgets.NewCommentThread(c.Param("articleId"), h.comments, requestStore(c), h.collect(), nil)
	if err := thread.Load(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"comments": thread.Comments()})
}

type createCommentRequest struct {
	ArticleID string `json:"articleId" validate:"required"`
	Content   string `json:"content" validate:"required"`
}

func (h *InteractionHandler) CreateComment(c echo.Context) error {
	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	notices := h.collect()
	thread := widgets.NewCommentThread(req.ArticleID, h.comments, requestStore(c), notices, nil)

	if err := thread.Post(c.Request().Context(), req.Content); err != nil {
		metrics.InteractionFailuresTotal.WithLabelValues("comment", "create").Inc()
		switch {
		case errors.Is(err, domain.ErrLoginRequired):
			return echo.NewHTTPError(http.StatusUnauthorized, notices.notice)
		case errors.Is(err, domain.ErrEmptyContent):
			return echo.NewHTTPError(http.StatusBadRequest, notices.notice)
		}
		return err
	}

	created := thread.Comments()
	resp := commentResponse{Notice: notices.notice}
	if len(created) > 0 {
		resp.Comment = &created[0]
	}
	return c.JSON(http.StatusCreated, resp)
}

type updateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *InteractionHandler) UpdateComment(c echo.Context) error {
	var req updateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	notices := h.collect()
	thread := widgets.NewCommentThread("", h.comments, requestStore(c), notices, nil)

	if err := thread.Update(c.Request().Context(), c.Param("id"), req.Content); err != nil {
		metrics.InteractionFailuresTotal.WithLabelValues("comment", "update").Inc()
		if errors.Is(err, domain.ErrEmptyContent) {
			return echo.NewHTTPError(http.StatusBadRequest, notices.notice)
		}
		return err
	}
	return c.JSON(http.StatusOK, commentResponse{Notice: notices.notice})
}

type deleteCommentRequest struct {
	Confirm bool `json:"confirm"`
}

type deleteCommentResponse struct {
	Deleted bool   `json:"deleted"`
	Notice  string `json:"notice,omitempty"`
}

// DeleteComment requires the client to state that the destructive
// confirmation happened; without it no backend call is made.
func (h *InteractionHandler) DeleteComment(c echo.Context) error {
	var req deleteCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	notices := h.collect()
	thread := widgets.NewCommentThread("", h.comments, requestStore(c), notices, func(string) bool { return req.Confirm })

	if err := thread.Delete(c.Request().Context(), c.Param("id")); err != nil {
		metrics.InteractionFailuresTotal.WithLabelValues("comment", "delete").Inc()
		return err
	}
	if !req.Confirm {
		return c.JSON(http.StatusOK, deleteCommentResponse{Deleted: false})
	}
	return c.JSON(http.StatusOK, deleteCommentResponse{Deleted: true, Notice: notices.notice})
}
