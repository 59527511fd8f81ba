package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/newsdesk/portal-gateway/internal/core/domain"
)

type stubBookmarkAPI struct {
	addCalls    int32
	removeCalls int32
	err         error
}

func (s *stubBookmarkAPI) Bookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	return nil, nil
}

func (s *stubBookmarkAPI) AddBookmark(ctx context.Context, articleID string) error {
	atomic.AddInt32(&s.addCalls, 1)
	return s.err
}

func (s *stubBookmarkAPI) RemoveBookmark(ctx context.Context, articleID string) error {
	atomic.AddInt32(&s.removeCalls, 1)
	return s.err
}

type stubCommentAPI struct {
	postCalls   int32
	deleteCalls int32
	err         error
}

func (s *stubCommentAPI) Comments(ctx context.Context, articleID string) ([]domain.Comment, error) {
	return []domain.Comment{{ID: "c1", ArticleID: articleID, Content: "first"}}, nil
}

func (s *stubCommentAPI) PostComment(ctx context.Context, articleID, content string) (*domain.Comment, error) {
	atomic.AddInt32(&s.postCalls, 1)
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Comment{ID: "c-new", ArticleID: articleID, Content: content, CreatedAt: time.Now()}, nil
}

func (s *stubCommentAPI) UpdateComment(ctx context.Context, id, content string) error {
	return s.err
}

func (s *stubCommentAPI) DeleteComment(ctx context.Context, id string) error {
	atomic.AddInt32(&s.deleteCalls, 1)
	return s.err
}

func interactionContext(t *testing.T, method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session_user", user)
	return c, rec
}

func staffUser() *domain.User {
	return &domain.User{ID: "u1", Email: "editor@example.com", Role: domain.RoleEditor, IsActive: true}
}

func TestToggleBookmark_AnonymousRejected(t *testing.T) {
	bookmarks := &stubBookmarkAPI{}
	h := NewInteractionHandler(bookmarks, &stubCommentAPI{}, zerolog.Nop())

	c, _ := interactionContext(t, http.MethodPost, "/bookmarks/toggle", `{"articleId":"a1","bookmarked":false}`, nil)

	err := h.ToggleBookmark(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if n := atomic.LoadInt32(&bookmarks.addCalls) + atomic.LoadInt32(&bookmarks.removeCalls); n != 0 {
		t.Fatalf("backend called %d times for an anonymous toggle", n)
	}
}

func TestToggleBookmark_FlipsAfterAck(t *testing.T) {
	bookmarks := &stubBookmarkAPI{}
	h := NewInteractionHandler(bookmarks, &stubCommentAPI{}, zerolog.Nop())

	c, rec := interactionContext(t, http.MethodPost, "/bookmarks/toggle", `{"articleId":"a1","bookmarked":false}`, staffUser())

	if err := h.ToggleBookmark(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp toggleBookmarkResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Bookmarked {
		t.Fatalf("expected bookmarked=true after acknowledged toggle")
	}
	if n := atomic.LoadInt32(&bookmarks.addCalls); n != 1 {
		t.Fatalf("expected one AddBookmark call, got %d", n)
	}
}

func TestToggleBookmark_FailureKeepsState(t *testing.T) {
	bookmarks := &stubBookmarkAPI{err: domain.ErrNotFound}
	h := NewInteractionHandler(bookmarks, &stubCommentAPI{}, zerolog.Nop())

	c, _ := interactionContext(t, http.MethodPost, "/bookmarks/toggle", `{"articleId":"a1","bookmarked":false}`, staffUser())

	if err := h.ToggleBookmark(c); err == nil {
		t.Fatalf("expected error from failed toggle")
	}
}

func TestCreateComment_BlankContentRejected(t *testing.T) {
	comments := &stubCommentAPI{}
	h := NewInteractionHandler(&stubBookmarkAPI{}, comments, zerolog.Nop())

	c, _ := interactionContext(t, http.MethodPost, "/comments", `{"articleId":"a1","content":"   "}`, staffUser())

	err := h.CreateComment(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
	if n := atomic.LoadInt32(&comments.postCalls); n != 0 {
		t.Fatalf("backend called %d times for blank content", n)
	}
}

func TestCreateComment_ReturnsServerRecord(t *testing.T) {
	comments := &stubCommentAPI{}
	h := NewInteractionHandler(&stubBookmarkAPI{}, comments, zerolog.Nop())

	c, rec := interactionContext(t, http.MethodPost, "/comments", `{"articleId":"a1","content":"nice read"}`, staffUser())

	if err := h.CreateComment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp commentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Comment == nil || resp.Comment.ID != "c-new" {
		t.Fatalf("expected the server-assigned record, got %+v", resp.Comment)
	}
}

func TestDeleteComment_UnconfirmedMakesNoCall(t *testing.T) {
	comments := &stubCommentAPI{}
	h := NewInteractionHandler(&stubBookmarkAPI{}, comments, zerolog.Nop())

	c, rec := interactionContext(t, http.MethodDelete, "/comments/c1", `{"confirm":false}`, staffUser())
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := h.DeleteComment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp deleteCommentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Deleted {
		t.Fatalf("expected deleted=false without confirmation")
	}
	if n := atomic.LoadInt32(&comments.deleteCalls); n != 0 {
		t.Fatalf("backend called %d times without confirmation", n)
	}
}

func TestDeleteComment_Confirmed(t *testing.T) {
	comments := &stubCommentAPI{}
	h := NewInteractionHandler(&stubBookmarkAPI{}, comments, zerolog.Nop())

	c, rec := interactionContext(t, http.MethodDelete, "/comments/c1", `{"confirm":true}`, staffUser())
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := h.DeleteComment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp deleteCommentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Deleted {
		t.Fatalf("expected deleted=true")
	}
	if n := atomic.LoadInt32(&comments.deleteCalls); n != 1 {
		t.Fatalf("expected one DeleteComment call, got %d", n)
	}
}
