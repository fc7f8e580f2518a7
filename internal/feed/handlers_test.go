package feed

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

func newTestRouter(store Store) *mux.Router {
	handler := NewHandler(NewService(store), 10, 100)
	router := mux.NewRouter()
	RegisterRoutes(router, handler)
	return router
}

func TestGetFeedResponseShape(t *testing.T) {
	router := newTestRouter(newFakeStore(makePosts(12), makeAds(3)))

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var page FeedPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}

	if page.Page != 1 || page.Limit != 10 {
		t.Errorf("page/limit = %d/%d, want 1/10", page.Page, page.Limit)
	}
	if page.Total != 15 {
		t.Errorf("total = %d, want 15", page.Total)
	}
	if !page.HasMore {
		t.Error("has_more = false, want true")
	}
	if len(page.Items) != 10 {
		t.Errorf("len(feed) = %d, want 10", len(page.Items))
	}
}

func TestGetFeedCoercesBadParams(t *testing.T) {
	router := newTestRouter(newFakeStore(makePosts(3), nil))

	for _, query := range []string{"?page=0&limit=-5", "?page=abc&limit=xyz", "?limit=9999"} {
		req := httptest.NewRequest(http.MethodGet, "/api/feed"+query, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", query, rec.Code)
			continue
		}

		var page FeedPage
		if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
			t.Fatalf("%s: invalid JSON body: %v", query, err)
		}
		if page.Page < 1 || page.Limit < 1 || page.Limit > 100 {
			t.Errorf("%s: page/limit not coerced, got %d/%d", query, page.Page, page.Limit)
		}
	}
}

func TestGetFeedStoreFailure(t *testing.T) {
	store := newFakeStore(nil, nil)
	store.postsErr = errors.New("db down")
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] == "" {
		t.Error("error body missing 'error' key")
	}
}

func TestInteract(t *testing.T) {
	router := newTestRouter(newFakeStore(makePosts(1), nil))

	req := httptest.NewRequest(http.MethodPost, "/api/feed/post-1/interact",
		strings.NewReader(`{"type":"like"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success  bool `json:"success"`
		NewCount int  `json:"new_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if !body.Success || body.NewCount != 1 {
		t.Errorf("body = %+v, want success with new_count 1", body)
	}
}

func TestInteractInvalidType(t *testing.T) {
	router := newTestRouter(newFakeStore(makePosts(1), nil))

	req := httptest.NewRequest(http.MethodPost, "/api/feed/post-1/interact",
		strings.NewReader(`{"type":"boost"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestInteractUnknownContent(t *testing.T) {
	store := newFakeStore(nil, nil)
	store.missingItems["ghost"] = true
	router := newTestRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/api/feed/ghost/interact",
		strings.NewReader(`{"type":"share"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestInteractMalformedBody(t *testing.T) {
	router := newTestRouter(newFakeStore(makePosts(1), nil))

	req := httptest.NewRequest(http.MethodPost, "/api/feed/post-1/interact",
		strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
