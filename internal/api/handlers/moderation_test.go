package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playscore/playscore-backend/internal/mocks"
	"github.com/playscore/playscore-backend/internal/models"
	"github.com/playscore/playscore-backend/internal/moderation"
	"github.com/playscore/playscore-backend/internal/utils"
)

func moderationTestRouter(store *mocks.MockModerationStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	queue := moderation.NewQueue(store)
	machine := moderation.NewStateMachine(store, mocks.NewMockNotifier())
	handler := NewModerationHandler(queue, machine)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uint(100))
		c.Set("user_role", "moderator")
	})
	router.POST("/moderation/batch", handler.BatchModerate)
	router.POST("/moderation/:item_id", handler.ModerateItem)
	return router
}

func TestModerateItemUnknownAction(t *testing.T) {
	store := mocks.NewMockModerationStore()
	store.AddComment(&models.Comment{ID: 1, UserID: 5, GameID: 9, Body: "pending", CreatedAt: time.Now()})

	router := moderationTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/moderation/1", strings.NewReader(`{"action":"promote"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var resp utils.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != moderation.ErrInvalidAction.Error() {
		t.Errorf("expected %q, got %q", moderation.ErrInvalidAction.Error(), resp.Error)
	}
	if store.Comments[1].IsApproved || store.Comments[1].IsFlagged {
		t.Error("unknown action must not change item state")
	}
}

func TestModerateItemApprove(t *testing.T) {
	store := mocks.NewMockModerationStore()
	store.AddComment(&models.Comment{ID: 1, UserID: 5, GameID: 9, Body: "pending", CreatedAt: time.Now()})

	router := moderationTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/moderation/1", strings.NewReader(`{"action":"approve"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !store.Comments[1].IsApproved {
		t.Error("expected comment approved")
	}
}

func TestBatchModerateUnknownAction(t *testing.T) {
	store := mocks.NewMockModerationStore()
	store.AddComment(&models.Comment{ID: 1, UserID: 5, GameID: 9, Body: "pending", CreatedAt: time.Now()})

	router := moderationTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/moderation/batch", strings.NewReader(`{"items":["1"],"action":"promote"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected batch to complete with per-item results, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), moderation.ErrInvalidAction.Error()) {
		t.Errorf("expected per-item invalid action error, got %s", w.Body.String())
	}
}
