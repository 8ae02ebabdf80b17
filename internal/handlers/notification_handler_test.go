package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notifyhub_backend/internal/handlers"
	"notifyhub_backend/internal/logger"
	"notifyhub_backend/internal/services/dto"
	"notifyhub_backend/internal/validator"
	"notifyhub_backend/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

// stubNotificationService lets each test plug in just the behavior it needs.
type stubNotificationService struct {
	createFn         func(req *dto.CreateNotificationRequest) ([]*dto.NotificationResponse, error)
	getByIDFn        func(id uint) (*dto.NotificationResponse, error)
	getByUserFn      func(userID uint) ([]*dto.NotificationResponse, error)
	markReadFn       func(id uint) (*dto.NotificationResponse, error)
	markUnreadFn     func(id uint) (*dto.NotificationResponse, error)
	markMultiReadFn  func(ids []uint) error
	markMultiUnrdFn  func(ids []uint) error
	markAllReadFn    func(userID uint) error
	deleteFn         func(id uint) error
	deleteMultipleFn func(ids []uint) error
	unreadCountFn    func(userID uint) (int64, error)
}

func (s *stubNotificationService) CreateNotification(req *dto.CreateNotificationRequest) ([]*dto.NotificationResponse, error) {
	return s.createFn(req)
}
func (s *stubNotificationService) GetNotificationByID(id uint) (*dto.NotificationResponse, error) {
	return s.getByIDFn(id)
}
func (s *stubNotificationService) GetNotificationsByUserID(userID uint) ([]*dto.NotificationResponse, error) {
	return s.getByUserFn(userID)
}
func (s *stubNotificationService) MarkAsRead(id uint) (*dto.NotificationResponse, error) {
	return s.markReadFn(id)
}
func (s *stubNotificationService) MarkAsUnread(id uint) (*dto.NotificationResponse, error) {
	return s.markUnreadFn(id)
}
func (s *stubNotificationService) MarkMultipleAsRead(ids []uint) error  { return s.markMultiReadFn(ids) }
func (s *stubNotificationService) MarkMultipleAsUnread(ids []uint) error {
	return s.markMultiUnrdFn(ids)
}
func (s *stubNotificationService) MarkAllAsRead(userID uint) error { return s.markAllReadFn(userID) }
func (s *stubNotificationService) DeleteNotification(id uint) error {
	return s.deleteFn(id)
}
func (s *stubNotificationService) DeleteMultipleNotifications(ids []uint) error {
	return s.deleteMultipleFn(ids)
}
func (s *stubNotificationService) GetUnreadCount(userID uint) (int64, error) {
	return s.unreadCountFn(userID)
}
func (s *stubNotificationService) CleanOldNotifications(maxAge time.Duration) (int64, error) {
	return 0, nil
}

func newTestRouter(svc *stubNotificationService) *gin.Engine {
	router := gin.New()
	base := handlers.NewBaseHandler(validator.New())
	handler := handlers.NewNotificationHandler(base, svc)
	api := router.Group("/api")
	handler.RegisterRoutes(api)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sampleResponse(id, userID uint) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        id,
		UserID:    userID,
		Title:     "Build finished",
		Content:   "Pipeline #42 completed",
		Type:      "info",
		IsRead:    false,
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestCreateNotification_Created(t *testing.T) {
	t.Parallel()

	svc := &stubNotificationService{
		createFn: func(req *dto.CreateNotificationRequest) ([]*dto.NotificationResponse, error) {
			assert.Equal(t, []uint{1, 2}, req.UserIDs)
			return []*dto.NotificationResponse{sampleResponse(10, 1), sampleResponse(11, 2)}, nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPost, "/api/notifications", gin.H{
		"title":   "Build finished",
		"content": "Pipeline #42 completed",
		"type":    "info",
		"userIds": []uint{1, 2},
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var responses []dto.NotificationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &responses))
	require.Len(t, responses, 2)
	assert.Equal(t, uint(1), responses[0].UserID)
	assert.Equal(t, uint(2), responses[1].UserID)
}

func TestCreateNotification_ValidationFailure(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubNotificationService{})

	rec := doJSON(t, router, http.MethodPost, "/api/notifications", gin.H{
		"content": "missing title and recipients",
		"type":    "info",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestCreateNotification_UnknownType(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubNotificationService{})

	rec := doJSON(t, router, http.MethodPost, "/api/notifications", gin.H{
		"title":   "t",
		"content": "c",
		"type":    "urgent",
		"userIds": []uint{1},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetNotification_NotFound(t *testing.T) {
	t.Parallel()

	svc := &stubNotificationService{
		getByIDFn: func(id uint) (*dto.NotificationResponse, error) {
			return nil, apperrors.ErrNotFound(nil)
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodGet, "/api/notifications/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetNotification_InvalidID(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubNotificationService{})

	for _, path := range []string{
		"/api/notifications/abc",
		"/api/notifications/0",
		"/api/notifications/-1",
	} {
		rec := doJSON(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "path %s", path)
	}
}

func TestBulkRead_NotCapturedByIDRoute(t *testing.T) {
	t.Parallel()

	var gotIDs []uint
	svc := &stubNotificationService{
		markMultiReadFn: func(ids []uint) error {
			gotIDs = ids
			return nil
		},
	}
	router := newTestRouter(svc)

	// A literal "bulk" segment must reach the bulk handler, never the
	// parameterized id route.
	rec := doJSON(t, router, http.MethodPatch, "/api/notifications/bulk/read", gin.H{
		"ids": []uint{1, 2, 3},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint{1, 2, 3}, gotIDs)
}

func TestBulkRead_EmptyIDList(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&stubNotificationService{})

	rec := doJSON(t, router, http.MethodPatch, "/api/notifications/bulk/read", gin.H{
		"ids": []uint{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkDelete(t *testing.T) {
	t.Parallel()

	var gotIDs []uint
	svc := &stubNotificationService{
		deleteMultipleFn: func(ids []uint) error {
			gotIDs = ids
			return nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodDelete, "/api/notifications/bulk", gin.H{
		"ids": []uint{5, 6},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint{5, 6}, gotIDs)
}

func TestMarkAsRead_ReturnsUpdatedNotification(t *testing.T) {
	t.Parallel()

	svc := &stubNotificationService{
		markReadFn: func(id uint) (*dto.NotificationResponse, error) {
			resp := sampleResponse(id, 3)
			resp.IsRead = true
			return resp, nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPatch, "/api/notifications/15/read", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.NotificationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(15), resp.ID)
	assert.True(t, resp.IsRead)
}

func TestGetUnreadCount(t *testing.T) {
	t.Parallel()

	svc := &stubNotificationService{
		unreadCountFn: func(userID uint) (int64, error) {
			assert.Equal(t, uint(9), userID)
			return 4, nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodGet, "/api/notifications/user/9/unread-count", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.UnreadCountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(4), resp.UnreadCount)
}

func TestGetUserNotifications(t *testing.T) {
	t.Parallel()

	svc := &stubNotificationService{
		getByUserFn: func(userID uint) ([]*dto.NotificationResponse, error) {
			return []*dto.NotificationResponse{sampleResponse(2, userID), sampleResponse(1, userID)}, nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodGet, "/api/notifications/user/3", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var responses []dto.NotificationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &responses))
	require.Len(t, responses, 2)
	assert.Equal(t, uint(2), responses[0].ID)
}

func TestDeleteNotification_ServiceFailure(t *testing.T) {
	t.Parallel()

	svc := &stubNotificationService{
		deleteFn: func(id uint) error {
			return apperrors.ErrPersistence(assert.AnError)
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodDelete, "/api/notifications/7", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMarkAllAsRead(t *testing.T) {
	t.Parallel()

	var gotUserID uint
	svc := &stubNotificationService{
		markAllReadFn: func(userID uint) error {
			gotUserID = userID
			return nil
		},
	}
	router := newTestRouter(svc)

	rec := doJSON(t, router, http.MethodPatch, "/api/notifications/user/12/read-all", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(12), gotUserID)
}
