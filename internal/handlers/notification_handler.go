package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notifyhub_backend/internal/services"
	"notifyhub_backend/internal/services/dto"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

// RegisterRoutes wires the notification routes. Bulk routes are registered
// before the `:id` routes so that a literal "bulk" path segment is never
// captured by the id parameter matcher.
func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup, mutating ...gin.HandlerFunc) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("/user/:userId", h.GetUserNotifications)
		notifications.GET("/user/:userId/unread-count", h.GetUnreadCount)

		guarded := notifications.Group("")
		guarded.Use(mutating...)
		{
			guarded.POST("", h.CreateNotification)
			guarded.PATCH("/bulk/read", h.MarkMultipleAsRead)
			guarded.PATCH("/bulk/unread", h.MarkMultipleAsUnread)
			guarded.PATCH("/user/:userId/read-all", h.MarkAllAsRead)
			guarded.PATCH("/:id/read", h.MarkAsRead)
			guarded.PATCH("/:id/unread", h.MarkAsUnread)
			guarded.DELETE("/bulk", h.DeleteMultipleNotifications)
			guarded.DELETE("/:id", h.DeleteNotification)
		}

		notifications.GET("/:id", h.GetNotification)
	}
}

func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	created, err := h.notificationService.CreateNotification(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *NotificationHandler) GetNotification(c *gin.Context) {
	id, ok := h.ParseParamUint(c, "id")
	if !ok {
		return
	}

	notification, err := h.notificationService.GetNotificationByID(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) GetUserNotifications(c *gin.Context) {
	userID, ok := h.ParseParamUint(c, "userId")
	if !ok {
		return
	}

	notifications, err := h.notificationService.GetNotificationsByUserID(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := h.ParseParamUint(c, "userId")
	if !ok {
		return
	}

	count, err := h.notificationService.GetUnreadCount(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{UnreadCount: count})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, ok := h.ParseParamUint(c, "id")
	if !ok {
		return
	}

	updated, err := h.notificationService.MarkAsRead(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *NotificationHandler) MarkAsUnread(c *gin.Context) {
	id, ok := h.ParseParamUint(c, "id")
	if !ok {
		return
	}

	updated, err := h.notificationService.MarkAsUnread(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *NotificationHandler) MarkMultipleAsRead(c *gin.Context) {
	var req dto.BulkIDsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.notificationService.MarkMultipleAsRead(req.IDs); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked as read"})
}

func (h *NotificationHandler) MarkMultipleAsUnread(c *gin.Context) {
	var req dto.BulkIDsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.notificationService.MarkMultipleAsUnread(req.IDs); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked as unread"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := h.ParseParamUint(c, "userId")
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllAsRead(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id, ok := h.ParseParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.DeleteNotification(id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}

func (h *NotificationHandler) DeleteMultipleNotifications(c *gin.Context) {
	var req dto.BulkIDsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.notificationService.DeleteMultipleNotifications(req.IDs); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications deleted successfully"})
}
