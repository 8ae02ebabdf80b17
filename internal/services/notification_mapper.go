package services

import (
	"notifyhub_backend/internal/models"
	"notifyhub_backend/internal/services/dto"
)

// Pure projections between the persisted entity and the wire DTOs. Given a
// well-formed record these never fail.

// ToEntity builds a not-yet-persisted row for one recipient. ID and
// CreatedAt stay zero; the store assigns them on save.
func ToEntity(req *dto.CreateNotificationRequest, userID uint) *models.Notification {
	return &models.Notification{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
		Type:    models.NotificationType(req.Type),
		IsRead:  false,
	}
}

// ToResponse is a total projection of the persisted fields.
func ToResponse(n *models.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		Type:      string(n.Type),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// ToResponseList maps element-wise, preserving order.
func ToResponseList(notifications []models.Notification) []*dto.NotificationResponse {
	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, ToResponse(&notifications[i]))
	}
	return responses
}
