package dto

import "time"

// ---------------- Requests ----------------

// CreateNotificationRequest is one logical send; it fans out to one row per
// entry in UserIDs. Duplicate ids are not deduplicated on purpose.
type CreateNotificationRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=2000"`
	Type    string `json:"type" validate:"required,notification-type"`
	UserIDs []uint `json:"userIds" validate:"required,min=1,dive,gt=0"`
}

// BulkIDsRequest addresses a bulk mark or delete. All ids are expected to
// belong to one user; the service resolves only the first to pick the room.
type BulkIDsRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1,dive,gt=0"`
}

// ---------------- Responses ----------------

type NotificationResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount"`
}

// ---------------- Event payloads ----------------

// BulkEventPayload is the payload of every bulk realtime event.
type BulkEventPayload struct {
	IDs []uint `json:"ids"`
}

// DeletedEventPayload carries the id of a single removed notification.
type DeletedEventPayload struct {
	ID uint `json:"id"`
}
