package services

import (
	"errors"
	"time"

	"notifyhub_backend/internal/logger"
	"notifyhub_backend/internal/repositories"
	"notifyhub_backend/internal/services/dto"
	"notifyhub_backend/pkg/apperrors"
)

// Realtime event names pushed into user rooms.
const (
	EventCreated          = "notification:created"
	EventMarkedRead       = "notification:marked_read"
	EventMarkedUnread     = "notification:marked_unread"
	EventDeleted          = "notification:deleted"
	EventBulkMarkedRead   = "notifications:marked_read"
	EventBulkMarkedUnread = "notifications:marked_unread"
	EventBulkDeleted      = "notifications:deleted"
	EventAllMarkedRead    = "notifications:marked_all_read"
)

// EventPublisher delivers fire-and-forget events into a user's room.
// Delivery is best-effort: the store write is already durable when an emit
// happens, so a failed or unheard push is recoverable via the REST read path.
type EventPublisher interface {
	EmitToUser(userID uint, event string, payload any)
}

type NotificationService interface {
	CreateNotification(req *dto.CreateNotificationRequest) ([]*dto.NotificationResponse, error)
	GetNotificationByID(id uint) (*dto.NotificationResponse, error)
	GetNotificationsByUserID(userID uint) ([]*dto.NotificationResponse, error)
	MarkAsRead(id uint) (*dto.NotificationResponse, error)
	MarkAsUnread(id uint) (*dto.NotificationResponse, error)
	MarkMultipleAsRead(ids []uint) error
	MarkMultipleAsUnread(ids []uint) error
	MarkAllAsRead(userID uint) error
	DeleteNotification(id uint) error
	DeleteMultipleNotifications(ids []uint) error
	GetUnreadCount(userID uint) (int64, error)
	CleanOldNotifications(maxAge time.Duration) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	publisher        EventPublisher
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	publisher EventPublisher,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// ---------------- Creation ----------------

// CreateNotification fans one logical send out to every id in req.UserIDs,
// one independent row per recipient. A recipient whose row fails to persist
// is skipped; the batch succeeds if at least one row was written.
func (s *notificationService) CreateNotification(req *dto.CreateNotificationRequest) ([]*dto.NotificationResponse, error) {
	if len(req.UserIDs) == 0 {
		return nil, apperrors.ErrNoRecipients
	}

	created := make([]*dto.NotificationResponse, 0, len(req.UserIDs))
	var failed []uint

	for _, userID := range req.UserIDs {
		notification := ToEntity(req, userID)

		if err := s.notificationRepo.Save(notification); err != nil {
			logger.Warn("Failed to persist notification for recipient",
				"user_id", userID, "error", err)
			failed = append(failed, userID)
			continue
		}

		response := ToResponse(notification)
		s.publisher.EmitToUser(userID, EventCreated, response)
		created = append(created, response)
	}

	if len(created) == 0 {
		return nil, apperrors.ErrAllRecipientsFailed
	}
	if len(failed) > 0 {
		logger.Warn("Notification fan-out completed partially",
			"created", len(created), "failed_user_ids", failed)
	}

	return created, nil
}

// ---------------- Reads ----------------

func (s *notificationService) GetNotificationByID(id uint) (*dto.NotificationResponse, error) {
	notification, err := s.notificationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrPersistence(err)
	}
	return ToResponse(notification), nil
}

func (s *notificationService) GetNotificationsByUserID(userID uint) ([]*dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrPersistence(err)
	}
	return ToResponseList(notifications), nil
}

func (s *notificationService) GetUnreadCount(userID uint) (int64, error) {
	count, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return 0, apperrors.ErrPersistence(err)
	}
	return count, nil
}

// ---------------- Read-state transitions ----------------

// MarkAsRead flips the flag to read. Marking an already-read notification is
// a silent success; the event fires either way.
func (s *notificationService) MarkAsRead(id uint) (*dto.NotificationResponse, error) {
	return s.setReadState(id, true, EventMarkedRead)
}

func (s *notificationService) MarkAsUnread(id uint) (*dto.NotificationResponse, error) {
	return s.setReadState(id, false, EventMarkedUnread)
}

func (s *notificationService) setReadState(id uint, isRead bool, event string) (*dto.NotificationResponse, error) {
	notification, err := s.notificationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.ErrPersistence(err)
	}

	notification.IsRead = isRead
	if err := s.notificationRepo.Save(notification); err != nil {
		return nil, apperrors.ErrPersistence(err)
	}

	response := ToResponse(notification)
	s.publisher.EmitToUser(notification.UserID, event, response)
	return response, nil
}

// MarkMultipleAsRead updates every listed row in one statement.
// Precondition on the caller: all ids belong to one user. Only the first id
// is resolved, and its owner's room receives the single bulk event.
func (s *notificationService) MarkMultipleAsRead(ids []uint) error {
	return s.setReadStateMultiple(ids, true, EventBulkMarkedRead)
}

func (s *notificationService) MarkMultipleAsUnread(ids []uint) error {
	return s.setReadStateMultiple(ids, false, EventBulkMarkedUnread)
}

func (s *notificationService) setReadStateMultiple(ids []uint, isRead bool, event string) error {
	if len(ids) == 0 {
		return apperrors.ErrEmptyIDList
	}

	first, err := s.notificationRepo.FindByID(ids[0])
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.ErrPersistence(err)
	}

	affected, err := s.notificationRepo.UpdateMultiple(ids, map[string]interface{}{"is_read": isRead})
	if err != nil {
		return apperrors.ErrPersistence(err)
	}
	if affected == 0 {
		return apperrors.ErrNoRowsAffected
	}

	s.publisher.EmitToUser(first.UserID, event, &dto.BulkEventPayload{IDs: ids})
	return nil
}

// MarkAllAsRead flips every unread notification the user owns. Zero unread
// rows is a success, not an error.
func (s *notificationService) MarkAllAsRead(userID uint) error {
	affected, err := s.notificationRepo.MarkAllRead(userID)
	if err != nil {
		return apperrors.ErrPersistence(err)
	}
	if affected > 0 {
		s.publisher.EmitToUser(userID, EventAllMarkedRead, map[string]uint{"userId": userID})
	}
	return nil
}

// ---------------- Deletion ----------------

func (s *notificationService) DeleteNotification(id uint) error {
	// Resolve first to capture the owner for the push event.
	notification, err := s.notificationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.ErrPersistence(err)
	}

	if err := s.notificationRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.ErrPersistence(err)
	}

	s.publisher.EmitToUser(notification.UserID, EventDeleted, &dto.DeletedEventPayload{ID: id})
	return nil
}

// DeleteMultipleNotifications follows the same first-id-determines-room
// policy as the bulk mark operations.
func (s *notificationService) DeleteMultipleNotifications(ids []uint) error {
	if len(ids) == 0 {
		return apperrors.ErrEmptyIDList
	}

	first, err := s.notificationRepo.FindByID(ids[0])
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.ErrPersistence(err)
	}

	affected, err := s.notificationRepo.DeleteMultiple(ids)
	if err != nil {
		return apperrors.ErrPersistence(err)
	}
	if affected == 0 {
		return apperrors.ErrNoRowsAffected
	}

	s.publisher.EmitToUser(first.UserID, EventBulkDeleted, &dto.BulkEventPayload{IDs: ids})
	return nil
}

// ---------------- Retention ----------------

// CleanOldNotifications purges read rows older than maxAge. No events fire;
// clients discover the removal through the REST read path.
func (s *notificationService) CleanOldNotifications(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	removed, err := s.notificationRepo.DeleteReadOlderThan(cutoff)
	if err != nil {
		return 0, apperrors.ErrPersistence(err)
	}
	return removed, nil
}
