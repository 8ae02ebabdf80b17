package models

// NotificationType is the severity class of a notification.
type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
)

// IsValidNotificationType reports whether t is one of the known types.
func IsValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationTypeInfo, NotificationTypeWarning, NotificationTypeError:
		return true
	default:
		return false
	}
}

// Notification is one recipient's copy of a delivered message. A send to N
// recipients produces N independent rows; read state is never shared.
type Notification struct {
	BaseModel
	UserID  uint             `gorm:"not null;index" json:"user_id"`
	Type    NotificationType `gorm:"not null" json:"type"`
	Title   string           `gorm:"not null" json:"title"`
	Content string           `gorm:"not null" json:"content"`
	IsRead  bool             `gorm:"default:false" json:"is_read"`
}
