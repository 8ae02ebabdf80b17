package handlers

// AppHandlers bundles every handler for route registration.
type AppHandlers struct {
	NotificationHandler *NotificationHandler
	HealthHandler       *HealthHandler
}
