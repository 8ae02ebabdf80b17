package services

// ServiceContainer bundles every service handed to the handler layer.
type ServiceContainer struct {
	NotificationService NotificationService
}
