package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"notifyhub_backend/internal/models"
)

// registerCustomRules installs the domain validation rules.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Startup misconfiguration, refuse to run.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'notification-type': value must be a known severity class
	mustRegister("notification-type", validateNotificationType)
}

func validateNotificationType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty values are handled by 'required'
	}
	return models.IsValidNotificationType(models.NotificationType(value))
}
