// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Users
	KeyUserNotFound  = "user.not_found"
	KeyUserSuspended = "user.suspended"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Options
	KeyOptionTypeCreated   = "option_type.created"
	KeyOptionTypeUpdated   = "option_type.updated"
	KeyOptionTypeDeleted   = "option_type.deleted"
	KeyOptionTypeNotFound  = "option_type.not_found"
	KeyOptionValueCreated  = "option_value.created"
	KeyOptionValueUpdated  = "option_value.updated"
	KeyOptionValueDeleted  = "option_value.deleted"
	KeyOptionValueNotFound = "option_value.not_found"

	// Combinations
	KeyCombinationCreated      = "combination.created"
	KeyCombinationUpdated      = "combination.updated"
	KeyCombinationDeleted      = "combination.deleted"
	KeyCombinationDeactivated  = "combination.deactivated"
	KeyCombinationNotFound     = "combination.not_found"
	KeyCombinationDuplicate    = "combination.duplicate"
	KeyCombinationOutOfStock   = "combination.out_of_stock"
	KeyCombinationStockUpdated = "combination.stock_updated"
	KeyCombinationsGenerated   = "combination.generated"

	// Cart
	KeyCartItemAdded    = "cart.item_added"
	KeyCartItemUpdated  = "cart.item_updated"
	KeyCartItemRemoved  = "cart.item_removed"
	KeyCartCleared      = "cart.cleared"
	KeyCartItemNotFound = "cart.not_found"
	KeyCartEmpty        = "cart.empty"

	// Orders
	KeyOrderPlaced    = "order.placed"
	KeyOrderCancelled = "order.cancelled"
	KeyOrderNotFound  = "order.not_found"

	// Payments
	KeyPaymentSuccess  = "payment.success"
	KeyPaymentFailed   = "payment.failed"
	KeyPaymentRefunded = "payment.refunded"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// Notifications
	KeyNotificationNotFound = "notification.not_found"
)
