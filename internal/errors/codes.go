package errors

// Error code constants, CATEGORY_SPECIFIC_DETAIL. The frontend maps these
// codes to display messages.

const (
	// Authentication (AUTH_)
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// Authorization (AUTHZ_)
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// Validation (VALIDATION_)
	ValidationInvalidInput   = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID      = "VALIDATION_INVALID_ID"
	ValidationInvalidRange   = "VALIDATION_INVALID_RANGE"
	ValidationRequired       = "VALIDATION_REQUIRED"
	ValidationInvalidSubject = "VALIDATION_INVALID_SUBJECT"

	// Resources (RESOURCE_)
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// Canteens (CANTEEN_)
	CanteenNotFound = "CANTEEN_NOT_FOUND"

	// Menu items (MENU_ITEM_)
	MenuItemNotFound = "MENU_ITEM_NOT_FOUND"

	// Reviews (REVIEW_)
	ReviewNotFound      = "REVIEW_NOT_FOUND"
	ReviewInvalidRating = "REVIEW_INVALID_RATING"
	ReviewRecomputeFail = "REVIEW_RECOMPUTE_FAILED"

	// Favorites (FAVORITE_)
	FavoriteNotFound      = "FAVORITE_NOT_FOUND"
	FavoriteAlreadyExists = "FAVORITE_ALREADY_EXISTS"

	// Uploads (UPLOAD_)
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// Internal (INTERNAL_)
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
