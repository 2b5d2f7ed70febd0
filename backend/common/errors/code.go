package errors

// Generic error codes
const (
	ErrInternalServer = "ERR_INTERNAL_SERVER"
	ErrInvalidParam   = "ERR_INVALID_PARAM"
	ErrUnauthorized   = "ERR_UNAUTHORIZED"
	ErrForbidden      = "ERR_FORBIDDEN"
	ErrStorage        = "ERR_STORAGE"
)

// User error codes
const (
	ErrEmptyID            = "ERR_EMPTY_ID"
	ErrUserNotFound       = "ERR_USER_NOT_FOUND"
	ErrEmptyCredentials   = "ERR_EMPTY_CREDENTIALS"
	ErrInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrUserDisabled       = "ERR_USER_DISABLED"
	ErrEmailTaken         = "ERR_EMAIL_TAKEN"
	ErrUsernameTaken      = "ERR_USERNAME_TAKEN"
)

// Paper error codes
const (
	ErrPaperNotFound = "ERR_PAPER_NOT_FOUND"
)
