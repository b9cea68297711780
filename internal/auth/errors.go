package auth

// ValidationError は利用者に表示する想定内の失敗を表します。
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrPasswordMismatch   = &ValidationError{Code: "MISMATCHED_PASSWORD", Message: "Passwords do not match."}
	ErrWeakPassword       = &ValidationError{Code: "WEAK_PASSWORD", Message: "Password must be at least 8 characters long."}
	ErrDuplicateUsername  = &ValidationError{Code: "DUPLICATE_USERNAME", Message: "Username already exists."}
	ErrInvalidCredentials = &ValidationError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password."}
)
