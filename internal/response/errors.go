package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"
	ErrResetTokenInvalid  ErrCode = "RESET_TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly  ErrCode = "ADMIN_ACCESS_ONLY"
	ErrRoleNotPermitted ErrCode = "ROLE_NOT_PERMITTED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound    ErrCode = "NOT_FOUND"
	ErrConflict    ErrCode = "CONFLICT"
	ErrUserExists  ErrCode = "USER_ALREADY_EXISTS"
	ErrUserMissing ErrCode = "USER_NOT_FOUND"

	// ─── Paper-specific ────────────────────────────────────────────────
	ErrPaperNotFound   ErrCode = "PAPER_NOT_FOUND"
	ErrPaperGeneration ErrCode = "PAPER_GENERATION_FAILED"

	// ─── Question-specific ─────────────────────────────────────────────
	ErrQuestionNotFound ErrCode = "QUESTION_NOT_FOUND"
	ErrImportFailed     ErrCode = "QUESTION_IMPORT_FAILED"

	// ─── Media ─────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal    ErrCode = "INTERNAL_ERROR"
	ErrMailDeliver ErrCode = "MAIL_DELIVERY_FAILED"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid email or password."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid."
	case ErrTokenExpired:
		return "Authentication token has expired."
	case ErrResetTokenInvalid:
		return "Password reset token is invalid or has expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."
	case ErrRoleNotPermitted:
		return "Your role does not permit this action."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrUserExists:
		return "A user with this email already exists."
	case ErrUserMissing:
		return "User not found."

	// ─── Paper-specific ────────────────────────────────────────────────
	case ErrPaperNotFound:
		return "Paper not found"
	case ErrPaperGeneration:
		return "Failed to generate paper"

	// ─── Question-specific ─────────────────────────────────────────────
	case ErrQuestionNotFound:
		return "Question not found."
	case ErrImportFailed:
		return "Failed to import questions from the uploaded file."

	// ─── Media ─────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "A file upload is required."
	case ErrUnsupportedFile:
		return "Unsupported file type."
	case ErrFileTooLarge:
		return "File size exceeds the limit."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	case ErrMailDeliver:
		return "Failed to send email."
	default:
		return "An unexpected error occurred."
	}
}
