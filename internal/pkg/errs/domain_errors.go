package errs

import "errors"

// Sentinel errors shared across usecase layers. Handlers translate these into
// HTTP statuses; nothing below the handler layer returns a bare infra error.
var (
	// Validation
	ErrValidation       = errors.New("validation error")
	ErrInvalidStay      = errors.New("departure must be after arrival")
	ErrStayInPast       = errors.New("arrival cannot be in the past")
	ErrMissingGuestInfo = errors.New("guest contact details required")

	// Availability
	ErrDatesUnavailable = errors.New("requested dates are unavailable")

	// Lifecycle
	ErrInvalidTransition = errors.New("invalid reservation state transition")

	// Authorization
	ErrForbidden            = errors.New("forbidden")
	ErrAuthenticationFailed = errors.New("authentication failed")

	// Registration
	ErrEmailAlreadyRegistered = errors.New("email is already registered")

	// Not found
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomTypeNotFound    = errors.New("room type not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrUserNotFound        = errors.New("user not found")

	// Review gating
	ErrReviewNotEligible = errors.New("reservation is not eligible for review")
	ErrDuplicateReview   = errors.New("review already exists for this reservation")

	// Operation
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
