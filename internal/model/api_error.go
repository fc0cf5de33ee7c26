package model

import "net/http"

// APIError is a user-facing failure with an HTTP status. Services return
// these for expected outcomes; anything else is treated as internal by
// the handler layer.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates an APIError with the given status and message.
func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

// NewErrNotAuthenticated indicates a missing or invalid identity.
func NewErrNotAuthenticated() *APIError {
	return NewAPIError(http.StatusUnauthorized, "not authenticated")
}

// NewErrInvalidUsername indicates a username outside the allowed shape.
func NewErrInvalidUsername() *APIError {
	return NewAPIError(http.StatusBadRequest, "username must be 3-20 chars: a-z, 0-9, underscore")
}

// NewErrWeakSecret indicates a too-short secret at registration.
func NewErrWeakSecret() *APIError {
	return NewAPIError(http.StatusBadRequest, "secret must be at least 8 characters")
}

// NewErrUsernameTaken indicates a registration against an existing username.
func NewErrUsernameTaken(username string) *APIError {
	return NewAPIError(http.StatusConflict, "username "+username+" is already taken")
}

// NewErrInvalidCredentials indicates a failed login.
func NewErrInvalidCredentials() *APIError {
	return NewAPIError(http.StatusUnauthorized, "invalid username or secret")
}

// NewErrEmptyInput indicates a blank required field.
func NewErrEmptyInput(field string) *APIError {
	return NewAPIError(http.StatusBadRequest, field+" is required")
}

// NewErrAlreadyPaired indicates the caller already has a partner.
func NewErrAlreadyPaired() *APIError {
	return NewAPIError(http.StatusConflict, "you are already paired")
}

// NewErrUserNotFound indicates an unknown target username.
func NewErrUserNotFound(username string) *APIError {
	return NewAPIError(http.StatusNotFound, "no user found with username "+username)
}

// NewErrSelfInvite indicates an invite addressed to the caller.
func NewErrSelfInvite() *APIError {
	return NewAPIError(http.StatusBadRequest, "you cannot invite yourself")
}

// NewErrTargetAlreadyPaired indicates the invited user has a partner.
func NewErrTargetAlreadyPaired() *APIError {
	return NewAPIError(http.StatusConflict, "that user is already paired")
}

// NewErrDuplicateInvite indicates a pending invite already exists to the target.
func NewErrDuplicateInvite() *APIError {
	return NewAPIError(http.StatusConflict, "you already sent a pending invite to this user")
}

// NewErrRequestGone indicates the invite no longer exists.
func NewErrRequestGone() *APIError {
	return NewAPIError(http.StatusNotFound, "invite no longer exists")
}

// NewErrRequestNotPending indicates the invite left the pending state.
func NewErrRequestNotPending() *APIError {
	return NewAPIError(http.StatusConflict, "invite is no longer pending")
}

// NewErrWrongRecipient indicates the invite is addressed to someone else.
func NewErrWrongRecipient() *APIError {
	return NewAPIError(http.StatusForbidden, "this invite is not for you")
}

// NewErrInviterAlreadyPaired indicates the sender paired elsewhere meanwhile.
func NewErrInviterAlreadyPaired() *APIError {
	return NewAPIError(http.StatusConflict, "sender is already paired")
}

// NewErrAcceptConflict indicates the accept transaction kept aborting on
// concurrent writes after the bounded retries.
func NewErrAcceptConflict() *APIError {
	return NewAPIError(http.StatusConflict, "pairing conflict, please retry")
}

// NewErrEmptyName indicates a blank project name.
func NewErrEmptyName() *APIError {
	return NewAPIError(http.StatusBadRequest, "project name is required")
}

// NewErrInvalidTarget indicates a non-positive or non-finite target amount.
func NewErrInvalidTarget() *APIError {
	return NewAPIError(http.StatusBadRequest, "target amount must be a positive number")
}

// NewErrInvalidWeights indicates non-positive contribution weights.
func NewErrInvalidWeights() *APIError {
	return NewAPIError(http.StatusBadRequest, "weights must be positive integers")
}
