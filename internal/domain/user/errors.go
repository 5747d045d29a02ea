package user

import "errors"

// Error texts are part of the API contract: the boundary surfaces them
// verbatim in the error envelope.
var (
	ErrUserNotFound       = errors.New("USER_NOT_FOUND")
	ErrEmptyFile          = errors.New("file is empty")
	ErrNotAnImage         = errors.New("file must be an image")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
