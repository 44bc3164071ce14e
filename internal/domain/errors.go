package domain

import "errors"

// ErrNotFound means the row is missing or is owned by a different user.
// Both cases surface as 404 so trip IDs cannot be probed.
var ErrNotFound = errors.New("not found")

// ErrValidation wraps every input rule failure raised by the service layer,
// such as a blank trip name or a destination ending before it starts.
// Handlers answer it with 422.
var ErrValidation = errors.New("validation error")
