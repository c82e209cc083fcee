package mailer

import "errors"

// Error kinds surfaced by the callable mail actions. Transport failures
// are wrapped separately so their text survives for diagnostics.
var (
	ErrUnauthenticated  = errors.New("must be authenticated to send emails")
	ErrPermissionDenied = errors.New("must be an admin to send emails")
	ErrInvalidArgument  = errors.New("missing required fields")
	ErrNotConfigured    = errors.New("email service not configured")
)
