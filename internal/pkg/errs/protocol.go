package errs

import "errors"

// Handoff protocol failures. Callers wrap them with context and match with errors.Is.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidAttestation = errors.New("invalid attestation")
	ErrAccessDenied       = errors.New("access denied")
	ErrExpiredLink        = errors.New("share link has expired")
	ErrRevokedLink        = errors.New("share link has been revoked")
	ErrLinkAlreadyUsed    = errors.New("share link has already been used")
	ErrConflict           = errors.New("conflict")
	ErrAlreadyAttested    = errors.New("side has already attested")
	ErrConfirmationClosed = errors.New("confirmation no longer accepts changes")
	ErrRecordBusy         = errors.New("record is locked by another operation")
)
