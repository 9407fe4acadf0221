// Package errs holds the error vocabulary of the handoff service.
//
// Validation failures are typed (ValueIsRequiredError, ValueIsInvalidError,
// ValueIsOutOfRangeError, ObjectNotFoundError, VersionIsInvalidError). Each
// type unwraps to a sentinel so callers match with errors.Is and read the
// details with errors.As.
//
// Protocol failures (invalid attestation, expired or revoked links, busy
// records and the like) are plain sentinels wrapped with context by the
// code that detects them. The HTTP adapter maps both families to status codes.
package errs
