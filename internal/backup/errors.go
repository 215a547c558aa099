package backup

import "fmt"

// SchemaVersionError means the payload was produced by a newer version of
// the application than this one supports. The import fails wholesale; no
// forward-compatible partial import is attempted.
type SchemaVersionError struct {
	Found     int
	Supported int
}

func (e *SchemaVersionError) Error() string {
	return fmt.Sprintf(
		"export file was created by a newer version (schema v%d, supported up to v%d); upgrade before importing",
		e.Found, e.Supported,
	)
}

// MalformedPayloadError means the import input was not a valid export
// payload. It is raised before any store mutation begins.
type MalformedPayloadError struct {
	Reason string
	Err    error
}

func (e *MalformedPayloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed export payload: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed export payload: %s", e.Reason)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }
