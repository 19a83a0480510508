package schema

import (
	"errors"
	"fmt"
)

// ErrSkipAssign is returned by a parse function to leave the target field
// untouched without reporting an error. Enumerated attributes use it to fall
// back to their prior value when handed an unrecognized token.
var ErrSkipAssign = errors.New("skip assignment")

// ParseError reports a raw value that an attribute's parse function rejected.
type ParseError struct {
	Attribute string
	Raw       string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: invalid value %q: %v", e.Attribute, e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaMismatch reports a descriptor that addresses a field the
// configuration object does not have, or a parsed value whose type the field
// cannot hold. Either way the schema declaration itself is broken, so callers
// should treat this as fatal rather than recover.
type SchemaMismatch struct {
	Attribute string
	Err       error
}

func (e *SchemaMismatch) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema mismatch on %s: %v", e.Attribute, e.Err)
	}
	return fmt.Sprintf("schema mismatch: no accessor declared for %s", e.Attribute)
}

func (e *SchemaMismatch) Unwrap() error { return e.Err }
