package table

import "fmt"

// MissingFileError reports a source file that does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("missing file: %s", e.Path)
}

// ParseError reports content that cannot be parsed into consistent columns.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("parse %s: %s", e.Path, e.Msg)
}

// SchemaMismatchError reports an expected column that is absent or of the
// wrong shape.
type SchemaMismatchError struct {
	Column string
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch on column %q: %s", e.Column, e.Reason)
}

// DuplicateKeyError reports an ambiguous long-to-wide reshape input: the
// same (row-key, key) pair appeared more than once.
type DuplicateKeyError struct {
	RowKey string
	Key    string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q for row key %q", e.Key, e.RowKey)
}

// NonUniqueJoinKeyError reports a join key value that repeats in the
// secondary table of a left join.
type NonUniqueJoinKeyError struct {
	Column string
	Key    string
}

func (e *NonUniqueJoinKeyError) Error() string {
	return fmt.Sprintf("join key %q is not unique in column %q", e.Key, e.Column)
}
