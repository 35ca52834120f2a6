package index

import (
	"errors"
	"fmt"
)

// Sentinel errors for snapshot decoding and encoding. Decode failures abort
// the whole load; no partial store is ever returned.
var (
	// ErrCorruptedStream reports a record that arrived out of order, such
	// as a document path with no open document.
	ErrCorruptedStream = errors.New("record out of order; snapshot is likely corrupted")

	// ErrUnknownRecordTag reports an unrecognized record tag byte.
	ErrUnknownRecordTag = errors.New("unknown record tag")

	// ErrFieldTooLong reports a string that does not fit the 16-bit length
	// field of the snapshot format.
	ErrFieldTooLong = errors.New("string exceeds 16-bit length field")
)

// DuplicateTitleError is returned by Ingest under the fail policy when a
// document with the same title already exists. It carries both paths so the
// caller can present the conflict.
type DuplicateTitleError struct {
	Title        string
	ExistingPath string
	OfferedPath  string
}

func (e *DuplicateTitleError) Error() string {
	return fmt.Sprintf("document %q already exists at %q (offered %q); use a dupe policy to resolve",
		e.Title, e.ExistingPath, e.OfferedPath)
}
