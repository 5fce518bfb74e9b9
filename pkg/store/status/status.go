// Package status exports errors produced by the record store.
package status

import (
	"fmt"
	"strings"

	"github.com/metacat-io/metacat/pkg/errors"
)

var (
	// ErrRecordNotFound indicates a single identifier absent from the
	// populated record set
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordsNotFound groups every identifier absent from the
	// populated record set; see RecordsNotFoundError
	ErrRecordsNotFound = errors.New("records not found")

	// ErrStoreFrozen flags a mutation attempt on a frozen store
	ErrStoreFrozen = errors.New("store is frozen")

	// ErrFreezeUnsupported flags a freeze attempt on a store that never
	// supports mutation in the first place
	ErrFreezeUnsupported = errors.New("store does not support freezing")

	// ErrNotPopulated flags a selection against a store that has not
	// completed a populate yet
	ErrNotPopulated = errors.New("store is not populated")
)

// RecordsNotFoundError reports the complete set of missing identifiers
// for a bulk selection, not just the first one, so bulk operations are
// diagnosable in one pass.
type RecordsNotFoundError struct {
	MissingIDs []string
}

func (e *RecordsNotFoundError) Error() string {
	return fmt.Sprintf("records not found: %s", strings.Join(e.MissingIDs, ", "))
}

// Is makes the typed error match the ErrRecordsNotFound sentinel
func (e *RecordsNotFoundError) Is(target error) bool {
	return target == ErrRecordsNotFound
}
