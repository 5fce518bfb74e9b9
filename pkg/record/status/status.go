// Package status exports errors produced by the record parser.
package status

import (
	"github.com/metacat-io/metacat/pkg/errors"
)

var (
	// ErrValidation indicates a malformed record payload: required
	// fields absent or the configuration not decodable at all
	ErrValidation = errors.New("record validation failed")

	// ErrSchemaVersion indicates the payload declares a schema version
	// this generation of the catalogue does not support
	ErrSchemaVersion = errors.New("unsupported record schema version")
)
