package model

import (
	"fmt"
	"path"
	"strings"
)

const recordFileExt = ".json"

// GetPathToRecord yields the conventional repository path holding the
// configuration for a record
func GetPathToRecord(fileIdentifier string) string {
	return fmt.Sprint("records/", fileIdentifier, recordFileExt)
}

// GetPathPrefixToRecords yields the repository prefix under which all
// record configurations live
func GetPathPrefixToRecords() string {
	return "records/"
}

// IdentifierFromPath derives the file identifier from a repository path.
// Non-record paths yield an empty identifier.
func IdentifierFromPath(p string) string {
	base := path.Base(p)
	if !strings.HasSuffix(base, recordFileExt) {
		return ""
	}
	return strings.TrimSuffix(base, recordFileExt)
}
