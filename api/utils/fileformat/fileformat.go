package fileformat

import (
	"path"
	"strings"

	"github.com/twinj/uuid"
)

// UniqueFormat keeps the extension of fn and replaces its name with a uuid.
func UniqueFormat(fn string) string {
	ext := strings.ToLower(path.Ext(fn))
	return uuid.NewV4().String() + ext
}
