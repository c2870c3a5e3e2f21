package util

import (
	"errors"
	"strings"
)

// ErrInvalidFileName is returned for names that cannot become a storage key
// segment.
var ErrInvalidFileName = errors.New("invalid file name")

var separatorReplacer = strings.NewReplacer("/", "_", "\\", "_")

// SanitizeFileName turns an uploaded resume's name into a single storage key
// segment. Traversal sequences are rejected outright rather than rewritten,
// and path separators collapse to underscores so artifact keys like
// <run-id>/optimized_resume.docx stay flat.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := separatorReplacer.Replace(strings.TrimSpace(name))
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
