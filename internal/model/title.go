package model

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyTitle is returned when a task title is blank after normalization.
var ErrEmptyTitle = errors.New("task title must not be empty")

// NormalizeTitle NFC-normalizes and trims a task title.
func NormalizeTitle(s string) (string, error) {
	title := strings.TrimSpace(norm.NFC.String(s))
	if title == "" {
		return "", ErrEmptyTitle
	}
	return title, nil
}
