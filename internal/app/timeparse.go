package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/prodsched/internal/domain"
)

// inputLayouts are tried in order. Values without a zone are read as UTC.
var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	DateLayout,
}

// ParseTime reads a user-supplied timestamp or calendar date.
func ParseTime(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot read %q as a time (want RFC3339 or YYYY-MM-DD)", domain.ErrInvalidInput, raw)
}
