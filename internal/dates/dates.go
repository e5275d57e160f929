// Package dates converts between the textual date shapes used by offer letters.
//
// Two call sites accept different inputs and the difference is kept on purpose:
// intake (record creation) takes MM-DD-YYYY only, while document generation
// re-reads stored values and accepts the long form with an ISO fallback.
// Everything is rendered back in the long form, e.g. "January 15, 2025".
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// LongLayout renders "Month DD, YYYY" with a zero-padded day.
	LongLayout = "January 02, 2006"
	ISOLayout  = "2006-01-02"
	// IntakeLayout is the MM-DD-YYYY shape submitted by clients.
	IntakeLayout = "01-02-2006"
)

var (
	// IntakeLayouts is tried when a record is created. Single-digit month and
	// day are tolerated ("1-5-2025").
	IntakeLayouts = []string{"1-2-2006"}

	// StoredLayouts is tried in order when a stored value is re-read.
	StoredLayouts = []string{"January 2, 2006", ISOLayout}
)

var ErrFormat = errors.New("unrecognized date format")

// FormatError reports a value that matched none of the accepted layouts.
type FormatError struct {
	Value   string
	Layouts []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("date %q does not match any of %s", e.Value, strings.Join(e.Layouts, ", "))
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// ParseIntake parses a client-submitted MM-DD-YYYY date.
func ParseIntake(s string) (time.Time, error) {
	return parseFirst(s, IntakeLayouts)
}

// ParseStored parses a stored date, long form first, then ISO.
func ParseStored(s string) (time.Time, error) {
	return parseFirst(s, StoredLayouts)
}

func Long(t time.Time) string {
	return t.Format(LongLayout)
}

// NormalizeIntake parses an MM-DD-YYYY value and renders the long form.
func NormalizeIntake(s string) (string, error) {
	t, err := ParseIntake(s)
	if err != nil {
		return "", err
	}

	return Long(t), nil
}

// NormalizeStored re-renders a stored long or ISO value in the long form.
func NormalizeStored(s string) (string, error) {
	t, err := ParseStored(s)
	if err != nil {
		return "", err
	}

	return Long(t), nil
}

func parseFirst(s string, layouts []string) (time.Time, error) {
	value := strings.TrimSpace(s)

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &FormatError{Value: s, Layouts: layouts}
}
