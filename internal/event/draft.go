package event

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidDraft is returned for a draft that cannot be stored.
var ErrInvalidDraft = errors.New("invalid draft")

// Normalize returns d with its text fields in Unicode NFC, the form every
// stored record uses.
func (d Draft) Normalize() Draft {
	d.Title = norm.NFC.String(d.Title)
	d.Location = norm.NFC.String(d.Location)
	d.Description = norm.NFC.String(d.Description)
	return d
}

// Validate checks the shape every stored record must have. It does not
// apply the date window a form enforces.
func (d Draft) Validate() error {
	switch {
	case strings.TrimSpace(d.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidDraft)
	case utf8.RuneCountInString(d.Title) > MaxTitleLength:
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidDraft, MaxTitleLength)
	case d.Date.IsZero() || d.Date.Year < 0 || d.Date.Year > 9999:
		return fmt.Errorf("%w: date %v", ErrInvalidDraft, d.Date)
	case d.Time.Hour < 0 || d.Time.Hour > 23 || d.Time.Minute < 0 || d.Time.Minute > 59:
		return fmt.Errorf("%w: time %02d:%02d", ErrInvalidDraft, d.Time.Hour, d.Time.Minute)
	case strings.TrimSpace(d.Location) == "":
		return fmt.Errorf("%w: location is required", ErrInvalidDraft)
	case !d.Category.Valid():
		return fmt.Errorf("%w: category is required", ErrInvalidDraft)
	}
	return nil
}
