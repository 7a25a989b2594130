// Package metadata decodes the TOML document that describes a blog post.
package metadata

import (
	"errors"
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrDecode is matched by every error returned from Decode.
var ErrDecode = errors.New("metadata: decode failed")

// FormatError reports a document that is not valid TOML or whose values
// have the wrong type.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string { return "metadata: invalid document: " + e.Err.Error() }
func (e *FormatError) Unwrap() []error { return []error{ErrDecode, e.Err} }

// MissingFieldError reports a required key absent from the document.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string { return "metadata: missing field " + e.Field }
func (e *MissingFieldError) Unwrap() error { return ErrDecode }

// MalformedDateError reports a date key whose value is not a calendar date.
type MalformedDateError struct {
	Field string
	Value any
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("metadata: field %s is not a date: %v", e.Field, e.Value)
}
func (e *MalformedDateError) Unwrap() error { return ErrDecode }

// Date is a calendar date without time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// PostMetadata is the decoded content of a post's metadata.toml.
type PostMetadata struct {
	Title         string
	Author        string
	DatePublished Date
	DateUpdated   Date
	PostType      string
	Synopsis      string
}

// document mirrors the TOML keys. Pointers and interfaces distinguish
// absent keys from empty values.
type document struct {
	Title         *string `toml:"title"`
	Author        *string `toml:"author"`
	DatePublished any     `toml:"date_published"`
	DateUpdated   any     `toml:"date_updated"`
	PostType      *string `toml:"post_type"`
	Synopsis      *string `toml:"synopsis"`
}

// Decode parses raw into a PostMetadata. All six keys are required and both
// date keys must hold a TOML date, local date-time or offset date-time; only
// the date component is kept.
func Decode(raw []byte) (PostMetadata, error) {
	var doc document
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return PostMetadata{}, &FormatError{Err: err}
	}

	switch {
	case doc.Title == nil:
		return PostMetadata{}, &MissingFieldError{Field: "title"}
	case doc.Author == nil:
		return PostMetadata{}, &MissingFieldError{Field: "author"}
	case doc.DatePublished == nil:
		return PostMetadata{}, &MissingFieldError{Field: "date_published"}
	case doc.DateUpdated == nil:
		return PostMetadata{}, &MissingFieldError{Field: "date_updated"}
	case doc.PostType == nil:
		return PostMetadata{}, &MissingFieldError{Field: "post_type"}
	case doc.Synopsis == nil:
		return PostMetadata{}, &MissingFieldError{Field: "synopsis"}
	}

	published, err := toDate("date_published", doc.DatePublished)
	if err != nil {
		return PostMetadata{}, err
	}
	updated, err := toDate("date_updated", doc.DateUpdated)
	if err != nil {
		return PostMetadata{}, err
	}

	return PostMetadata{
		Title:         *doc.Title,
		Author:        *doc.Author,
		DatePublished: published,
		DateUpdated:   updated,
		PostType:      *doc.PostType,
		Synopsis:      *doc.Synopsis,
	}, nil
}

func toDate(field string, v any) (Date, error) {
	var d Date
	switch t := v.(type) {
	case toml.LocalDate:
		d = Date{Year: t.Year, Month: time.Month(t.Month), Day: t.Day}
	case toml.LocalDateTime:
		d = Date{Year: t.Year, Month: time.Month(t.Month), Day: t.Day}
	case time.Time:
		y, m, day := t.Date()
		d = Date{Year: y, Month: m, Day: day}
	default:
		return Date{}, &MalformedDateError{Field: field, Value: v}
	}
	// Reject dates that normalize to another day, e.g. February 30.
	if y, m, day := d.Time().Date(); y != d.Year || m != d.Month || day != d.Day {
		return Date{}, &MalformedDateError{Field: field, Value: v}
	}
	return d, nil
}
