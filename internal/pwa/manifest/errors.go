package manifest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingField             = errors.New("missing required field")
	ErrInvalidEnumValue         = errors.New("invalid enum value")
	ErrInvalidColor             = errors.New("invalid color")
	ErrInvalidURL               = errors.New("invalid url")
	ErrMalformedSize            = errors.New("malformed icon size")
	ErrMissingAsset             = errors.New("missing asset")
	ErrInsufficientIconCoverage = errors.New("insufficient icon coverage")
)

// MissingFieldError reports a required field that is absent or blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// InvalidEnumValueError reports a value outside a fixed enumeration.
type InvalidEnumValueError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("%s: %s=%q (allowed: %s)", ErrInvalidEnumValue, e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

func (e *InvalidEnumValueError) Unwrap() error { return ErrInvalidEnumValue }

// InvalidColorError reports a color that is not valid CSS color syntax.
type InvalidColorError struct {
	Field string
	Value string
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("%s: %s=%q", ErrInvalidColor, e.Field, e.Value)
}

func (e *InvalidColorError) Unwrap() error { return ErrInvalidColor }

// InvalidURLError reports a URL member that does not parse.
type InvalidURLError struct {
	Field string
	Value string
	Err   error
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("%s: %s=%q: %v", ErrInvalidURL, e.Field, e.Value, e.Err)
}

func (e *InvalidURLError) Unwrap() []error { return []error{ErrInvalidURL, e.Err} }

// MalformedSizeError reports an icon whose sizes is not of the form WxH.
type MalformedSizeError struct {
	Index int
	Src   string
	Sizes string
}

func (e *MalformedSizeError) Error() string {
	return fmt.Sprintf("%s: icons[%d] (%s) sizes=%q, want WxH", ErrMalformedSize, e.Index, e.Src, e.Sizes)
}

func (e *MalformedSizeError) Unwrap() error { return ErrMalformedSize }

// MissingAssetError reports an icon src that is not among the available assets.
type MissingAssetError struct {
	Index int
	Path  string
}

func (e *MissingAssetError) Error() string {
	return fmt.Sprintf("%s: icons[%d] src %s not found", ErrMissingAsset, e.Index, e.Path)
}

func (e *MissingAssetError) Unwrap() error { return ErrMissingAsset }

// InsufficientIconCoverageError lists the size thresholds no icon meets.
type InsufficientIconCoverageError struct {
	Unmet []int
}

func (e *InsufficientIconCoverageError) Error() string {
	parts := make([]string, len(e.Unmet))
	for i, t := range e.Unmet {
		parts[i] = fmt.Sprintf("%dx%d", t, t)
	}
	return fmt.Sprintf("%s: no icon of at least %s", ErrInsufficientIconCoverage, strings.Join(parts, ", "))
}

func (e *InsufficientIconCoverageError) Unwrap() error { return ErrInsufficientIconCoverage }
