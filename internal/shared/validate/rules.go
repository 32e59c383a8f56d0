package validate

import (
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const isoDateLayout = "2006-01-02"

var (
	dateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	digitsRe = regexp.MustCompile(`^\d+$`)
)

// ISODate requires a parseable YYYY-MM-DD string. Empty values pass; pair
// with validation.Required where the field is mandatory.
var ISODate = validation.NewStringRule(isISODate, "must be a valid date in YYYY-MM-DD format")

func isISODate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(isoDateLayout, s)
	return err == nil
}

// HTTPURL requires an explicit http:// or https:// prefix.
var HTTPURL = validation.NewStringRule(func(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}, "must begin with http:// or https://")

// ISBN accepts 10-17 digits after stripping hyphens and spaces.
var ISBN = validation.NewStringRule(func(s string) bool {
	n := NormalizeISBN(s)
	return len(n) >= 10 && len(n) <= 17 && digitsRe.MatchString(n)
}, "must be 10-17 digits, hyphens and spaces allowed")

// Phone accepts digits with common separators.
var Phone = validation.NewStringRule(func(s string) bool {
	if len(s) < 7 || len(s) > 20 {
		return false
	}
	for _, r := range s {
		if r >= '0' && r <= '9' {
			continue
		}
		switch r {
		case ' ', '+', '-', '(', ')':
		default:
			return false
		}
	}
	return true
}, "must be a valid phone number")

// NotFutureDate is a validation.By func rejecting dates after today. Format
// errors are left to ISODate so each rule reports exactly one thing.
func NotFutureDate(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return nil
	}
	if t.After(time.Now()) {
		return errors.New("must not be in the future")
	}
	return nil
}

// NormalizeISBN strips hyphens and spaces so equality and uniqueness work on
// the canonical digit string.
func NormalizeISBN(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, " ", "")
}
