package validation

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// RuleSet maps a request field name to the constraints it must satisfy.
// Optional fields carry no Required rule; ozzo skips the remaining rules
// when the value is empty.
type RuleSet map[string][]validation.Rule

const passwordSpecials = "@$!%*?&"

// UserRules governs signup payloads.
var UserRules = RuleSet{
	"name":        {validation.Required, validation.Length(2, 30)},
	"email":       {validation.Required, is.Email},
	"password":    {validation.Required, validation.Length(8, 16), validation.By(passwordComplexity)},
	"gender":      {validation.Required, validation.In("Male", "Female", "Other")},
	"city":        {validation.Required, validation.Length(2, 50)},
	"country":     {validation.Required, validation.Length(2, 50)},
	"companyName": {validation.Length(2, 64)},
}

// LoginRules only checks presence; anything finer would leak which part of
// the credential pair was wrong.
var LoginRules = RuleSet{
	"email":    {validation.Required},
	"password": {validation.Required},
}

// ItemRules governs item create/update payloads.
var ItemRules = RuleSet{
	"name":        {validation.Required, validation.Length(2, 100)},
	"category":    {validation.Required, validation.Length(2, 50)},
	"subcategory": {validation.Length(2, 50)},
	"description": {validation.Length(0, 500)},
}

// Apply evaluates every rule in the set against the named fields and collects
// all failures, keyed by field name.
func Apply(fields map[string]any, rules RuleSet) error {
	errs := validation.Errors{}
	for name, fieldRules := range rules {
		if err := validation.Validate(fields[name], fieldRules...); err != nil {
			errs[name] = err
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Details flattens a validation error into a field→message map suitable for
// a response body. Returns nil for non-validation errors.
func Details(err error) map[string]any {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]any, len(verrs))
	for field, ferr := range verrs {
		details[field] = ferr.Error()
	}
	return details
}

// passwordComplexity requires at least one lowercase letter, one uppercase
// letter, one digit and one special character, and allows nothing outside
// those classes.
func passwordComplexity(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return errors.New("contains disallowed characters")
		}
	}
	if !lower || !upper || !digit || !special {
		return errors.New("must contain lowercase, uppercase, digit and special characters")
	}
	return nil
}
