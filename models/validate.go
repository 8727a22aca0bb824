package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ValidationError reports the first constraint a payload violated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

type fieldCheck struct {
	field string
	value interface{}
	rules []validation.Rule
}

// ValidateCreate checks the required fields for a new record. Checks run in
// declared order and stop at the first violation, so callers always see a
// single, stable error message.
func (p *RecordPayload) ValidateCreate() error {
	checks := []fieldCheck{
		{"First Name", p.FirstName, []validation.Rule{validation.Required}},
		{"Last Name", p.LastName, []validation.Rule{validation.Required}},
		{"Magazine", p.Magazine, []validation.Rule{validation.Required}},
		{"Amount", p.Amount, []validation.Rule{validation.NotNil}},
		{"Email", p.Email, []validation.Rule{validation.Required, is.Email}},
		{"Model Insta Link", p.ModelInstaLink, []validation.Rule{validation.Required, is.URL}},
	}
	return runChecks(checks)
}

// ValidateUpdate re-checks format rules for whichever fields an update
// actually carries. Presence is not required here; empty fields have already
// been dropped by the caller.
func (p *RecordPayload) ValidateUpdate() error {
	var checks []fieldCheck
	if p.Email != "" {
		checks = append(checks, fieldCheck{"Email", p.Email, []validation.Rule{is.Email}})
	}
	if p.ModelInstaLink != "" {
		checks = append(checks, fieldCheck{"Model Insta Link", p.ModelInstaLink, []validation.Rule{is.URL}})
	}
	return runChecks(checks)
}

func runChecks(checks []fieldCheck) error {
	for _, c := range checks {
		if err := validation.Validate(c.value, c.rules...); err != nil {
			return &ValidationError{Field: c.field, Message: err.Error()}
		}
	}
	return nil
}
