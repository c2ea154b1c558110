package form

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Error keys reported by the built-in rules.
const (
	ErrKeyRequired  = "required"
	ErrKeyMinLength = "minlength"
)

// validate is shared by all rules; validator caches parsed tags internally.
var validate = validator.New()

// Rule is a single named predicate applied to a control's value.
// Evaluation is delegated to a validator tag.
type Rule struct {
	key string
	tag string
	min int
}

// Required fails on the empty string.
func Required() Rule {
	return Rule{key: ErrKeyRequired, tag: "required"}
}

// MinLength fails when a non-empty value has fewer than n runes.
// Empty values pass so that an empty field reports only Required.
func MinLength(n int) Rule {
	return Rule{key: ErrKeyMinLength, tag: fmt.Sprintf("omitempty,min=%d", n), min: n}
}

// Check evaluates the rule against value. It returns nil when the rule passes.
func (r Rule) Check(value string) *ValidationError {
	if err := validate.Var(value, r.tag); err == nil {
		return nil
	}
	ve := &ValidationError{Key: r.key}
	if r.key == ErrKeyMinLength {
		ve.RequiredLength = r.min
		ve.ActualLength = utf8.RuneCountInString(value)
	}
	return ve
}

// ValidationError describes one failed rule.
// RequiredLength and ActualLength are set for minlength failures only.
type ValidationError struct {
	Key            string
	RequiredLength int
	ActualLength   int
}

// Message renders a human-readable message for a field with the given label.
func (e ValidationError) Message(label string) string {
	switch e.Key {
	case ErrKeyRequired:
		return fmt.Sprintf("%s is required", label)
	case ErrKeyMinLength:
		return fmt.Sprintf("%s must be at least %d characters", label, e.RequiredLength)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
