package tool

import "strings"

// ValidationResult carries the outcome of argument validation. Warnings do not
// block execution; errors do.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Valid returns a passing result with no messages.
func ValidOK() ValidationResult {
	return ValidationResult{Valid: true}
}

// ValidWithWarnings returns a passing result carrying advisory messages.
func ValidWithWarnings(warnings ...string) ValidationResult {
	return ValidationResult{Valid: true, Warnings: warnings}
}

// Invalid returns a failing result with one or more error messages.
func Invalid(errors ...string) ValidationResult {
	return ValidationResult{Valid: false, Errors: errors}
}

// Combine merges two results: the combination is valid only when both are,
// and messages from both sides are preserved in order.
func (r ValidationResult) Combine(other ValidationResult) ValidationResult {
	return ValidationResult{
		Valid:    r.Valid && other.Valid,
		Errors:   append(append([]string{}, r.Errors...), other.Errors...),
		Warnings: append(append([]string{}, r.Warnings...), other.Warnings...),
	}
}

// FormattedErrors joins all error messages with "; " for display.
func (r ValidationResult) FormattedErrors() string {
	return strings.Join(r.Errors, "; ")
}

// FormattedWarnings joins all warning messages with "; " for display.
func (r ValidationResult) FormattedWarnings() string {
	return strings.Join(r.Warnings, "; ")
}

// HasWarnings reports whether any warning was recorded.
func (r ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}
