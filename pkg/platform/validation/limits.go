// Package validation centralizes input size limits and the checks that
// enforce them.
package validation

import (
	"fmt"

	dErrors "gatekeeper/pkg/domain-errors"
)

// HTTP body limits
const (
	// MaxBodySize is the maximum allowed request body size (64 KB).
	// Sufficient for JSON APIs while preventing memory exhaustion attacks.
	MaxBodySize = 64 * 1024
)

// String element length limits
const (
	// MaxIdentifierLength covers IPv6 in its longest textual form with
	// headroom.
	MaxIdentifierLength = 64

	// MaxReasonLength is the maximum length of an allowlist reason.
	MaxReasonLength = 256

	// MaxCreatedByLength is the maximum length of an operator name.
	MaxCreatedByLength = 128
)

// CheckStringLength validates that a string does not exceed the maximum length.
func CheckStringLength(fieldName, value string, max int) error {
	if len(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}
