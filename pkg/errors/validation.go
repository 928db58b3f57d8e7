package errors

import (
	"regexp"
	"unicode"
)

// nodeIDRegex matches the deterministic path ids the partition tree
// produces: "root" followed by zero or more "-0"/"-1" segments.
var nodeIDRegex = regexp.MustCompile(`^root(-[01])*$`)

// ValidateNodeID validates a tree node id received from an external caller
// (URL path segment, form field). It rejects anything that is not a
// well-formed path id before the id ever reaches a tree lookup.
//
// A syntactically valid id may still be absent from the tree; that case is
// a no-op at the tree layer, not a validation error.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNodeID, "node id cannot be empty")
	}
	// A /32 leaf under a /0 root is 32 segments deep: "root" + 32*2 chars.
	const maxNodeIDLength = 4 + 32*2
	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidNodeID, "node id too long (max %d characters)", maxNodeIDLength)
	}
	if !nodeIDRegex.MatchString(id) {
		return New(ErrCodeInvalidNodeID, "malformed node id: %q", id)
	}
	return nil
}

// ValidateShareToken performs cheap sanity checks on a share token before
// it is handed to the plan codec. The codec itself is fully defensive; this
// exists to reject abusive inputs early with a useful error code.
func ValidateShareToken(token string) error {
	if token == "" {
		return New(ErrCodeInvalidToken, "share token cannot be empty")
	}

	// A token for a fully split /16 stays well below this.
	const maxTokenLength = 1 << 20
	if len(token) > maxTokenLength {
		return New(ErrCodeInvalidToken, "share token too long")
	}

	for _, r := range token {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidToken, "share token contains whitespace or control characters")
		}
	}
	return nil
}

// colorRegex matches "#RRGGBB" colors, the only form annotations retain.
var colorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateColor validates a leaf color annotation. The empty string is
// valid and means "no color".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorRegex.MatchString(color) {
		return New(ErrCodeInvalidColor, "color must be #RRGGBB, got %q", color)
	}
	return nil
}
