package spec

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// ErrMalformedRuleLine means a line does not split into exactly one left-hand side and one right-hand
	// side on the arrow.
	ErrMalformedRuleLine = newSyntaxError("malformed rule line")

	synErrInvalidToken = newSyntaxError("invalid token")
)

const (
	detailNoArrow       = "a rule needs an arrow (->)"
	detailTooManyArrows = "a rule must contain exactly one arrow (->)"
	detailNoLHS         = "the left-hand side is missing"
	detailMultipleLHS   = "the left-hand side must be exactly one symbol"
	detailNoRHS         = "the right-hand side is missing"
)
