package grammar

type SemanticError struct {
	message string
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

var (
	ErrNoRule                   = newSemanticError("a grammar needs at least one rule")
	ErrInvalidLHS               = newSemanticError("the left-hand side of a rule must be a non-terminal")
	ErrMisplacedEpsilon         = newSemanticError("<epsilon> must be the only symbol of a right-hand side")
	ErrUndefinedNonTerminal     = newSemanticError("undefined non-terminal")
	ErrLeftRecursion            = newSemanticError("left recursion detected")
	ErrFixedPointNonConvergence = newSemanticError("FOLLOW computation did not converge")
)
