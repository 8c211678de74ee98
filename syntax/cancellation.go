package syntax

// CancellationToken is consulted at every top-level read and at least once
// per loop iteration by the lexer, parser, and type inspector (spec
// section 5). A nil token is always treated as "not cancelled".
type CancellationToken interface {
	IsCancelled() bool
}

// NeverCancelled is a CancellationToken that never fires; useful for
// callers that do not need cancellation.
type NeverCancelled struct{}

// IsCancelled always returns false.
func (NeverCancelled) IsCancelled() bool { return false }

func isCancelled(token CancellationToken) bool {
	return token != nil && token.IsCancelled()
}
