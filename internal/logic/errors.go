package logic

import "fmt"

// ParseError reports a lex, parse, sort-mismatch, or macro-arity failure
// in formula text, with the byte position and offending token.
type ParseError struct {
	Pos     int
	Token   string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("formula parse error at %d (%q): %s", e.Pos, e.Token, e.Message)
}
