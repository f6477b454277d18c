package diag

import "sodagql/internal/source"

// Note attaches secondary context to a diagnostic, usually pointing at a
// related span in the same or another file.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Span     source.Span
	Message  string
	Notes    []Note
}
