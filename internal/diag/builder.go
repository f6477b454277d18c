package diag

import "sodagql/internal/source"

func New(sev Severity, code Code, span source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Span:     span,
		Message:  msg,
		Notes:    nil,
	}
}

func NewError(code Code, span source.Span, msg string) Diagnostic {
	return New(SevError, code, span, msg)
}

func NewWarning(code Code, span source.Span, msg string) Diagnostic {
	return New(SevWarning, code, span, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
