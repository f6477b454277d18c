package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedTemplate     Code = 1004
	LexUnterminatedRegex        Code = 1005
	LexBadNumber                Code = 1006

	// Syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectSemicolon    Code = 2003
	SynUnclosedParen      Code = 2004
	SynUnclosedBrace      Code = 2005
	SynUnclosedBracket    Code = 2006
	SynExpectExpression   Code = 2007
	SynExpectModuleSource Code = 2008
	SynExpectBindingName  Code = 2009
	SynBadAssignTarget    Code = 2010
	SynExpectArrowBody    Code = 2011
	SynExpectPropertyName Code = 2012
	SynUnexpectedTopLevel Code = 2013

	// Analysis (builder call resolution)
	AnaInfo             Code = 3000
	AnaMetadataNotFound Code = 3001
	AnaArtifactNotFound Code = 3002

	// Transform (replacement synthesis)
	TransformInfo         Code = 4000
	TransformMissingArg   Code = 4001
	TransformBadDirective Code = 4002

	// I/O
	IOLoadFileError Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexUnterminatedTemplate:     "Unterminated template literal",
	LexUnterminatedRegex:        "Unterminated regular expression",
	LexBadNumber:                "Bad number",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectIdentifier:         "Expect identifier",
	SynExpectSemicolon:          "Expect semicolon",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedBracket:          "Unclosed bracket",
	SynExpectExpression:         "Expect expression",
	SynExpectModuleSource:       "Expect module source string",
	SynExpectBindingName:        "Expect binding name",
	SynBadAssignTarget:          "Invalid assignment target",
	SynExpectArrowBody:          "Expect arrow function body",
	SynExpectPropertyName:       "Expect property name",
	SynUnexpectedTopLevel:       "Unexpected top-level construct",
	AnaInfo:                     "Analysis information",
	AnaMetadataNotFound:         "No scope metadata for builder call",
	AnaArtifactNotFound:         "No artifact for canonical id",
	TransformInfo:               "Transform information",
	TransformMissingArg:         "Missing required builder argument",
	TransformBadDirective:       "Malformed replacement directive",
	IOLoadFileError:             "Failed to load file",
}

func (c Code) String() string {
	if desc, ok := codeDescription[c]; ok {
		return desc
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}

// ID returns a short stable identifier for golden files and CLI output.
func (c Code) ID() string {
	switch {
	case c >= 1000 && c < 2000:
		return fmt.Sprintf("LEX%d", uint16(c))
	case c >= 2000 && c < 3000:
		return fmt.Sprintf("SYN%d", uint16(c))
	case c >= 3000 && c < 4000:
		return fmt.Sprintf("ANA%d", uint16(c))
	case c >= 4000 && c < 5000:
		return fmt.Sprintf("TR%d", uint16(c))
	case c >= 5000 && c < 6000:
		return fmt.Sprintf("IO%d", uint16(c))
	default:
		return fmt.Sprintf("E%d", uint16(c))
	}
}
