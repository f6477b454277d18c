package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token (including contextual keywords
	// such as `async`, `of`, `from`, `as`, `get`, `set`, `static`).
	Ident
	// PrivateName represents a `#name` class member reference.
	PrivateName

	// KwVar represents the 'var' keyword.
	KwVar // var
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwFunction represents the 'function' keyword.
	KwFunction // function
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwExtends represents the 'extends' keyword.
	KwExtends // extends
	// KwNew represents the 'new' keyword.
	KwNew // new
	// KwDelete represents the 'delete' keyword.
	KwDelete // delete
	// KwTypeof represents the 'typeof' keyword.
	KwTypeof // typeof
	// KwInstanceof represents the 'instanceof' keyword.
	KwInstanceof // instanceof
	// KwVoid represents the 'void' keyword.
	KwVoid // void
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwDo represents the 'do' keyword.
	KwDo // do
	// KwSwitch represents the 'switch' keyword.
	KwSwitch // switch
	// KwCase represents the 'case' keyword.
	KwCase // case
	// KwDefault represents the 'default' keyword.
	KwDefault // default
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwThrow represents the 'throw' keyword.
	KwThrow // throw
	// KwTry represents the 'try' keyword.
	KwTry // try
	// KwCatch represents the 'catch' keyword.
	KwCatch // catch
	// KwFinally represents the 'finally' keyword.
	KwFinally // finally
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwExport represents the 'export' keyword.
	KwExport // export
	// KwThis represents the 'this' keyword.
	KwThis // this
	// KwSuper represents the 'super' keyword.
	KwSuper // super
	// KwAwait represents the 'await' keyword (reserved in module code).
	KwAwait // await
	// KwYield represents the 'yield' keyword.
	KwYield // yield
	// KwTrue represents the 'true' literal keyword.
	KwTrue // true
	// KwFalse represents the 'false' literal keyword.
	KwFalse // false
	// KwNull represents the 'null' literal keyword.
	KwNull // null

	// NumberLit represents a numeric literal (including bigint `123n`).
	NumberLit
	// StringLit represents a single- or double-quoted string literal.
	StringLit
	// TemplateLit represents a whole template literal, backticks included.
	TemplateLit
	// RegexLit represents a regular expression literal.
	RegexLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// StarStar represents the exponent operator token.
	StarStar // **
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// PlusPlus represents the increment operator token.
	PlusPlus // ++
	// MinusMinus represents the decrement operator token.
	MinusMinus // --
	// Assign represents the assign operator token.
	Assign // =
	// PlusAssign represents the plus assign operator token.
	PlusAssign // +=
	// MinusAssign represents the minus assign operator token.
	MinusAssign // -=
	// StarAssign represents the star assign operator token.
	StarAssign // *=
	// StarStarAssign represents the exponent assign operator token.
	StarStarAssign // **=
	// SlashAssign represents the slash assign operator token.
	SlashAssign // /=
	// PercentAssign represents the percent assign operator token.
	PercentAssign // %=
	// AmpAssign represents the amp assign operator token.
	AmpAssign // &=
	// PipeAssign represents the pipe assign operator token.
	PipeAssign // |=
	// CaretAssign represents the caret assign operator token.
	CaretAssign // ^=
	// ShlAssign represents the shl assign operator token.
	ShlAssign // <<=
	// ShrAssign represents the shr assign operator token.
	ShrAssign // >>=
	// UShrAssign represents the unsigned shr assign operator token.
	UShrAssign // >>>=
	// AndAndAssign represents the logical-and assign operator token.
	AndAndAssign // &&=
	// OrOrAssign represents the logical-or assign operator token.
	OrOrAssign // ||=
	// NullishAssign represents the nullish assign operator token.
	NullishAssign // ??=
	// EqEq represents the loose equality operator token.
	EqEq // ==
	// EqEqEq represents the strict equality operator token.
	EqEqEq // ===
	// BangEq represents the loose inequality operator token.
	BangEq // !=
	// BangEqEq represents the strict inequality operator token.
	BangEqEq // !==
	// Bang represents the bang operator token.
	Bang // !
	// Tilde represents the tilde operator token.
	Tilde // ~
	// Lt represents the lt operator token.
	Lt // <
	// LtEq represents the lt eq operator token.
	LtEq // <=
	// Gt represents the gt operator token.
	Gt // >
	// GtEq represents the gt eq operator token.
	GtEq // >=
	// Shl represents the shl operator token.
	Shl // <<
	// Shr represents the shr operator token.
	Shr // >>
	// UShr represents the unsigned shr operator token.
	UShr // >>>
	// Amp represents the amp operator token.
	Amp // &
	// Pipe represents the pipe operator token.
	Pipe // |
	// Caret represents the caret operator token.
	Caret // ^
	// AndAnd represents the logical-and operator token.
	AndAnd // &&
	// OrOr represents the logical-or operator token.
	OrOr // ||
	// QuestionQuestion represents the nullish coalescing operator token.
	QuestionQuestion // ??
	// Question represents the question operator token.
	Question // ?
	// QuestionDot represents the optional chaining operator token.
	QuestionDot // ?.
	// Colon represents the colon operator token.
	Colon // :
	// Semicolon represents the semicolon operator token.
	Semicolon // ;
	// Comma represents the comma operator token.
	Comma // ,
	// Dot represents the dot operator token.
	Dot // .
	// DotDotDot represents the spread/rest operator token.
	DotDotDot // ...
	// Arrow represents the fat arrow operator token.
	Arrow // =>
	// LParen represents the left parenthesis operator token.
	LParen // (
	// RParen represents the right parenthesis operator token.
	RParen // )
	// LBrace represents the left brace operator token.
	LBrace // {
	// RBrace represents the right brace operator token.
	RBrace // }
	// LBracket represents the left bracket operator token.
	LBracket // [
	// RBracket represents the right bracket operator token.
	RBracket // ]
)

var kindNames = map[Kind]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	Ident:            "Ident",
	PrivateName:      "PrivateName",
	NumberLit:        "NumberLit",
	StringLit:        "StringLit",
	TemplateLit:      "TemplateLit",
	RegexLit:         "RegexLit",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	StarStar:         "**",
	Slash:            "/",
	Percent:          "%",
	PlusPlus:         "++",
	MinusMinus:       "--",
	Assign:           "=",
	PlusAssign:       "+=",
	MinusAssign:      "-=",
	StarAssign:       "*=",
	StarStarAssign:   "**=",
	SlashAssign:      "/=",
	PercentAssign:    "%=",
	AmpAssign:        "&=",
	PipeAssign:       "|=",
	CaretAssign:      "^=",
	ShlAssign:        "<<=",
	ShrAssign:        ">>=",
	UShrAssign:       ">>>=",
	AndAndAssign:     "&&=",
	OrOrAssign:       "||=",
	NullishAssign:    "??=",
	EqEq:             "==",
	EqEqEq:           "===",
	BangEq:           "!=",
	BangEqEq:         "!==",
	Bang:             "!",
	Tilde:            "~",
	Lt:               "<",
	LtEq:             "<=",
	Gt:               ">",
	GtEq:             ">=",
	Shl:              "<<",
	Shr:              ">>",
	UShr:             ">>>",
	Amp:              "&",
	Pipe:             "|",
	Caret:            "^",
	AndAnd:           "&&",
	OrOr:             "||",
	QuestionQuestion: "??",
	Question:         "?",
	QuestionDot:      "?.",
	Colon:            ":",
	Semicolon:        ";",
	Comma:            ",",
	Dot:              ".",
	DotDotDot:        "...",
	Arrow:            "=>",
	LParen:           "(",
	RParen:           ")",
	LBrace:           "{",
	RBrace:           "}",
	LBracket:         "[",
	RBracket:         "]",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	if s, ok := keywordNames[k]; ok {
		return s
	}
	return "Kind(?)"
}
