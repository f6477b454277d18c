package token

var keywords = map[string]Kind{
	"var":        KwVar,
	"let":        KwLet,
	"const":      KwConst,
	"function":   KwFunction,
	"return":     KwReturn,
	"class":      KwClass,
	"extends":    KwExtends,
	"new":        KwNew,
	"delete":     KwDelete,
	"typeof":     KwTypeof,
	"instanceof": KwInstanceof,
	"void":       KwVoid,
	"in":         KwIn,
	"if":         KwIf,
	"else":       KwElse,
	"for":        KwFor,
	"while":      KwWhile,
	"do":         KwDo,
	"switch":     KwSwitch,
	"case":       KwCase,
	"default":    KwDefault,
	"break":      KwBreak,
	"continue":   KwContinue,
	"throw":      KwThrow,
	"try":        KwTry,
	"catch":      KwCatch,
	"finally":    KwFinally,
	"import":     KwImport,
	"export":     KwExport,
	"this":       KwThis,
	"super":      KwSuper,
	"await":      KwAwait,
	"yield":      KwYield,
	"true":       KwTrue,
	"false":      KwFalse,
	"null":       KwNull,
}

var keywordNames = func() map[Kind]string {
	m := make(map[Kind]string, len(keywords))
	for text, kind := range keywords {
		m[kind] = text
	}
	return m
}()

// LookupKeyword returns the keyword kind for an identifier spelling.
// Contextual keywords (`async`, `of`, `from`, `as`, `get`, `set`, `static`)
// deliberately stay Ident; the parser matches their text where the grammar
// needs them.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
