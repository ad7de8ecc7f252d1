package token

// Only keywords the parser needs to tell apart get their own kind;
// everything else (class, public, var, ...) stays an identifier.
var keywords = map[string]Kind{
	"new":     KwNew,
	"return":  KwReturn,
	"if":      KwIf,
	"else":    KwElse,
	"while":   KwWhile,
	"for":     KwFor,
	"foreach": KwForeach,
	"using":   KwUsing,
	"lock":    KwLock,
	"do":      KwDo,
}

// LookupKeyword returns the keyword kind for an identifier text.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
