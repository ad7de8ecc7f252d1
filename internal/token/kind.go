package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input. It carries the final leading trivia.
	EOF

	Ident
	StringLit // "..", @"..", $".."
	CharLit
	NumberLit

	KwNew
	KwReturn
	KwIf
	KwElse
	KwWhile
	KwFor
	KwForeach
	KwUsing
	KwLock
	KwDo

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Dot
	Comma
	Semicolon
	Colon
	Question
	QuestionQuestion
	FatArrow
	Assign
	Lt
	Gt
	Bang
	// Operator covers every other operator (+, ==, &&, +=, ++, ...).
	Operator
)

var kindNames = [...]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	Ident:            "Ident",
	StringLit:        "StringLit",
	CharLit:          "CharLit",
	NumberLit:        "NumberLit",
	KwNew:            "KwNew",
	KwReturn:         "KwReturn",
	KwIf:             "KwIf",
	KwElse:           "KwElse",
	KwWhile:          "KwWhile",
	KwFor:            "KwFor",
	KwForeach:        "KwForeach",
	KwUsing:          "KwUsing",
	KwLock:           "KwLock",
	KwDo:             "KwDo",
	LParen:           "LParen",
	RParen:           "RParen",
	LBrace:           "LBrace",
	RBrace:           "RBrace",
	LBracket:         "LBracket",
	RBracket:         "RBracket",
	Dot:              "Dot",
	Comma:            "Comma",
	Semicolon:        "Semicolon",
	Colon:            "Colon",
	Question:         "Question",
	QuestionQuestion: "QuestionQuestion",
	FatArrow:         "FatArrow",
	Assign:           "Assign",
	Lt:               "Lt",
	Gt:               "Gt",
	Bang:             "Bang",
	Operator:         "Operator",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
