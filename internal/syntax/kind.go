package syntax

// Kind identifies the syntactic category of a node.
type Kind uint8

const (
	KindInvalid Kind = iota

	CompilationUnit
	UsingDirective
	// Declaration is a namespace/type/member head followed by a block body or ';'.
	Declaration
	// Skipped holds tokens the parser could not place anywhere else.
	Skipped

	// statements
	Block
	ExpressionStatement
	LocalDeclaration
	ReturnStatement
	// ControlStatement is if/while/for/foreach/using/lock/do with its body.
	ControlStatement
	ElseClause
	// GenericStatement is any other token run terminated by ';'.
	GenericStatement
	EmptyStatement

	// expressions
	IdentifierName
	GenericName
	TypeArgumentList
	Literal
	MemberAccess
	ConditionalAccess
	MemberBinding
	Invocation
	ArgumentList
	Argument
	ElementAccess
	BracketedArgumentList
	Lambda
	Parenthesized
	ObjectCreation
	Initializer
	Assignment
	Binary
	Unary
	Conditional
	// Bracketed is an attribute list or other [...] group outside expressions.
	Bracketed
)

var kindNames = [...]string{
	KindInvalid:           "Invalid",
	CompilationUnit:       "CompilationUnit",
	UsingDirective:        "UsingDirective",
	Declaration:           "Declaration",
	Skipped:               "Skipped",
	Block:                 "Block",
	ExpressionStatement:   "ExpressionStatement",
	LocalDeclaration:      "LocalDeclaration",
	ReturnStatement:       "ReturnStatement",
	ControlStatement:      "ControlStatement",
	ElseClause:            "ElseClause",
	GenericStatement:      "GenericStatement",
	EmptyStatement:        "EmptyStatement",
	IdentifierName:        "IdentifierName",
	GenericName:           "GenericName",
	TypeArgumentList:      "TypeArgumentList",
	Literal:               "Literal",
	MemberAccess:          "MemberAccess",
	ConditionalAccess:     "ConditionalAccess",
	MemberBinding:         "MemberBinding",
	Invocation:            "Invocation",
	ArgumentList:          "ArgumentList",
	Argument:              "Argument",
	ElementAccess:         "ElementAccess",
	BracketedArgumentList: "BracketedArgumentList",
	Lambda:                "Lambda",
	Parenthesized:         "Parenthesized",
	ObjectCreation:        "ObjectCreation",
	Initializer:           "Initializer",
	Assignment:            "Assignment",
	Binary:                "Binary",
	Unary:                 "Unary",
	Conditional:           "Conditional",
	Bracketed:             "Bracketed",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsStatement reports whether nodes of this kind are statements.
func (k Kind) IsStatement() bool {
	switch k {
	case Block, ExpressionStatement, LocalDeclaration, ReturnStatement,
		ControlStatement, GenericStatement, EmptyStatement:
		return true
	default:
		return false
	}
}

// IsName reports identifier and generic names.
func (k Kind) IsName() bool {
	return k == IdentifierName || k == GenericName
}
