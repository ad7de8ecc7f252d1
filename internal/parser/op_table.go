package parser

import "efguard/internal/token"

// binaryPrec returns the precedence of a binary operator token, 0 if the
// token is not one. Higher binds tighter.
func binaryPrec(t token.Token) int {
	switch t.Kind {
	case token.QuestionQuestion:
		return 1
	case token.Lt, token.Gt:
		return 8
	case token.Operator:
		switch t.Text {
		case "||":
			return 2
		case "&&":
			return 3
		case "|":
			return 4
		case "^":
			return 5
		case "&":
			return 6
		case "==", "!=":
			return 7
		case "<=", ">=":
			return 8
		case "<<":
			return 9
		case "+", "-":
			return 10
		case "*", "/", "%":
			return 11
		}
	case token.Ident:
		switch t.Text {
		case "is", "as":
			return 8
		}
	}
	return 0
}

// isAssignOp reports '=' and compound assignments (+=, ??=, ...).
func isAssignOp(t token.Token) bool {
	if t.Kind == token.Assign {
		return true
	}
	if t.Kind != token.Operator {
		return false
	}
	switch t.Text {
	case "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", "??=":
		return true
	}
	return false
}

func isPrefixOp(t token.Token) bool {
	switch t.Kind {
	case token.Bang:
		return true
	case token.Operator:
		switch t.Text {
		case "-", "+", "~", "++", "--", "&", "*", "^":
			return true
		}
	case token.Ident:
		return t.Text == "await"
	}
	return false
}
