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
	LexUnterminatedChar         Code = 1004
	LexBadDirective             Code = 1005
	LexUnbalancedDirective      Code = 1006

	// Usage analyzers
	DevGuardMissing       Code = 3001
	ConfigResourceMissing Code = 3002
	ConfigKeyMissing      Code = 3003

	// IO
	IOLoadFileError Code = 4001
)

type codeInfo struct {
	id       string
	title    string
	format   string
	severity Severity
}

var codeTable = map[Code]codeInfo{
	UnknownCode:                 {"E0000", "unknown error", "unknown error", SevError},
	LexInfo:                     {"", "lexical information", "%s", SevInfo},
	LexUnknownChar:              {"", "unknown character", "unknown character %s", SevError},
	LexUnterminatedString:       {"", "unterminated string literal", "unterminated string literal", SevError},
	LexUnterminatedBlockComment: {"", "unterminated block comment", "unterminated block comment", SevError},
	LexUnterminatedChar:         {"", "unterminated character literal", "unterminated character literal", SevError},
	LexBadDirective:             {"", "malformed preprocessor directive", "malformed preprocessor directive: %s", SevWarning},
	LexUnbalancedDirective:      {"", "unbalanced conditional directive", "%s", SevWarning},
	DevGuardMissing: {
		"DEV-GUARD-MISSING",
		"Release build auto-migration",
		"It is recommended to only run auto-migrations in development environments",
		SevWarning,
	},
	ConfigResourceMissing: {
		"CONFIG-RESOURCE-MISSING",
		"Settings file cannot be analyzed",
		"No %s was supplied for analysis; add it to the analyzed files",
		SevError,
	},
	ConfigKeyMissing: {
		"CONFIG-KEY-MISSING",
		"Settings file does not contain database connection string",
		"The %s file does not contain a database connection string for connection '%s'",
		SevError,
	},
	IOLoadFileError: {"", "failed to load file", "failed to load %s: %s", SevError},
}

// ID returns the stable, host-facing identifier of the code.
func (c Code) ID() string {
	if info, ok := codeTable[c]; ok && info.id != "" {
		return info.id
	}
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("USE%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	info, ok := codeTable[c]
	if !ok {
		return codeTable[UnknownCode].title
	}
	return info.title
}

// Format is the fixed message template of the code.
func (c Code) Format() string {
	info, ok := codeTable[c]
	if !ok {
		return codeTable[UnknownCode].format
	}
	return info.format
}

// DefaultSeverity is the severity a diagnostic of this code gets unless overridden.
func (c Code) DefaultSeverity() Severity {
	info, ok := codeTable[c]
	if !ok {
		return SevError
	}
	return info.severity
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// LookupCode resolves a stable ID back to its code.
func LookupCode(id string) (Code, bool) {
	for c := range codeTable {
		if c.ID() == id {
			return c, true
		}
	}
	return UnknownCode, false
}
