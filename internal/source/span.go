package source

import (
	"fmt"
)

// NoFile marks spans that do not point into any file.
const NoFile FileID = ^FileID(0)

// NoSpan is the location of document-level diagnostics.
var NoSpan = Span{File: NoFile}

type Span struct {
	File  FileID
	Start uint32 // inclusive byte offset
	End   uint32 // exclusive byte offset
}

// IsValid reports whether the span points into a file.
func (s Span) IsValid() bool {
	return s.File != NoFile
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

// Contains reports whether off lies inside [Start, End).
func (s Span) Contains(off uint32) bool {
	return s.Start <= off && off < s.End
}

func (s Span) String() string {
	if !s.IsValid() {
		return "<none>"
	}
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

func (s Span) ShiftLeft(n uint32) Span {
	if n > s.Start {
		return s
	}
	return Span{
		File:  s.File,
		Start: s.Start - n,
		End:   s.End - n,
	}
}

func (s Span) ShiftRight(n uint32) Span {
	return Span{
		File:  s.File,
		Start: s.Start + n,
		End:   s.End + n,
	}
}
