// Package token defines lexical token kinds and trivia for C#-style sources.
// Invariants:
//   - Token.Text is exactly the source bytes covered by Token.Span.
//   - Trivia never appears in the main token stream; it is attached to tokens as
//     Leading or Trailing.
//   - Preprocessor directives (#if, #endif, ...) and inactive conditional regions
//     are trivia. A directive's Text never includes its line terminator.
//   - Concatenating leading trivia, text and trailing trivia of every token in
//     order reproduces the source byte-for-byte.
package token
