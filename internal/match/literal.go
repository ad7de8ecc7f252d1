package match

import (
	"strconv"
	"strings"
)

// StringValue decodes the text of a string literal token. Regular literals
// are unescaped, verbatim literals (@"...") turn "" into ". Interpolated
// literals are rejected since their value is not known statically.
func StringValue(text string) (string, bool) {
	switch {
	case strings.HasPrefix(text, `@"`):
		body, ok := trimQuotes(text[1:])
		if !ok {
			return "", false
		}
		return strings.ReplaceAll(body, `""`, `"`), true
	case strings.HasPrefix(text, `"`):
		body, ok := trimQuotes(text)
		if !ok {
			return "", false
		}
		return unescape(body)
	default:
		return "", false
	}
}

func trimQuotes(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	return s[1 : len(s)-1], true
}

func unescape(s string) (string, bool) {
	if !strings.Contains(s, `\`) {
		return s, true
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", false
		}
		switch s[i] {
		case '\\', '"', '\'':
			b.WriteByte(s[i])
		case '0':
			b.WriteByte(0)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case 'u':
			if i+5 > len(s) {
				return "", false
			}
			r, err := strconv.ParseUint(s[i+1:i+5], 16, 32)
			if err != nil {
				return "", false
			}
			b.WriteRune(rune(r))
			i += 4
		default:
			return "", false
		}
	}
	return b.String(), true
}
