package shell

import "unicode"

// operator characters that terminate an unquoted word.
const wordBreakers = "&|;()<>"

func isOperatorByte(b byte) bool {
	switch b {
	case '&', '|', ';', '(', ')', '<', '>':
		return true
	}
	return false
}

func isSpaceByte(b byte) bool {
	return b < 0x80 && unicode.IsSpace(rune(b))
}

// Tokenize splits a command line into tokens. Two-character operators
// are recognized before their one-character prefixes. Quote characters
// (' and ") open a region in which whitespace and operator characters
// are literal; a backslash preserves itself and the following byte
// verbatim. Word tokens keep their surrounding quotes; stripping them
// is the parser's job. Unterminated quotes degrade to a best-effort
// word instead of failing. A trailing EOF token is always emitted.
func Tokenize(src string) []Token {
	var tokens []Token
	i := 0
	n := len(src)

	for i < n {
		for i < n && isSpaceByte(src[i]) {
			i++
		}
		if i >= n {
			break
		}

		start := i
		switch {
		case src[i] == '&' && i+1 < n && src[i+1] == '&':
			tokens = append(tokens, Token{KindAnd, "&&", start, i + 2})
			i += 2
		case src[i] == '|' && i+1 < n && src[i+1] == '|':
			tokens = append(tokens, Token{KindOr, "||", start, i + 2})
			i += 2
		case src[i] == '>' && i+1 < n && src[i+1] == '>':
			tokens = append(tokens, Token{KindRedirAppend, ">>", start, i + 2})
			i += 2
		case src[i] == '&':
			tokens = append(tokens, Token{KindAmp, "&", start, i + 1})
			i++
		case src[i] == '|':
			tokens = append(tokens, Token{KindPipe, "|", start, i + 1})
			i++
		case src[i] == ';':
			tokens = append(tokens, Token{KindSemi, ";", start, i + 1})
			i++
		case src[i] == '(':
			tokens = append(tokens, Token{KindLParen, "(", start, i + 1})
			i++
		case src[i] == ')':
			tokens = append(tokens, Token{KindRParen, ")", start, i + 1})
			i++
		case src[i] == '>':
			tokens = append(tokens, Token{KindRedirOut, ">", start, i + 1})
			i++
		case src[i] == '<':
			tokens = append(tokens, Token{KindRedirIn, "<", start, i + 1})
			i++
		default:
			word, next := scanWord(src, i)
			i = next
			if word != "" {
				tokens = append(tokens, Token{KindWord, word, start, next})
			}
		}
	}

	tokens = append(tokens, Token{KindEOF, "", n, n})
	return tokens
}

// scanWord consumes one word starting at i, honoring quote regions and
// backslash escapes. The returned word includes any quote characters.
func scanWord(src string, i int) (string, int) {
	var word []byte
	n := len(src)
	inQuote := false
	var quoteChar byte

	for i < n {
		c := src[i]

		if !inQuote {
			switch {
			case c == '"' || c == '\'':
				inQuote = true
				quoteChar = c
				word = append(word, c)
				i++
			case isSpaceByte(c) || isOperatorByte(c):
				return string(word), i
			case c == '\\' && i+1 < n:
				// Escape keeps both bytes; no \n style interpretation.
				word = append(word, c, src[i+1])
				i += 2
			default:
				word = append(word, c)
				i++
			}
			continue
		}

		switch {
		case c == quoteChar && (i == 0 || src[i-1] != '\\'):
			inQuote = false
			word = append(word, c)
			i++
		case c == '\\' && i+1 < n && (src[i+1] == quoteChar || src[i+1] == '\\'):
			word = append(word, c, src[i+1])
			i += 2
		default:
			word = append(word, c)
			i++
		}
	}

	// Unterminated quote: return what we have.
	return string(word), i
}
