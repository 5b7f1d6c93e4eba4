package shell

import "fmt"

// Kind identifies the lexical class of a token.
type Kind int

const (
	KindWord Kind = iota
	KindAnd         // &&
	KindOr          // ||
	KindSemi        // ;
	KindAmp         // &
	KindPipe        // |
	KindLParen      // (
	KindRParen      // )
	KindRedirOut    // >
	KindRedirAppend // >>
	KindRedirIn     // <
	KindEOF
)

func (k Kind) String() string {
	switch k {
	case KindWord:
		return "Word"
	case KindAnd:
		return "&&"
	case KindOr:
		return "||"
	case KindSemi:
		return ";"
	case KindAmp:
		return "&"
	case KindPipe:
		return "|"
	case KindLParen:
		return "("
	case KindRParen:
		return ")"
	case KindRedirOut:
		return ">"
	case KindRedirAppend:
		return ">>"
	case KindRedirIn:
		return "<"
	case KindEOF:
		return "EOF"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is a single lexical unit of a command line. Pos and End are
// byte offsets into the source string so parsed nodes can recover the
// exact substring they were built from.
type Token struct {
	Kind Kind
	Raw  string
	Pos  int
	End  int
}

func (t Token) String() string {
	if t.Kind == KindWord {
		return fmt.Sprintf("Word(%s)", t.Raw)
	}
	return t.Kind.String()
}
