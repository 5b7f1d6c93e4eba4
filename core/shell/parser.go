// Package shell tokenizes and parses a restricted subset of POSIX
// shell syntax: simple commands, pipelines, &&/||/; sequences and
// parenthesized subshells. Anything beyond the subset is detected by
// NeedsRealShell and handed verbatim to an OS shell by the caller.
//
// The grammar, lowest to highest precedence:
//
//	sequence := pipeline ( (AND|OR|SEMI|AMP) pipeline )*
//	pipeline := command ( PIPE command )*
//	command  := '(' sequence ')' | simple
//	simple   := WORD+ ( (REDIR_OUT|REDIR_APPEND|REDIR_IN) WORD )*
//
// Parsing is deliberately lenient: malformed input degrades to a
// partial tree rather than an error, pushing ambiguous syntax toward
// the shell-fallback path.
package shell

import "strings"

// Parse tokenizes and parses a command line. ok is false when the
// input contains no command at all (empty or operators only).
func Parse(src string) (cmd Command, ok bool) {
	p := &parser{src: src, tokens: Tokenize(src)}
	cmd = p.parseSequence()
	return cmd, cmd != nil
}

type parser struct {
	src    string
	tokens []Token
	pos    int
}

func (p *parser) current() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return Token{Kind: KindEOF, Pos: len(p.src), End: len(p.src)}
}

func (p *parser) consume() Token {
	tok := p.current()
	p.pos++
	return tok
}

// span returns the trimmed source substring between two byte offsets.
func (p *parser) span(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(p.src) {
		end = len(p.src)
	}
	if start >= end {
		return ""
	}
	return strings.TrimSpace(p.src[start:end])
}

func (p *parser) parseSequence() Command {
	start := p.current().Pos
	var stages []Command
	var operators []Kind

	if cmd := p.parsePipeline(); cmd != nil {
		stages = append(stages, cmd)
	}

loop:
	for {
		switch p.current().Kind {
		case KindEOF, KindRParen:
			break loop
		case KindAnd, KindOr, KindSemi:
			op := p.consume().Kind
			if cmd := p.parsePipeline(); cmd != nil {
				stages = append(stages, cmd)
				operators = append(operators, op)
			}
		case KindAmp:
			// Background execution is unsupported: & separates stages
			// like ; and the preceding stage runs in the foreground. A
			// trailing & is tolerated.
			p.consume()
			if cmd := p.parsePipeline(); cmd != nil {
				stages = append(stages, cmd)
				operators = append(operators, KindSemi)
			}
		default:
			break loop
		}
	}

	switch {
	case len(stages) == 0:
		return nil
	case len(stages) == 1:
		return stages[0]
	}

	end := p.current().Pos
	return &Sequence{Stages: stages, Operators: operators, Raw: p.span(start, end)}
}

func (p *parser) parsePipeline() Command {
	start := p.current().Pos
	var stages []Command

	if cmd := p.parseCommand(); cmd != nil {
		stages = append(stages, cmd)
	}

	for p.current().Kind == KindPipe {
		p.consume()
		if cmd := p.parseCommand(); cmd != nil {
			stages = append(stages, cmd)
		}
	}

	switch {
	case len(stages) == 0:
		return nil
	case len(stages) == 1:
		return stages[0]
	}

	end := p.current().Pos
	return &Pipeline{Stages: stages, Raw: p.span(start, end)}
}

func (p *parser) parseCommand() Command {
	if p.current().Kind == KindLParen {
		start := p.consume().Pos
		inner := p.parseSequence()

		// A missing ) is tolerated; parsing just ran to EOF.
		if p.current().Kind == KindRParen {
			p.consume()
		}
		end := p.current().Pos

		if inner == nil {
			return nil
		}
		return &Subshell{Inner: inner, Raw: p.span(start, end)}
	}

	return p.parseSimple()
}

func (p *parser) parseSimple() Command {
	start := p.current().Pos
	var words []string
	var redirects []Redirect

loop:
	for {
		switch p.current().Kind {
		case KindWord:
			words = append(words, p.consume().Raw)
		case KindRedirOut, KindRedirAppend, KindRedirIn:
			kind := p.consume().Kind
			// A redirect with no target word is silently dropped.
			if p.current().Kind == KindWord {
				redirects = append(redirects, Redirect{Kind: kind, Target: p.consume().Raw})
			}
		default:
			break loop
		}
	}

	if len(words) == 0 {
		return nil
	}

	args := make([]Arg, 0, len(words)-1)
	for _, w := range words[1:] {
		value, quoted, quoteChar := Dequote(w)
		args = append(args, Arg{Value: value, Quoted: quoted, QuoteChar: quoteChar})
	}

	end := p.current().Pos
	return &Simple{
		Name:      words[0],
		Args:      args,
		Redirects: redirects,
		Raw:       p.span(start, end),
	}
}

// Dequote strips exactly one outer matching quote pair from a word and
// reports which quote character was used. Content inside the quotes is
// never re-interpreted.
func Dequote(word string) (value string, quoted bool, quoteChar byte) {
	if len(word) >= 2 {
		first, last := word[0], word[len(word)-1]
		if (first == '"' || first == '\'') && first == last {
			return word[1 : len(word)-1], true, first
		}
	}
	return word, false, 0
}
