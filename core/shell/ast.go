package shell

import (
	"fmt"
	"io"
	"strings"
)

// Arg is a dequoted command argument. QuoteChar is zero when the
// argument was not quoted.
type Arg struct {
	Value     string
	Quoted    bool
	QuoteChar byte
}

// Redirect is a parsed stdio redirection. Redirects are carried on the
// AST but the engine does not rewire stdio for them; they exist as an
// extension point.
type Redirect struct {
	Kind   Kind
	Target string
}

// Command is a node in the parsed command tree. The tree is immutable
// once built.
type Command interface {
	// Text returns the original source substring the node covers.
	Text() string

	dump(w io.Writer, depth int)
}

// Simple is a single program invocation with its arguments.
type Simple struct {
	Name      string
	Args      []Arg
	Redirects []Redirect
	Raw       string
}

// Sequence is a chain of stages joined by &&, || or ;.
// len(Operators) == len(Stages)-1 always holds.
type Sequence struct {
	Stages    []Command
	Operators []Kind
	Raw       string
}

// Pipeline is a chain of stages joined by |.
type Pipeline struct {
	Stages []Command
	Raw    string
}

// Subshell is a parenthesized command evaluated against an isolated
// execution context.
type Subshell struct {
	Inner Command
	Raw   string
}

func (c *Simple) Text() string   { return c.Raw }
func (c *Sequence) Text() string { return c.Raw }
func (c *Pipeline) Text() string { return c.Raw }
func (c *Subshell) Text() string { return c.Raw }

// Argv returns the program name followed by the dequoted argument
// values.
func (c *Simple) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Name)
	for _, a := range c.Args {
		argv = append(argv, a.Value)
	}
	return argv
}

// Dump writes an indented tree rendering of the command, one node per
// line. The format is stable and used by golden tests.
func Dump(w io.Writer, c Command) {
	if c == nil {
		fmt.Fprintln(w, "<nil>")
		return
	}
	c.dump(w, 0)
}

// DumpString renders the command tree to a string.
func DumpString(c Command) string {
	var sb strings.Builder
	Dump(&sb, c)
	return sb.String()
}

func indent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat("  ", depth))
}

func (c *Simple) dump(w io.Writer, depth int) {
	indent(w, depth)
	fmt.Fprintf(w, "Simple %q", c.Name)
	for _, a := range c.Args {
		if a.Quoted {
			fmt.Fprintf(w, " %q(%c)", a.Value, a.QuoteChar)
		} else {
			fmt.Fprintf(w, " %q", a.Value)
		}
	}
	for _, r := range c.Redirects {
		fmt.Fprintf(w, " %s%s", r.Kind, r.Target)
	}
	fmt.Fprintln(w)
}

func (c *Sequence) dump(w io.Writer, depth int) {
	indent(w, depth)
	ops := make([]string, len(c.Operators))
	for i, op := range c.Operators {
		ops[i] = op.String()
	}
	fmt.Fprintf(w, "Sequence [%s]\n", strings.Join(ops, " "))
	for _, stage := range c.Stages {
		stage.dump(w, depth+1)
	}
}

func (c *Pipeline) dump(w io.Writer, depth int) {
	indent(w, depth)
	fmt.Fprintln(w, "Pipeline")
	for _, stage := range c.Stages {
		stage.dump(w, depth+1)
	}
}

func (c *Subshell) dump(w io.Writer, depth int) {
	indent(w, depth)
	fmt.Fprintln(w, "Subshell")
	c.Inner.dump(w, depth+1)
}
