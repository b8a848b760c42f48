package smt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/rhartert/yasmt/internal/convert"
)

type literalAST struct {
	X        int    `parser:"@Int"`
	Relation string `parser:"@(\"=\" | \"<>\")"`
	Y        int    `parser:"@Int"`
}

var literalLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Relation", Pattern: `<>|=`},
})

var literalParser = participle.MustBuild[literalAST](
	participle.Lexer(literalLexer))

// ParseLiteral parses a literal of the form "x=y" or "x<>y".
func ParseLiteral(s string) (Literal, error) {
	ast, err := literalParser.ParseString("", s)
	if err != nil {
		return Literal{}, fmt.Errorf("invalid literal %q: %w", s, err)
	}
	l := Literal{Relation: Equal, X: ast.X, Y: ast.Y}
	if ast.Relation == "<>" {
		l.Relation = NotEqual
	}
	return l, nil
}

// ParseFormula reads the formula contained in the given file, or in the
// standard input if filename is "-".
func ParseFormula(filename string) (*Formula, error) {
	if filename == "-" {
		return ReadFormula(os.Stdin)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer file.Close()

	return ReadFormula(file)
}

// ReadFormula reads a formula from r. The format is the one of DIMACS CNF
// files where literals are written "x=y" or "x<>y": comment lines start with
// 'c', the problem line "p cnf <variables> <clauses>" precedes the clauses,
// each clause is on its own line with an optional terminating 0, and reading
// stops at a line starting with '%'. Once the problem line is read, a blank
// line is the empty clause.
func ReadFormula(r io.Reader) (*Formula, error) {
	var f *Formula
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := scanner.Text()
		if f == nil && strings.TrimSpace(line) == "" {
			continue
		}
		if line == "" {
			f.Clauses = append(f.Clauses, Clause{})
			continue
		}

		switch line[0] {
		case '%':
			return f, nil
		case 'c':
			continue
		case 'p':
			if f != nil {
				return nil, fmt.Errorf("line %d: found a second header line %q", lineNum, line)
			}
			h, err := convert.ParseHeader(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			f = &Formula{
				Variables: h.Variables,
				Clauses:   make([]Clause, 0, h.Clauses),
			}
		default:
			if f == nil {
				return nil, fmt.Errorf("line %d: found clause line before header %q", lineNum, line)
			}
			c, err := parseClause(line, f.Variables)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			f.Clauses = append(f.Clauses, c)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("missing header line")
	}

	return f, nil
}

func parseClause(line string, nVars int) (Clause, error) {
	tokens := strings.Fields(line)
	if n := len(tokens); n > 0 && tokens[n-1] == "0" {
		tokens = tokens[:n-1]
	}
	c := make(Clause, len(tokens))
	for i, tok := range tokens {
		l, err := ParseLiteral(tok)
		if err != nil {
			return nil, err
		}
		if l.X < 1 || l.X > nVars || l.Y < 1 || l.Y > nVars {
			return nil, fmt.Errorf("literal %q: variable out of range [1, %d]", tok, nVars)
		}
		c[i] = l
	}
	return c, nil
}
