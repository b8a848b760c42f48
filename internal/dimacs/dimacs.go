package dimacs

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rhartert/yasmt/internal/sat"
)

// Instance is a CNF formula read from a DIMACS file. Variables are numbered
// from 1 to Variables and clauses use the DIMACS literal notation without
// their terminating 0.
type Instance struct {
	Variables int
	Clauses   [][]int
	Comments  []string
}

// Builder is implemented by SAT solvers that can load an instance.
type Builder interface {
	AddVariable() int
	AddClause([]sat.Literal) error
}

// reader opens the given file, decompressing it on the fly if gzipped is true.
// A filename of "-" reads from the standard input.
func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	var rc io.ReadCloser = os.Stdin
	if filename != "-" {
		file, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		rc = file
	}
	if gzipped {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, err
		}
		return &gzipReadCloser{Reader: gz, file: rc}, nil
	}
	return rc, nil
}

type gzipReadCloser struct {
	*gzip.Reader
	file io.Closer
}

func (g *gzipReadCloser) Close() error {
	err := g.Reader.Close()
	if ferr := g.file.Close(); err == nil {
		err = ferr
	}
	return err
}

// ParseDIMACS parses the given DIMACS CNF file.
func ParseDIMACS(filename string, gzipped bool) (*Instance, error) {
	r, err := reader(filename, gzipped)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer r.Close()

	return ReadDIMACS(r)
}

// ReadDIMACS parses a DIMACS CNF formula from r. Reading stops at the end of
// the input or at the first line starting with '%'.
func ReadDIMACS(r io.Reader) (*Instance, error) {
	instance := &Instance{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var err error
		switch line[0] {
		case '%': // end of instance
			return instance, nil
		case 'c':
			instance.Comments = append(instance.Comments, line)
		case 'p':
			err = parseHeaderLine(instance, line)
		default:
			err = parseClauseLine(instance, line)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return instance, nil
}

func parseHeaderLine(instance *Instance, line string) error {
	if instance.Clauses != nil {
		return fmt.Errorf("found a second header line %q", line)
	}
	parts := strings.Fields(line)
	if len(parts) != 4 {
		return fmt.Errorf("malformed header %q", line)
	}
	if parts[1] != "cnf" {
		return fmt.Errorf("instance of type %q are not supported", parts[1])
	}
	nVar, err := strconv.Atoi(parts[2])
	if err != nil || nVar < 0 {
		return fmt.Errorf("could not parse header %q: invalid variable count", line)
	}
	nClauses, err := strconv.Atoi(parts[3])
	if err != nil || nClauses < 0 {
		return fmt.Errorf("could not parse header %q: invalid clause count", line)
	}
	instance.Variables = nVar
	instance.Clauses = make([][]int, 0, nClauses)
	return nil
}

func parseClauseLine(instance *Instance, line string) error {
	if instance.Clauses == nil {
		return fmt.Errorf("found clause line before header %q", line)
	}
	c, err := parseClause(line, instance.Variables)
	if err != nil {
		return fmt.Errorf("could not parse clause %q: %w", line, err)
	}
	instance.Clauses = append(instance.Clauses, c)
	return nil
}

func parseClause(line string, nVars int) ([]int, error) {
	parts := strings.Fields(line)
	if parts[len(parts)-1] != "0" {
		return nil, fmt.Errorf("missing terminating 0")
	}
	literals := make([]int, len(parts)-1)
	for i, p := range parts[:len(literals)] {
		l, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		if l == 0 || l > nVars || l < -nVars {
			return nil, fmt.Errorf("literal %d out of range [1, %d]", l, nVars)
		}
		literals[i] = l
	}
	return literals, nil
}

// Instantiate adds the instance's variables and clauses to solver s.
func (instance *Instance) Instantiate(s Builder) error {
	for i := 0; i < instance.Variables; i++ {
		s.AddVariable()
	}
	for _, c := range instance.Clauses {
		clause := make([]sat.Literal, len(c))
		for i, l := range c {
			clause[i] = sat.FromDIMACS(l)
		}
		if err := s.AddClause(clause); err != nil {
			return err
		}
	}
	return nil
}

// Eval returns true if the model satisfies every clause of the instance. The
// value of variable v is model[v-1].
func (instance *Instance) Eval(model []bool) bool {
	if len(model) < instance.Variables {
		return false
	}
	for _, c := range instance.Clauses {
		satisfied := false
		for _, l := range c {
			if l > 0 && model[l-1] || l < 0 && !model[-l-1] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}
