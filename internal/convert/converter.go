package convert

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// Converter rewrites DIMACS CNF instances into equality problems where each
// boolean variable is encoded by an (in)equality between two variables of a
// smaller set.
type Converter struct {
	rng    *rand.Rand
	logger logrus.FieldLogger
}

// NewConverter returns a converter drawing its variable mappings from rng.
// The logrus standard logger is used if logger is nil.
func NewConverter(rng *rand.Rand, logger logrus.FieldLogger) *Converter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Converter{rng: rng, logger: logger}
}

// Convert reads a DIMACS CNF instance from r and writes the rewritten instance
// to w, one line at a time. Comment lines are dropped and reading stops at the
// first line starting with '%' or at the end of r. It returns the session
// built from the problem line, or nil if there was none.
//
// Errors on malformed input are *LineError values.
func (c *Converter) Convert(r io.Reader, w io.Writer) (*Session, error) {
	out := bufio.NewWriter(w)
	session, err := c.convert(r, out)
	if ferr := out.Flush(); err == nil && ferr != nil {
		err = fmt.Errorf("could not write output: %w", ferr)
	}
	return session, err
}

func (c *Converter) convert(r io.Reader, out *bufio.Writer) (*Session, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var session *Session
	lines := 0
scan:
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lineErr := func(err error) error {
			return &LineError{Line: lineNum, Text: line, Err: err}
		}

		switch line[0] {
		case 'c':
			continue
		case '%':
			c.logger.WithField("line", lineNum).Debug("end of instance marker, stop reading")
			break scan
		case 'p':
			if session != nil {
				return session, lineErr(fmt.Errorf("%w: duplicate problem line", ErrBadHeader))
			}
			h, err := ParseHeader(line)
			if err != nil {
				return nil, lineErr(err)
			}
			if session, err = NewSession(h, c.rng); err != nil {
				return nil, lineErr(err)
			}
			c.logger.WithFields(logrus.Fields{
				"variables": h.Variables,
				"clauses":   h.Clauses,
				"reduced":   session.Reduced,
			}).Debug("variable mapping created")
			if _, err := fmt.Fprintln(out, session.HeaderLine()); err != nil {
				return session, err
			}
		default:
			if session == nil {
				return nil, lineErr(ErrMissingHeader)
			}
			rewritten, err := session.RewriteClause(line)
			if err != nil {
				return session, lineErr(err)
			}
			if _, err := fmt.Fprintln(out, rewritten); err != nil {
				return session, err
			}
			lines++
		}
	}
	if err := scanner.Err(); err != nil {
		return session, fmt.Errorf("could not read input: %w", err)
	}

	if session != nil && lines != session.Header.Clauses {
		c.logger.WithFields(logrus.Fields{
			"declared": session.Header.Clauses,
			"read":     lines,
		}).Warn("number of clause lines differs from the problem line")
	}
	return session, nil
}
