package convert

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// testSession is the session where variable 1 is mapped to (3, 5) and
// variable 2 to (1, 2).
var testSession = &Session{
	Header:  Header{Format: "cnf", Variables: 2, Clauses: 1},
	Reduced: 5,
	Mapping: Mapping{{3, 5}, {1, 2}},
}

func ExampleSession_RewriteClause() {
	line, _ := testSession.RewriteClause("1 -2 0")
	fmt.Printf("%q\n", line)

	// Output:
	// "3=5 1<>2 "
}

func TestParseHeader(t *testing.T) {
	want := Header{Format: "cnf", Variables: 20, Clauses: 91}

	got, err := ParseHeader("p  cnf 20   91 ")

	if err != nil {
		t.Errorf("ParseHeader(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseHeader(): mismatch (+want, -got):\n%s", diff)
	}
}

func TestParseHeader_errors(t *testing.T) {
	for _, line := range []string{
		"p",
		"p cnf 2",
		"p cnf 2 1 3",
		"p sat 2 1",
		"p cnf x 1",
		"p cnf 2 y",
		"p cnf -2 1",
		"pp cnf 2 1",
		"p cnf 4611686018427387904 1",
		"p cnf 1073741825 1",
	} {
		if _, err := ParseHeader(line); !errors.Is(err, ErrBadHeader) {
			t.Errorf("ParseHeader(%q): want %v, got %v", line, ErrBadHeader, err)
		}
	}
}

func TestSession_RewriteLiteral(t *testing.T) {
	testCases := map[int]string{
		0:  "",
		1:  "3=5",
		-1: "3<>5",
		2:  "1=2",
		-2: "1<>2",
	}
	for x, want := range testCases {
		got, err := testSession.RewriteLiteral(x)
		if err != nil {
			t.Errorf("RewriteLiteral(%d): want no error, got %s", x, err)
		}
		if got != want {
			t.Errorf("RewriteLiteral(%d): want %q, got %q", x, want, got)
		}
	}
}

func TestSession_RewriteLiteral_outOfRange(t *testing.T) {
	for _, x := range []int{3, -3, 100, math.MaxInt64, math.MinInt64} {
		if _, err := testSession.RewriteLiteral(x); !errors.Is(err, ErrLiteralRange) {
			t.Errorf("RewriteLiteral(%d): want %v, got %v", x, ErrLiteralRange, err)
		}
	}
}

func TestSession_RewriteClause(t *testing.T) {
	testCases := map[string]string{
		"1 -2 0":    "3=5 1<>2 ",
		" -1\t2 0 ": "3<>5 1=2 ",
		"2 0":       "1=2 ",
		"0":         "",
		"1 2":       "3=5 1=2",
		"   ":       "",
	}
	for line, want := range testCases {
		got, err := testSession.RewriteClause(line)
		if err != nil {
			t.Errorf("RewriteClause(%q): want no error, got %s", line, err)
		}
		if got != want {
			t.Errorf("RewriteClause(%q): want %q, got %q", line, want, got)
		}
	}
}

func TestSession_RewriteClause_outOfRange(t *testing.T) {
	for _, line := range []string{"-9223372036854775808 0", "1 9223372036854775807 0"} {
		if _, err := testSession.RewriteClause(line); !errors.Is(err, ErrLiteralRange) {
			t.Errorf("RewriteClause(%q): want %v, got %v", line, ErrLiteralRange, err)
		}
	}
}

func TestSession_RewriteClause_badToken(t *testing.T) {
	if _, err := testSession.RewriteClause("1 a 0"); !errors.Is(err, ErrBadClause) {
		t.Errorf("RewriteClause(): want %v, got %v", ErrBadClause, err)
	}
}

func TestSession_HeaderLine(t *testing.T) {
	if got, want := testSession.HeaderLine(), "p cnf 5 1"; got != want {
		t.Errorf("HeaderLine(): want %q, got %q", want, got)
	}
}

func convert(t *testing.T, seed uint64, input string) (*Session, string, error) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	var out bytes.Buffer
	s, err := NewConverter(newRand(seed), logger).Convert(strings.NewReader(input), &out)
	return s, out.String(), err
}

func TestConvert(t *testing.T) {
	input := "c a comment\np cnf 2 1\n1 -2 0\n"

	session, got, err := convert(t, 7, input)

	if err != nil {
		t.Fatalf("Convert(): want no error, got %s", err)
	}
	if session.Reduced != 3 {
		t.Errorf("Convert(): want 3 reduced variables, got %d", session.Reduced)
	}
	if err := session.Mapping.Validate(); err != nil {
		t.Errorf("Convert(): invalid mapping: %s", err)
	}
	p1, p2 := session.Mapping[0], session.Mapping[1]
	want := fmt.Sprintf("p cnf 3 1\n%d=%d %d<>%d \n", p1.A, p1.B, p2.A, p2.B)
	if got != want {
		t.Errorf("Convert(): want %q, got %q", want, got)
	}
}

func TestConvert_stopsAtTerminator(t *testing.T) {
	input := "p cnf 3 2\n1 0\n-3 0\n%\n2 0\nnot even a clause\n"

	session, got, err := convert(t, 1, input)

	if err != nil {
		t.Fatalf("Convert(): want no error, got %s", err)
	}
	p1, p3 := session.Mapping[0], session.Mapping[2]
	want := fmt.Sprintf("p cnf 4 2\n%d=%d \n%d<>%d \n", p1.A, p1.B, p3.A, p3.B)
	if got != want {
		t.Errorf("Convert(): want %q, got %q", want, got)
	}
}

func TestConvert_noHeader(t *testing.T) {
	session, got, err := convert(t, 1, "c only comments\n\n")

	if err != nil {
		t.Errorf("Convert(): want no error, got %s", err)
	}
	if session != nil {
		t.Errorf("Convert(): want nil session, got %+v", session)
	}
	if got != "" {
		t.Errorf("Convert(): want no output, got %q", got)
	}
}

func TestConvert_sameSeedSameOutput(t *testing.T) {
	input := "p cnf 30 3\n1 2 -3 0\n-30 17 0\n4 5 6 7 8 0\n"

	_, want, _ := convert(t, 99, input)
	_, got, _ := convert(t, 99, input)

	if got != want {
		t.Errorf("Convert(): same seed gave different outputs:\n%s\n%s", want, got)
	}
}

func TestConvert_structureIndependentOfSeed(t *testing.T) {
	input := "p cnf 30 3\n1 2 -3 0\n-30 17 0\n4 5 6 7 8 0\n"

	for seed := uint64(0); seed < 20; seed++ {
		_, got, err := convert(t, seed, input)
		if err != nil {
			t.Fatalf("Convert(): want no error, got %s", err)
		}
		lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
		if len(lines) != 4 {
			t.Fatalf("Convert(): want 4 lines, got %d", len(lines))
		}
		if lines[0] != "p cnf 9 3" {
			t.Errorf("Convert(): want header %q, got %q", "p cnf 9 3", lines[0])
		}
		for i, n := range []int{3, 2, 5} {
			if got := len(strings.Fields(lines[i+1])); got != n {
				t.Errorf("Convert(): line %d: want %d literals, got %d", i+2, n, got)
			}
		}
	}
}

func TestConvert_errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		line  int
		want  error
	}{
		{"missing header", "c x\n1 2 0\n", 2, ErrMissingHeader},
		{"blank line before header", "  \np cnf 1 1\n1 0\n", 1, ErrMissingHeader},
		{"not cnf", "p sat 2 1\n", 1, ErrBadHeader},
		{"duplicate header", "p cnf 2 1\np cnf 2 1\n", 2, ErrBadHeader},
		{"bad token", "p cnf 2 1\n1 two 0\n", 2, ErrBadClause},
		{"out of range", "p cnf 2 2\n1 0\n\n-3 0\n", 4, ErrLiteralRange},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := convert(t, 1, tc.input)

			if !errors.Is(err, tc.want) {
				t.Fatalf("Convert(): want %v, got %v", tc.want, err)
			}
			var lineErr *LineError
			if !errors.As(err, &lineErr) {
				t.Fatalf("Convert(): want a *LineError, got %T", err)
			}
			if lineErr.Line != tc.line {
				t.Errorf("Convert(): want error on line %d, got %d", tc.line, lineErr.Line)
			}
		})
	}
}

func TestConvert_warnsOnClauseCount(t *testing.T) {
	logger, hook := test.NewNullLogger()
	var out bytes.Buffer

	_, err := NewConverter(newRand(1), logger).Convert(strings.NewReader("p cnf 2 3\n1 0\n"), &out)

	if err != nil {
		t.Fatalf("Convert(): want no error, got %s", err)
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.WarnLevel {
		t.Errorf("Convert(): want a warning, got %v", entry)
	}
}
