package dimacs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testInstance = Instance{
	Variables: 3,
	Clauses: [][]int{
		{1, 2, 3},
		{1, 2, -3},
		{1, -2, 3},
		{-1, 2, 3},
		{-1, -2, 3},
		{-1, 2, -3},
		{1, -2, -3},
		{-1, -2, -3},
	},
	Comments: []string{"c minialist unsat instance"},
}

func TestParseDIMACS_cnf(t *testing.T) {
	want := &testInstance

	got, err := ParseDIMACS("testdata/test_instance.cnf", false)

	if err != nil {
		t.Errorf("ParseDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseDIMACS(): mismatch (+want, -got):\n%s", diff)
	}
}

func TestParseDIMACS_gzip(t *testing.T) {
	want := &testInstance

	got, err := ParseDIMACS("testdata/test_instance.cnf.gz", true)

	if err != nil {
		t.Errorf("ParseDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseDIMACS(): mismatch (+want, -got):\n%s", diff)
	}
}

func TestParseDIMACS_noFile(t *testing.T) {
	got, err := ParseDIMACS("", false)

	if err == nil {
		t.Errorf("ParseDIMACS(): want error, got none")
	}
	if got != nil {
		t.Errorf("ParseDIMACS(): want nil instance, got %+v", got)
	}
}

func TestParseDIMACS_gzip_notGzipFile(t *testing.T) {
	got, err := ParseDIMACS("testdata/test_instance.cnf", true)

	if err == nil {
		t.Errorf("ParseDIMACS(): want error, got none")
	}
	if got != nil {
		t.Errorf("ParseDIMACS(): want nil instance, got %+v", got)
	}
}

func TestReadDIMACS_stopsAtPercent(t *testing.T) {
	input := "p cnf 2 1\n1 -2 0\n%\n0\n"
	want := &Instance{Variables: 2, Clauses: [][]int{{1, -2}}}

	got, err := ReadDIMACS(strings.NewReader(input))

	if err != nil {
		t.Errorf("ReadDIMACS(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadDIMACS(): mismatch (+want, -got):\n%s", diff)
	}
}

func TestReadDIMACS_errors(t *testing.T) {
	inputs := map[string]string{
		"clause before header":  "1 2 0\np cnf 2 1\n",
		"second header":         "p cnf 2 1\n1 0\np cnf 2 1\n",
		"not cnf":               "p wcnf 2 1\n",
		"short header":          "p cnf 2\n",
		"bad literal":           "p cnf 2 1\n1 x 0\n",
		"missing zero":          "p cnf 2 1\n1 2\n",
		"out of range":          "p cnf 2 1\n1 3 0\n",
		"negative out of range": "p cnf 2 1\n-3 0\n",
		"min int literal":       "p cnf 2 1\n-9223372036854775808 0\n",
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			got, err := ReadDIMACS(strings.NewReader(input))
			if err == nil {
				t.Errorf("ReadDIMACS(): want error, got none")
			}
			if got != nil {
				t.Errorf("ReadDIMACS(): want nil instance, got %+v", got)
			}
		})
	}
}

func TestInstance_Eval(t *testing.T) {
	instance := &Instance{Variables: 2, Clauses: [][]int{{1, 2}, {-1, -2}}}

	if !instance.Eval([]bool{true, false}) {
		t.Errorf("Eval([true false]): want true, got false")
	}
	if instance.Eval([]bool{true, true}) {
		t.Errorf("Eval([true true]): want false, got true")
	}
	if instance.Eval([]bool{true}) {
		t.Errorf("Eval([true]): want false for a partial model, got true")
	}
}

func TestParseModels(t *testing.T) {
	want := [][]bool{{true, false}, {false, true}}

	got, err := ParseModels("testdata/xor.cnf.models")

	if err != nil {
		t.Errorf("ParseModels(): want no error, got %s", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseModels(): mismatch (+want, -got):\n%s", diff)
	}
}
