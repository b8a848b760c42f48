package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rhartert/yasmt/internal/dimacs"
	"github.com/rhartert/yasmt/internal/sat"
	"github.com/rhartert/yasmt/internal/smt"
)

func runSat(cfg *config, filename string, w io.Writer) error {
	instance, err := dimacs.ParseDIMACS(filename, cfg.gzipped)
	if err != nil {
		return fmt.Errorf("could not parse instance: %w", err)
	}

	s := sat.NewSolver(solverOptions(cfg))
	if err := instance.Instantiate(s); err != nil {
		return fmt.Errorf("could not load instance: %w", err)
	}

	fmt.Fprintf(w, "c variables:  %d\n", instance.Variables)
	fmt.Fprintf(w, "c clauses:    %d\n", len(instance.Clauses))

	t := time.Now()
	status := s.Solve()
	elapsed := time.Since(t)

	fmt.Fprintf(w, "c time (sec): %f\n", elapsed.Seconds())
	fmt.Fprintf(w, "c conflicts:  %d (%.2f /sec)\n", s.TotalConflicts, float64(s.TotalConflicts)/elapsed.Seconds())
	fmt.Fprintf(w, "s %s\n", status.Verdict())

	if status != sat.True {
		return nil
	}
	model := s.Model()
	if !instance.Eval(model) {
		return fmt.Errorf("model does not satisfy the instance")
	}
	fmt.Fprintf(w, "v %s\n", modelLine(model))
	return nil
}

// modelLine returns the model in DIMACS notation, terminated by 0.
func modelLine(model []bool) string {
	sb := strings.Builder{}
	for i, b := range model {
		if !b {
			sb.WriteByte('-')
		}
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteByte(' ')
	}
	sb.WriteByte('0')
	return sb.String()
}

func runSmt(cfg *config, filename string, w io.Writer) error {
	f, err := smt.ParseFormula(filename)
	if err != nil {
		return fmt.Errorf("could not parse formula: %w", err)
	}

	s, err := smt.NewSolver(cfg.backend, solverOptions(cfg), log.StandardLogger())
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "c variables:   %d\n", f.Variables)
	fmt.Fprintf(w, "c clauses:     %d\n", len(f.Clauses))
	fmt.Fprintf(w, "c backend:     %s\n", cfg.backend)

	res, err := s.Solve(f)
	if errors.Is(err, smt.ErrUnknown) {
		fmt.Fprintf(w, "s %s\n", sat.Unknown.Verdict())
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "c pairs:       %d\n", res.Pairs)
	fmt.Fprintf(w, "c refinements: %d\n", res.Refinements)
	fmt.Fprintf(w, "c time (sec):  %f\n", res.Elapsed.Seconds())
	fmt.Fprintf(w, "s %s\n", sat.Lift(res.Satisfiable).Verdict())

	if !res.Satisfiable {
		return nil
	}
	if !f.Eval(res.Valuation) {
		return fmt.Errorf("valuation does not satisfy the formula")
	}
	fmt.Fprintf(w, "v %s\n", valuationLine(res.Valuation))
	return nil
}

// valuationLine returns the valuation as space separated values, the value of
// variable v being at position v.
func valuationLine(val smt.Valuation) string {
	values := make([]string, len(val))
	for i, x := range val {
		values[i] = strconv.Itoa(x)
	}
	return strings.Join(values, " ")
}
