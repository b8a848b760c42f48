package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"runtime/pprof"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rhartert/yasmt/internal/convert"
	"github.com/rhartert/yasmt/internal/sat"
	"github.com/rhartert/yasmt/internal/smt"
)

type config struct {
	// Global flags.
	verbose    bool
	veryVerb   bool
	cpuProfile bool
	memProfile bool

	// convert
	seed uint64

	// sat
	gzipped      bool
	maxConflicts int64

	// smt
	backend string
}

func solverOptions(cfg *config) sat.Options {
	options := sat.DefaultOptions
	if cfg.maxConflicts >= 0 {
		options.MaxConflicts = cfg.maxConflicts
	}
	if cfg.veryVerb {
		options.Logger = log.StandardLogger()
	} else {
		quiet := log.New()
		quiet.SetOutput(os.Stderr)
		quiet.SetLevel(log.InfoLevel)
		options.Logger = quiet
	}
	return options
}

// rng returns the random source of the conversion, seeded from the clock if
// no seed was given.
func rng(cfg *config) *rand.Rand {
	seed := cfg.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.WithField("seed", seed).Debug("random source initialized")
	return rand.New(rand.NewPCG(seed, seed))
}

func newRootCmd() *cobra.Command {
	cfg := &config{}
	var cpuFile *os.File

	rootCmd := &cobra.Command{
		Use:   "yasmt",
		Short: "Equality logic benchmarks from DIMACS CNF instances",
		Long: "yasmt rewrites DIMACS CNF instances into equality logic problems " +
			"(convert) and solves both kinds of instances (sat, smt). Without " +
			"subcommand, it converts the standard input.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.verbose || cfg.veryVerb {
				log.SetLevel(log.DebugLevel)
			}
			if cfg.cpuProfile {
				f, err := os.Create("cpuprof")
				if err != nil {
					return err
				}
				if err := pprof.StartCPUProfile(f); err != nil {
					f.Close()
					return err
				}
				cpuFile = f
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if cpuFile != nil {
				pprof.StopCPUProfile()
				cpuFile.Close()
			}
			if cfg.memProfile {
				f, err := os.Create("memprof")
				if err != nil {
					return err
				}
				defer f.Close()
				return pprof.WriteHeapProfile(f)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cfg, cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "log the progress of the commands")
	flags.BoolVar(&cfg.veryVerb, "vv", false, "also log the progress of the SAT search")
	flags.BoolVar(&cfg.cpuProfile, "cpuprof", false, "save pprof CPU profile in cpuprof")
	flags.BoolVar(&cfg.memProfile, "memprof", false, "save pprof memory profile in memprof")
	rootCmd.Flags().Uint64Var(&cfg.seed, "seed", 0, "seed of the variable mapping (0 = from the clock)")

	rootCmd.AddCommand(
		newConvertCmd(cfg),
		newSatCmd(cfg),
		newSmtCmd(cfg),
	)
	return rootCmd
}

func newConvertCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Rewrite a DIMACS CNF instance read on stdin as an equality problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cfg, cmd)
		},
	}
	cmd.Flags().Uint64Var(&cfg.seed, "seed", 0, "seed of the variable mapping (0 = from the clock)")
	return cmd
}

func newSatCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sat FILE",
		Short: "Solve a DIMACS CNF instance (FILE can be - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSat(cfg, args[0], cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&cfg.gzipped, "gzip", false, "the instance file is gzipped")
	cmd.Flags().Int64Var(&cfg.maxConflicts, "max_conflicts", -1,
		"maximum number of conflicts allowed to solve the problem (-1 = no maximum)")
	return cmd
}

func newSmtCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smt FILE",
		Short: "Solve an equality problem produced by convert (FILE can be - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSmt(cfg, args[0], cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&cfg.backend, "backend", smt.DefaultBackend,
		fmt.Sprintf("SAT backend, one of %v", smt.Backends()))
	cmd.Flags().Int64Var(&cfg.maxConflicts, "max_conflicts", -1,
		"maximum number of conflicts of the yass backend over all refinements (-1 = no maximum)")
	return cmd
}

func runConvert(cfg *config, cmd *cobra.Command) error {
	c := convert.NewConverter(rng(cfg), log.StandardLogger())
	_, err := c.Convert(cmd.InOrStdin(), cmd.OutOrStdout())
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
