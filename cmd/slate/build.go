package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slate/internal/diagfmt"
	"slate/internal/pipeline"
	"slate/internal/trace"
)

var (
	buildProject    string
	buildUI         bool
	buildTrace      string
	buildTraceLevel string
	buildResCache   bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildProject, "project", "p", ".", "project descriptor file or directory")
	buildCmd.Flags().BoolVar(&buildUI, "ui", false, "render interactive progress")
	buildCmd.Flags().StringVar(&buildTrace, "trace", "", "trace output destination (- for stderr, or a file path)")
	buildCmd.Flags().StringVar(&buildTraceLevel, "trace-level", "off", "trace verbosity (off|phase|host|debug)")
	buildCmd.Flags().BoolVar(&buildResCache, "resolution-cache", false, "enable the persistent module-resolution cache")
}

var buildCmd = &cobra.Command{
	Use:   "build [base-path]",
	Short: "Compile a project through the extension pipeline",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cmd.Root()
		colorMode, err := root.PersistentFlags().GetString("color")
		if err != nil {
			return fmt.Errorf("failed to get color flag: %w", err)
		}
		quiet, err := root.PersistentFlags().GetBool("quiet")
		if err != nil {
			return fmt.Errorf("failed to get quiet flag: %w", err)
		}
		showTimings, err := root.PersistentFlags().GetBool("timings")
		if err != nil {
			return fmt.Errorf("failed to get timings flag: %w", err)
		}
		maxDiags, err := root.PersistentFlags().GetInt("max-diagnostics")
		if err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}

		tracer, cleanup, err := setupTracing(buildTrace, buildTraceLevel)
		if err != nil {
			return err
		}
		defer cleanup()

		req := pipeline.Request{
			Project:         buildProject,
			MaxDiagnostics:  maxDiags,
			Stderr:          os.Stderr,
			Tracer:          tracer,
			Color:           useColor(colorMode, os.Stderr),
			PathMode:        diagfmt.PathModeAuto,
			ResolutionCache: buildResCache,
		}
		if len(args) == 1 {
			req.BasePath = args[0]
		}

		var res pipeline.Result
		if buildUI && isTerminal(os.Stdout) {
			res = runWithUI("slate build", req)
		} else {
			res = pipeline.Run(req)
		}

		if showTimings && !quiet {
			printStageTimings(cmd.OutOrStdout(), res.Timings)
		}
		if res.ExitCode != 0 {
			// diagnostics are already on stderr; keep cobra from repeating
			// them. Returning instead of exiting lets the deferred trace
			// cleanup flush before the process dies.
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return errBuildFailed
		}
		return nil
	},
}

// errBuildFailed maps a failed run to a non-zero process exit through main.
var errBuildFailed = errors.New("build failed")

// setupTracing builds a tracer from the build flags and returns it with a
// cleanup function.
func setupTracing(dest, levelStr string) (trace.Tracer, func(), error) {
	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace level: %w", err)
	}
	if dest == "" || level == trace.LevelOff {
		return trace.Nop, func() {}, nil
	}
	tracer, err := trace.Open(dest, level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open trace destination: %w", err)
	}
	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "trace: close error: %v\n", err)
		}
	}
	return tracer, cleanup, nil
}
