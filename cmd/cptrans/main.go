// Command cptrans translates input-dialect source files into standard
// C++ text.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cptrans/internal/config"
	"cptrans/internal/diag"
	"cptrans/internal/lexer"
	"cptrans/internal/scanner"
	"cptrans/internal/scope"
	"cptrans/internal/translate"
	"cptrans/internal/watchmode"
)

var version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		recursiveDir string
		excludeFlag  string
		watch        bool
		noColor      bool
		configPath   string
		showVersion  bool
	)

	cmd := &cobra.Command{
		Use:           "cptrans [files...]",
		Short:         "Translate reduced-C+ input files into standard C++",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Println("cptrans version " + version)
				return nil
			}

			cfg, err := config.Load(cmd.Flags(), configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if excludeFlag != "" {
				cfg.Exclude = append(cfg.Exclude, splitComma(excludeFlag)...)
			}

			if len(args) == 0 && recursiveDir == "" {
				return usageError{}
			}

			s := scanner.New(cfg.Extensions, cfg.Exclude)
			files := append([]string{}, args...)
			if recursiveDir != "" {
				found, err := s.ScanPath(recursiveDir, true)
				if err != nil {
					return fmt.Errorf("scanning %s: %w", recursiveDir, err)
				}
				files = append(files, found...)
			}
			if len(files) == 0 {
				return usageError{}
			}

			reporter := diag.NewReporter(os.Stderr, resolveColor(cfg.Color, noColor))
			known := scope.New(cfg.ExtraTypes...)

			exitCode := runBatch(files, known, reporter)

			if watch {
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				debounce := time.Duration(cfg.WatchDebounceMillis) * time.Millisecond
				err := watchmode.Run(ctx, files, debounce, func(changed []string) {
					runBatch(changed, known, reporter)
				})
				if err != nil {
					return err
				}
				return nil
			}

			if exitCode != 0 {
				os.Exit(exitCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&recursiveDir, "recursive", "r", "", "recursively translate every recognized file under DIR")
	cmd.Flags().StringVar(&excludeFlag, "exclude", "", "comma-separated directory names to skip during --recursive walks")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running, re-translating files on change")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
	cmd.Flags().StringVar(&configPath, "config", "", "path to an explicit config file")
	cmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	return cmd
}

// runBatch translates files in order, reporting each outcome, and
// returns the aggregate exit code (spec §6/§7). A forbidden '->' is
// fatal and terminates the whole process immediately, pre-empting any
// remaining files.
func runBatch(files []string, known *scope.KnownTypes, reporter *diag.Reporter) int {
	exitCode := 0
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			reporter.IOFailure(path, err)
			exitCode = 1
			continue
		}

		out, err := translate.File(src, known)
		if err != nil {
			if arrowErr, ok := err.(*lexer.ArrowError); ok {
				reporter.ArrowRejected(path, arrowErr.Line, arrowErr.Col)
				os.Exit(2)
			}
			reporter.IOFailure(path, err)
			exitCode = 1
			continue
		}

		outPath := translate.OutputPath(path)
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			reporter.IOFailure(path, err)
			exitCode = 1
			continue
		}
		reporter.Wrote(outPath)
	}
	return exitCode
}

func splitComma(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func resolveColor(mode string, noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return true
	}
}

// usageError signals the "no arguments supplied" case (spec §6): print
// usage, exit 1.
type usageError struct{}

func (usageError) Error() string {
	return "Usage: cptrans [flags] file...\n\nAt least one input file (or --recursive DIR) is required."
}
