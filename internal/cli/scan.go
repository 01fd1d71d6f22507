package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/i18n-detect/internal/config"
	"github.com/mvp-joe/i18n-detect/internal/detect"
	"github.com/mvp-joe/i18n-detect/internal/discovery"
	"github.com/mvp-joe/i18n-detect/internal/extract"
	"github.com/mvp-joe/i18n-detect/internal/report"
)

var (
	scanFormat            string
	scanCollectErrors     bool
	scanConcurrency       int
	scanQuiet             bool
	scanOutput            string
	scanAllowSyntaxErrors bool
	scanFailOnFound       bool
)

// errHardcodedTextFound is returned by scan --fail-on-found when the report is not empty.
var errHardcodedTextFound = errors.New("hardcoded text found")

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Report hardcoded text in source files",
	Long: `Scan files and directories for string literals and JSX text.

Directories are expanded using the include and ignore patterns from
.i18n-detect/config.yml. Files are reported in the order given, and
each literal is listed with its line and column span.

Examples:
  i18n-detect scan
  i18n-detect scan src/components --format text
  i18n-detect scan src --collect-errors --concurrency 8 -o report.json`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "", "output format: json or text (default from config)")
	scanCmd.Flags().BoolVar(&scanCollectErrors, "collect-errors", false, "report unreadable or unparsable files instead of aborting")
	scanCmd.Flags().IntVarP(&scanConcurrency, "concurrency", "j", 0, "number of files processed at once (default from config)")
	scanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "suppress progress output")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "write the report to a file instead of stdout")
	scanCmd.Flags().BoolVar(&scanAllowSyntaxErrors, "allow-syntax-errors", false, "extract from files that contain syntax errors")
	scanCmd.Flags().BoolVar(&scanFailOnFound, "fail-on-found", false, "exit with an error when any hardcoded text is found")

	rootCmd.AddCommand(scanCmd)
}

// applyScanFlags overrides config values with flags the user set explicitly.
func applyScanFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = scanFormat
	}
	if flags.Changed("collect-errors") && scanCollectErrors {
		cfg.Detect.FailurePolicy = string(detect.PolicyCollect)
	}
	if flags.Changed("concurrency") {
		cfg.Detect.Concurrency = scanConcurrency
	}
	if flags.Changed("allow-syntax-errors") {
		cfg.Extract.AllowSyntaxErrors = scanAllowSyntaxErrors
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, cfg, err := loadProjectConfig()
	if err != nil {
		return err
	}
	applyScanFlags(cmd, cfg)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if len(args) == 0 {
		args = []string{"."}
	}
	files, err := discovery.ExpandPaths(args, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return err
	}
	log.Debug().Int("files", len(files)).Strs("args", args).Msg("Discovered files")

	var progress detect.ProgressReporter = detect.NoOpProgressReporter{}
	if !scanQuiet {
		progress = NewCLIProgressReporter()
	}

	detector, err := newDetector(newGateway(cfg), cfg, progress)
	if err != nil {
		return err
	}

	rep, err := detector.HandleReport(ctx, files)
	if err != nil {
		return fmt.Errorf("detection aborted: %w", err)
	}

	out := cmd.OutOrStdout()
	if scanOutput != "" {
		f, err := os.Create(scanOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := writeReport(out, rep, cfg.Output.Format); err != nil {
		return err
	}
	if scanOutput != "" {
		log.Info().Str("path", scanOutput).Msg("Report written")
	}

	if scanFailOnFound && len(rep.Entries) > 0 {
		return fmt.Errorf("%w: %d segments in %d files",
			errHardcodedTextFound, report.CountSegments(rep.Entries), len(rep.Entries))
	}
	return nil
}

// newGateway builds the tree-sitter gateway from config.
func newGateway(cfg *config.Config) *extract.TreeSitterGateway {
	return extract.NewTreeSitterGateway(
		extract.WithAllowSyntaxErrors(cfg.Extract.AllowSyntaxErrors),
	)
}

// newDetector builds a detector with the configured failure policy and concurrency.
func newDetector(gateway detect.Gateway, cfg *config.Config, progress detect.ProgressReporter) (*detect.Detector, error) {
	policy, err := detect.ParseFailurePolicy(cfg.Detect.FailurePolicy)
	if err != nil {
		return nil, err
	}
	return detect.DetectTranslationsNeeds(gateway,
		detect.WithFailurePolicy(policy),
		detect.WithConcurrency(cfg.Detect.Concurrency),
		detect.WithProgress(progress),
	), nil
}

func writeReport(w io.Writer, rep *detect.Report, format string) error {
	env := report.NewEnvelope(rep)
	return report.Write(w, env, report.Format(strings.ToLower(format)))
}
