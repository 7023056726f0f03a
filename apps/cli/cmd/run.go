package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/V1Zak/postman-helper-sub000/packages/collection"
	"github.com/V1Zak/postman-helper-sub000/packages/config"
	"github.com/V1Zak/postman-helper-sub000/packages/env"
	"github.com/V1Zak/postman-helper-sub000/packages/output"
	"github.com/V1Zak/postman-helper-sub000/packages/runner"
)

const (
	// DefaultTimeoutMs is the default per-request network timeout
	DefaultTimeoutMs = 30000
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var runCmd = &cobra.Command{
	Use:   "run [collection]",
	Short: "Run a collection of API requests",
	Long: `Run every request of a collection in order and report the results.

Examples:
  postman-helper run api-collection.json
  postman-helper run -c api-collection.json -e staging.json
  postman-helper run api-collection.json -r junit -o results.xml
  postman-helper run api-collection.json --bail --timeout 5000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCommand,
}

var (
	collectionFlag  string
	environmentFlag string
	reporterFlag    string
	outputFlag      string
	bailFlag        bool
	timeoutFlag     int
	delayFlag       int
	rateFlag        float64
	verboseFlag     bool
	noColorFlag     bool
	watchFlag       bool
	configFlag      string
)

func init() {
	runCmd.Flags().StringVarP(&collectionFlag, "collection", "c", "", "Path to the collection file")
	runCmd.Flags().StringVarP(&environmentFlag, "environment", "e", "", "Path to the environment file")
	runCmd.Flags().StringVarP(&reporterFlag, "reporter", "r", "console", "Report format: console, junit, xml, json")
	runCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the report to a file instead of stdout")
	runCmd.Flags().BoolVar(&bailFlag, "bail", false, "Stop on the first failed or errored request")
	runCmd.Flags().IntVar(&timeoutFlag, "timeout", DefaultTimeoutMs, "Request timeout in milliseconds")
	runCmd.Flags().IntVar(&delayFlag, "delay", 0, "Delay between requests in milliseconds")
	runCmd.Flags().Float64Var(&rateFlag, "rate", 0, "Cap request starts per second (0 disables)")
	runCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose console output")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch the collection and re-run on change")
	runCmd.Flags().StringVar(&configFlag, "config", "", "Path to a YAML config file")
}

// applyConfig fills flag values that were not set on the command line from
// the config file.
func applyConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("reporter") && cfg.Reporter != "" {
		reporterFlag = cfg.Reporter
	}
	if !cmd.Flags().Changed("output") && cfg.Output != "" {
		outputFlag = cfg.Output
	}
	if !cmd.Flags().Changed("timeout") && cfg.Timeout > 0 {
		timeoutFlag = cfg.Timeout
	}
	if !cmd.Flags().Changed("delay") && cfg.Delay > 0 {
		delayFlag = cfg.Delay
	}
	if !cmd.Flags().Changed("rate") && cfg.Rate > 0 {
		rateFlag = cfg.Rate
	}
	if !cmd.Flags().Changed("bail") {
		bailFlag = cfg.GetBail()
	}
	if !cmd.Flags().Changed("verbose") {
		verboseFlag = cfg.GetVerbose()
	}
	if !cmd.Flags().Changed("no-color") {
		noColorFlag = cfg.GetNoColor()
	}
}

func runCommand(cmd *cobra.Command, args []string) error {
	collectionPath := collectionFlag
	if collectionPath == "" && len(args) > 0 {
		collectionPath = args[0]
	}
	if collectionPath == "" {
		return fmt.Errorf("a collection file is required (positional argument or --collection)")
	}

	cfg, err := config.Load(configFlag)
	if err != nil {
		return err
	}
	applyConfig(cmd, cfg)

	runOnce := func() (*runner.Summary, error) {
		col, err := collection.Load(collectionPath)
		if err != nil {
			return nil, err
		}

		vars := map[string]string{}
		if environmentFlag != "" {
			vars, err = env.Load(environmentFlag)
			if err != nil {
				return nil, err
			}
		}

		r := runner.New(runner.Options{
			Timeout: time.Duration(timeoutFlag) * time.Millisecond,
			Delay:   time.Duration(delayFlag) * time.Millisecond,
			Bail:    bailFlag,
			Rate:    rateFlag,
		})
		summary := r.Run(cmd.Context(), col, vars)

		reporter := output.Get(reporterFlag,
			output.WithVerbose(verboseFlag),
			output.WithNoColor(noColorFlag || outputFlag != ""),
		)
		report := reporter.Format(summary)

		if outputFlag != "" {
			if err := os.WriteFile(outputFlag, []byte(report), 0o644); err != nil {
				return nil, fmt.Errorf("writing report: %w", err)
			}
		} else {
			fmt.Fprint(cmd.OutOrStdout(), report)
		}

		return summary, nil
	}

	summary, err := runOnce()
	if err != nil {
		return err
	}

	if !watchFlag {
		if summary.Failures+summary.Errors > 0 {
			os.Exit(1)
		}
		return nil
	}

	return watchAndRerun(cmd, collectionPath, runOnce)
}

// watchAndRerun re-runs the collection whenever it or the environment file
// changes, until the command context is cancelled.
func watchAndRerun(cmd *cobra.Command, collectionPath string, runOnce func() (*runner.Summary, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	watched := map[string]bool{filepath.Clean(collectionPath): true}
	if environmentFlag != "" {
		watched[filepath.Clean(environmentFlag)] = true
	}
	dirs := map[string]bool{}
	for path := range watched {
		dir := filepath.Dir(path)
		if !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watching %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) || !watched[filepath.Clean(event.Name)] {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "\nFile changed: %s\nRe-running...\n\n", event.Name)
				if _, err := runOnce(); err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watcher error: %v\n", err)

		case <-ctx.Done():
			return nil
		}
	}
}
