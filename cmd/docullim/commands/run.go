package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/docullim/internal/app"
	"go.trai.ch/docullim/internal/build"
	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/ui"
	"go.trai.ch/zerr"
)

func (c *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docullim [flags] <file-or-glob>...",
		Short: "Generate docstrings for Python definitions marked with @docullim",
		Long: "docullim scans Python files for definitions decorated with @docullim, asks a language model\n" +
			"for a docstring for each one and previews or writes the result. Generated text is cached\n" +
			"so unchanged definitions are never sent twice.\n\n" +
			"Exit codes:\n" +
			"  0  every definition was documented\n" +
			"  1  some definitions, files or cache reads failed; the rest were processed\n" +
			"  2  fatal error, nothing was processed",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			c.configureLogging(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return domain.ErrNoPatterns
			}

			configPath, _ := cmd.Flags().GetString("config")
			model, _ := cmd.Flags().GetString("model")
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			resetCache, _ := cmd.Flags().GetBool("reset-cache")
			write, _ := cmd.Flags().GetBool("write")
			asJSON, _ := cmd.Flags().GetBool("json")

			mode := domain.ModePreview
			if write {
				mode = domain.ModeWrite
			}

			report, err := c.app.Run(cmd.Context(), app.RunOptions{
				Patterns:   args,
				ConfigPath: configPath,
				Overrides: domain.Overrides{
					Model:          model,
					MaxConcurrency: concurrency,
				},
				ResetCache: resetCache,
				Mode:       mode,
			})
			if err != nil {
				return err
			}

			if asJSON {
				if err := printJSON(cmd, report); err != nil {
					return err
				}
			} else if mode == domain.ModePreview {
				printDiffs(cmd, report)
			}

			if report.HasFailures() {
				return failureSummary(report)
			}
			return nil
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to the config file (default docullim.json)")
	cmd.Flags().StringP("model", "m", "", "Model to use, overriding the config")
	cmd.Flags().IntP("concurrency", "n", 0, "Maximum number of concurrent provider calls, overriding the config")
	cmd.Flags().BoolP("reset-cache", "r", false, "Delete all cached docstrings before running")
	cmd.Flags().BoolP("write", "w", false, "Write docstrings into the files instead of previewing")
	cmd.Flags().Bool("json", false, "Print generated docstrings as JSON instead of diffs")
	cmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")

	return cmd
}

// jsonReport maps file paths to qualified names to generated docstrings.
// A name defined more than once in a file, such as a property getter and its
// setter, is keyed as name:line.
type jsonReport map[string]map[string]string

func buildJSONReport(report *domain.RunReport) jsonReport {
	type fileName struct{ file, name string }
	seen := make(map[fileName]int)
	for _, res := range report.Results {
		if res.OK() {
			seen[fileName{res.Target.FilePath, res.Target.QualifiedName}]++
		}
	}

	out := make(jsonReport)
	for _, res := range report.Results {
		if !res.OK() {
			continue
		}
		file := res.Target.FilePath
		key := res.Target.QualifiedName
		if seen[fileName{file, key}] > 1 {
			key = fmt.Sprintf("%s:%d", key, res.Target.Lines.Start)
		}
		if out[file] == nil {
			out[file] = make(map[string]string)
		}
		out[file][key] = res.Text
	}
	return out
}

func printJSON(cmd *cobra.Command, report *domain.RunReport) error {
	data, err := json.MarshalIndent(buildJSONReport(report), "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to encode report")
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func printDiffs(cmd *cobra.Command, report *domain.RunReport) {
	out := ui.NewOutput(cmd.OutOrStdout())
	for _, change := range report.Changes {
		if change.Diff == "" {
			continue
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), ui.ColorizeDiff(out, change.Diff))
	}
}

func failureSummary(report *domain.RunReport) error {
	var err error = zerr.Wrap(domain.ErrGenerationFailed, "some definitions were not documented")
	err = zerr.With(err, "failed_targets", len(report.FailedTargets()))
	err = zerr.With(err, "parse_failures", report.ParseFailures())
	return zerr.With(err, "write_failures", report.WriteFailures())
}
