package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/studyloom-cli/internal/format"
	"github.com/KaramelBytes/studyloom-cli/internal/utils"
)

var (
	anaStudy      studyFlags
	anaFigures    figureFlags
	anaOutputPath string
	anaQuiet      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [metadata] [results]",
	Short: "Run the study analysis and print the summary",
	Long: `Join the metadata and results tables, exclude mice with duplicated timepoints and
report per-regimen tumor volume statistics, final-volume outlier bounds and the
weight/volume regression. Paths default to metadata_path and results_path.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, conf, err := runStudy(cmd, args, &anaStudy)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if !anaQuiet {
			fmt.Fprintf(out, "✓ Loaded %s mice and %s observations\n",
				humanize.Comma(int64(rep.SubjectsLoaded)), humanize.Comma(int64(rep.ObservationsLoaded)))
			fmt.Fprintf(out, "Number of mice: %d\n", rep.MiceBefore)
			if len(rep.Duplicates) > 0 {
				fmt.Fprintf(out, "Duplicate mice excluded: %s (%d rows)\n", strings.Join(rep.Duplicates, ", "), rep.RowsDropped)
			}
			fmt.Fprintf(out, "Number of mice after cleaning: %d\n\n", rep.MiceAfter)
			fmt.Fprintln(out, rep.SummaryTable(format.ASCII))
			fmt.Fprintln(out)
		}
		for _, line := range rep.ConsoleLines() {
			fmt.Fprintln(out, line)
		}
		if !anaQuiet {
			for _, w := range rep.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s\n", w)
			}
		}

		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, []byte(rep.Markdown())); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(out, "✓ Wrote report to %s\n", anaOutputPath)
		}
		if anaFigures.dir != "" {
			written, err := anaFigures.write(cmd, rep, conf, anaFigures.dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Wrote %d figures to %s\n", len(written), anaFigures.dir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	anaStudy.bindInput(analyzeCmd)
	anaStudy.bindAnalysis(analyzeCmd)
	anaFigures.bind(analyzeCmd, "also render figures into this directory")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report (Markdown)")
	analyzeCmd.Flags().BoolVarP(&anaQuiet, "quiet", "q", false, "print only the outlier and regression sentences")
}
