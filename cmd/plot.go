package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	plotStudy   studyFlags
	plotFigures figureFlags
)

var plotCmd = &cobra.Command{
	Use:   "plot [metadata] [results]",
	Short: "Render the study figures",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, conf, err := runStudy(cmd, args, &plotStudy)
		if err != nil {
			return err
		}
		dir := conf.FiguresDir
		if cmd.Flags().Changed("figures") {
			dir = plotFigures.dir
		}
		if dir == "" {
			return fmt.Errorf("no figures directory (use --figures or set figures_dir)")
		}
		written, err := plotFigures.write(cmd, rep, conf, dir)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, w := range written {
			fmt.Fprintf(out, "✓ %s (%s)\n", w.Path, humanize.Bytes(uint64(w.Bytes)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotStudy.bindInput(plotCmd)
	plotStudy.bindAnalysis(plotCmd)
	plotFigures.bind(plotCmd, "directory for figures (default from config)")
}
