package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/studyloom-cli/internal/format"
	"github.com/KaramelBytes/studyloom-cli/internal/study"
	"github.com/KaramelBytes/studyloom-cli/internal/utils"
)

var (
	dupStudy studyFlags
	dupJSON  bool
)

type duplicateRow struct {
	MouseID         string  `json:"mouse_id"`
	Timepoint       int     `json:"timepoint"`
	TumorVolume     float64 `json:"tumor_volume_mm3"`
	MetastaticSites int     `json:"metastatic_sites"`
	Regimen         string  `json:"drug_regimen,omitempty"`
	Sex             string  `json:"sex,omitempty"`
	Age             int     `json:"age_months,omitempty"`
	Weight          float64 `json:"weight_g,omitempty"`
}

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates [metadata] [results]",
	Short: "List mice with duplicated timepoints and all of their rows",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := settings()
		if err != nil {
			return err
		}
		ropt, err := dupStudy.readOptions(cmd, conf)
		if err != nil {
			return err
		}
		policy, err := dupStudy.policy(cmd, conf)
		if err != nil {
			return err
		}
		in, err := loadInput(args, conf, ropt)
		if err != nil {
			return err
		}
		joined, err := study.Join(in.Observations, in.Subjects, policy)
		if err != nil {
			return err
		}
		ids := study.DuplicateIDs(joined.Records)
		rows := study.DuplicateRows(joined.Records, ids)
		out := cmd.OutOrStdout()

		if dupJSON {
			recs := make([]duplicateRow, 0, len(rows))
			for _, r := range rows {
				recs = append(recs, duplicateRow{
					MouseID: r.ID, Timepoint: r.Timepoint, TumorVolume: r.TumorVolume, MetastaticSites: r.MetastaticSites,
					Regimen: r.Subject.Regimen, Sex: r.Subject.Sex, Age: r.Subject.Age, Weight: r.Subject.Weight,
				})
			}
			b, err := utils.PrettyJSON(recs)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}

		if len(ids) == 0 {
			fmt.Fprintln(out, "✓ No duplicate (Mouse ID, Timepoint) pairs found")
			return nil
		}
		fmt.Fprintf(out, "Duplicate mice: %v\n", ids)
		t := format.NewTable(format.ASCII)
		t.Header("Mouse ID", "Timepoint", "Tumor Volume (mm3)", "Metastatic Sites", "Drug Regimen", "Sex", "Age_months", "Weight (g)")
		for _, r := range rows {
			t.Row(r.ID, r.Timepoint, r.TumorVolume, r.MetastaticSites, r.Subject.Regimen, r.Subject.Sex, r.Subject.Age, r.Subject.Weight)
		}
		t.AlignRight(2, 3, 4, 7, 8)
		fmt.Fprintln(out, t.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(duplicatesCmd)
	dupStudy.bindInput(duplicatesCmd)
	duplicatesCmd.Flags().BoolVar(&dupJSON, "json", false, "print the rows as JSON")
}
