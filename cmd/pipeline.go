package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/studyloom-cli/internal/analysis"
	cfgpkg "github.com/KaramelBytes/studyloom-cli/internal/config"
	"github.com/KaramelBytes/studyloom-cli/internal/figure"
	"github.com/KaramelBytes/studyloom-cli/internal/study"
)

// studyFlags are the input and analysis flags shared by the study commands.
// Unset flags fall back to the configuration.
type studyFlags struct {
	delimiter string
	sheetName string
	unmatched string

	regimens          []string
	regressionRegimen string
	mouse             string
	iqrFactor         float64
}

func (f *studyFlags) bindInput(c *cobra.Command) {
	c.Flags().StringVar(&f.delimiter, "delimiter", "", "field delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	c.Flags().StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to read (first sheet if omitted)")
	c.Flags().StringVar(&f.unmatched, "unmatched", "", "observations without metadata: keep|drop|fail")
}

func (f *studyFlags) bindAnalysis(c *cobra.Command) {
	c.Flags().StringSliceVar(&f.regimens, "regimens", nil, "regimens checked for final-volume outliers (comma-separated)")
	c.Flags().StringVar(&f.regressionRegimen, "regression-regimen", "", "regimen used for the weight/volume regression")
	c.Flags().StringVar(&f.mouse, "mouse", "", "mouse whose tumor volume is plotted over time")
	c.Flags().Float64Var(&f.iqrFactor, "iqr-factor", 0, "IQR multiplier for outlier fences")
}

func (f *studyFlags) readOptions(c *cobra.Command, conf *cfgpkg.Global) (study.ReadOptions, error) {
	raw, sheet := conf.Delimiter, conf.SheetName
	if c.Flags().Changed("delimiter") {
		raw = f.delimiter
	}
	if c.Flags().Changed("sheet-name") {
		sheet = f.sheetName
	}
	d, err := cfgpkg.ParseDelimiter(raw)
	if err != nil {
		return study.ReadOptions{}, err
	}
	return study.ReadOptions{Delimiter: d, Sheet: sheet}, nil
}

func (f *studyFlags) policy(c *cobra.Command, conf *cfgpkg.Global) (study.UnmatchedPolicy, error) {
	raw := conf.UnmatchedPolicy
	if c.Flags().Changed("unmatched") {
		raw = f.unmatched
	}
	return study.ParseUnmatchedPolicy(raw)
}

func (f *studyFlags) options(c *cobra.Command, conf *cfgpkg.Global) (analysis.Options, error) {
	opt := analysis.DefaultOptions()
	if len(conf.OutlierRegimens) > 0 {
		opt.OutlierRegimens = conf.OutlierRegimens
	}
	if conf.RegressionRegimen != "" {
		opt.RegressionRegimen = conf.RegressionRegimen
	}
	if conf.TimelineMouse != "" {
		opt.TimelineMouse = conf.TimelineMouse
	}
	if conf.IQRFactor > 0 {
		opt.IQRFactor = conf.IQRFactor
	}
	fl := c.Flags()
	if fl.Changed("regimens") {
		if len(f.regimens) == 0 {
			return opt, fmt.Errorf("--regimens needs at least one regimen")
		}
		opt.OutlierRegimens = f.regimens
	}
	if fl.Changed("regression-regimen") {
		opt.RegressionRegimen = f.regressionRegimen
	}
	if fl.Changed("mouse") {
		opt.TimelineMouse = f.mouse
	}
	if fl.Changed("iqr-factor") {
		if f.iqrFactor <= 0 {
			return opt, fmt.Errorf("invalid --iqr-factor: %v (must be positive)", f.iqrFactor)
		}
		opt.IQRFactor = f.iqrFactor
	}
	p, err := f.policy(c, conf)
	if err != nil {
		return opt, err
	}
	opt.Unmatched = p
	return opt, nil
}

// loadInput reads the metadata and results tables named by args, or by the
// configuration when args is empty.
func loadInput(args []string, conf *cfgpkg.Global, ropt study.ReadOptions) (analysis.Input, error) {
	metaPath, resPath := conf.MetadataPath, conf.ResultsPath
	switch len(args) {
	case 0:
	case 2:
		metaPath, resPath = args[0], args[1]
	default:
		return analysis.Input{}, fmt.Errorf("expected <metadata> <results> or no arguments, got %d", len(args))
	}
	subjects, err := study.LoadSubjects(metaPath, ropt)
	if err != nil {
		return analysis.Input{}, fmt.Errorf("load metadata: %w", err)
	}
	obs, err := study.LoadObservations(resPath, ropt)
	if err != nil {
		return analysis.Input{}, fmt.Errorf("load results: %w", err)
	}
	appLog.Info("tables loaded",
		"metadata", metaPath, "subjects", humanize.Comma(int64(len(subjects))),
		"results", resPath, "observations", humanize.Comma(int64(len(obs))))
	return analysis.Input{
		Subjects:     subjects,
		Observations: obs,
		MetadataName: filepath.Base(metaPath),
		ResultsName:  filepath.Base(resPath),
	}, nil
}

// runStudy loads the tables and runs the analysis with flag and config
// settings merged.
func runStudy(c *cobra.Command, args []string, f *studyFlags) (*analysis.Report, *cfgpkg.Global, error) {
	conf, err := settings()
	if err != nil {
		return nil, nil, err
	}
	ropt, err := f.readOptions(c, conf)
	if err != nil {
		return nil, nil, err
	}
	opt, err := f.options(c, conf)
	if err != nil {
		return nil, nil, err
	}
	in, err := loadInput(args, conf, ropt)
	if err != nil {
		return nil, nil, err
	}
	rep, err := analysis.Run(in, opt)
	if err != nil {
		return nil, nil, err
	}
	appLog.Debug("analysis complete", "run", rep.RunID, "mice", rep.MiceAfter, "excluded", len(rep.Duplicates))
	return rep, conf, nil
}

// figureFlags select where and how figures are written.
type figureFlags struct {
	dir      string
	format   string
	progress bool
}

func (f *figureFlags) bind(c *cobra.Command, dirUsage string) {
	c.Flags().StringVar(&f.dir, "figures", "", dirUsage)
	c.Flags().StringVar(&f.format, "format", "", "figure format: png|svg (default from config)")
	c.Flags().BoolVar(&f.progress, "progress", true, "show a progress bar while rendering")
}

func (f *figureFlags) write(c *cobra.Command, rep *analysis.Report, conf *cfgpkg.Global, dir string) ([]figure.Written, error) {
	raw := conf.FigureFormat
	if c.Flags().Changed("format") {
		raw = f.format
	}
	format, err := figure.ParseFormat(raw)
	if err != nil {
		return nil, err
	}
	figs, err := figure.Build(rep, figure.Options{Width: conf.FigureWidth, Height: conf.FigureHeight})
	if err != nil {
		return nil, err
	}
	return figure.WriteAll(c.Context(), dir, figs, figure.WriteOptions{
		Format:   format,
		Progress: f.progress,
		Logger:   appLog,
	})
}
