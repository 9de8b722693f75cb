package study

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ReadOptions controls how a table file is read.
type ReadOptions struct {
	// Delimiter for delimited text. If 0, sniffed from the file extension.
	Delimiter rune
	// Sheet selects an XLSX sheet by name; empty means the first sheet.
	Sheet string
}

// ReadTable reads a delimited text file or an XLSX workbook into a dataframe
// whose columns are all strings. Typed decoding is left to the callers.
func ReadTable(path string, opt ReadOptions) (dataframe.DataFrame, error) {
	var df dataframe.DataFrame
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		records, err := readXLSX(path, opt.Sheet)
		if err != nil {
			return df, err
		}
		df = dataframe.LoadRecords(records,
			dataframe.HasHeader(true),
			dataframe.DetectTypes(false),
			dataframe.DefaultType(series.String),
		)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return df, fmt.Errorf("open table: %w", err)
		}
		defer f.Close()
		delim := opt.Delimiter
		if delim == 0 {
			delim = sniffDelimiter(path)
		}
		df = dataframe.ReadCSV(f,
			dataframe.WithDelimiter(delim),
			dataframe.HasHeader(true),
			dataframe.DetectTypes(false),
			dataframe.DefaultType(series.String),
		)
	}
	if df.Err != nil {
		return df, fmt.Errorf("read %s: %w", filepath.Base(path), df.Err)
	}
	if df.Nrow() == 0 {
		return df, fmt.Errorf("read %s: %w", filepath.Base(path), ErrEmptyTable)
	}
	return df, nil
}

// LoadSubjects reads the metadata table.
func LoadSubjects(path string, opt ReadOptions) ([]Subject, error) {
	df, err := ReadTable(path, opt)
	if err != nil {
		return nil, err
	}
	cols, err := resolveColumns(df, path, subjectColumns)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	out := make([]Subject, df.Nrow())
	for i := range out {
		s := Subject{
			ID:      cell(cols["id"], i),
			Regimen: cell(cols["regimen"], i),
			Sex:     cell(cols["sex"], i),
		}
		if s.ID == "" {
			return nil, rowErr(name, i, "id", "", errMissingValue)
		}
		if s.Age, err = parseInt(cell(cols["age"], i)); err != nil {
			return nil, rowErr(name, i, "age", cell(cols["age"], i), err)
		}
		if s.Weight, err = parseFloat(cell(cols["weight"], i)); err != nil {
			return nil, rowErr(name, i, "weight", cell(cols["weight"], i), err)
		}
		out[i] = s
	}
	return out, nil
}

// LoadObservations reads the measurement table.
func LoadObservations(path string, opt ReadOptions) ([]Observation, error) {
	df, err := ReadTable(path, opt)
	if err != nil {
		return nil, err
	}
	cols, err := resolveColumns(df, path, observationColumns)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	out := make([]Observation, df.Nrow())
	for i := range out {
		o := Observation{ID: cell(cols["id"], i)}
		if o.ID == "" {
			return nil, rowErr(name, i, "id", "", errMissingValue)
		}
		if o.Timepoint, err = parseInt(cell(cols["timepoint"], i)); err != nil {
			return nil, rowErr(name, i, "timepoint", cell(cols["timepoint"], i), err)
		}
		if o.TumorVolume, err = parseFloat(cell(cols["volume"], i)); err != nil {
			return nil, rowErr(name, i, "tumor volume", cell(cols["volume"], i), err)
		}
		if o.MetastaticSites, err = parseInt(cell(cols["sites"], i)); err != nil {
			return nil, rowErr(name, i, "metastatic sites", cell(cols["sites"], i), err)
		}
		out[i] = o
	}
	return out, nil
}

// CountSubjects returns the number of distinct identities among subjects.
func CountSubjects(subjects []Subject) int {
	seen := make(map[string]struct{}, len(subjects))
	for _, s := range subjects {
		seen[s.ID] = struct{}{}
	}
	return len(seen)
}

// column aliases keyed by field, in normalized header form
var (
	subjectColumns = map[string][]string{
		"id":      {"mouseid", "id", "subjectid"},
		"regimen": {"drugregimen", "regimen", "treatment"},
		"sex":     {"sex"},
		"age":     {"agemonths", "age"},
		"weight":  {"weight", "weightg"},
	}
	observationColumns = map[string][]string{
		"id":        {"mouseid", "id", "subjectid"},
		"timepoint": {"timepoint", "day", "days"},
		"volume":    {"tumorvolume", "tumorvolumemm3"},
		"sites":     {"metastaticsites"},
	}
)

var (
	errMissingValue = errors.New("missing value")
	errNotInteger   = errors.New("not an integer")
	errNotNumber    = errors.New("not a number")
)

func resolveColumns(df dataframe.DataFrame, path string, want map[string][]string) (map[string][]string, error) {
	byNorm := make(map[string]string)
	for _, h := range df.Names() {
		clean, _ := splitUnits(h)
		byNorm[normalizeHeader(clean)] = h
		byNorm[normalizeHeader(h)] = h
	}
	out := make(map[string][]string, len(want))
	for field, aliases := range want {
		header := ""
		for _, a := range aliases {
			if h, ok := byNorm[a]; ok {
				header = h
				break
			}
		}
		if header == "" {
			return nil, fmt.Errorf("%s: %w: %s (accepted: %s)", filepath.Base(path), ErrMissingColumn, field, strings.Join(aliases, ", "))
		}
		out[field] = df.Col(header).Records()
	}
	return out, nil
}

func cell(col []string, i int) string {
	if i >= len(col) {
		return ""
	}
	v := strings.TrimSpace(col[i])
	if v == "NaN" {
		return ""
	}
	return v
}

func rowErr(file string, i int, field, raw string, err error) error {
	return fmt.Errorf("%s row %d: %s %q: %w", file, i+1, field, raw, err)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, errMissingValue
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	// spreadsheets store integers as floats
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, errNotInteger
	}
	return int(f), nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, errMissingValue
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errNotNumber
	}
	return f, nil
}

func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch r {
		case ' ', '_', '-', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sniffDelimiter(path string) rune {
	name := strings.ToLower(path)
	if strings.HasSuffix(name, ".tsv") {
		return '\t'
	}
	return ','
}

var unitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(.*)\s*\(([^)]+)\)\s*$`),  // Tumor Volume (mm3)
	regexp.MustCompile(`^(.*)\s*\[([^\]]+)\]\s*$`), // Weight [g]
}

func splitUnits(name string) (clean string, unit string) {
	s := strings.TrimSpace(name)
	for _, re := range unitPatterns {
		if m := re.FindStringSubmatch(s); len(m) >= 3 {
			base := strings.TrimSpace(m[1])
			u := strings.TrimSpace(m[2])
			if base != "" && u != "" {
				return base, u
			}
		}
	}
	return s, ""
}
