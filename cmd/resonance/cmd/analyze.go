package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-resonance/internal/export"
	"github.com/cwbudde/algo-resonance/internal/spectrumio"
	"github.com/cwbudde/algo-resonance/measure/rank"
	"github.com/cwbudde/algo-resonance/measure/resonance"
	"github.com/cwbudde/algo-resonance/stats/spectrum"
)

var (
	inputFile  string
	limitsFile string
	saveLimits bool
	csvOut     string
	xlsxOut    string
	sqliteOut  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Locate, bound, integrate and rank the resonances of a spectrum",
	Long: `Analyze a two-column spectrum file and print the peak table.

Examples:
  # Peaks above 100 barn with the default settings
  resonance analyze --in u238.dat

  # Dips in a transmission spectrum, cached limits, Excel export
  resonance analyze --in fe56.dat --polarity minimum --prominence 5 \
    --limits fe56.limits --save-limits --xlsx fe56.xlsx`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&inputFile, "in", "i", "", "Input spectrum file (required)")
	analyzeCmd.Flags().StringVar(&domainName, "domain", "energy", "x axis of the input: energy or tof")
	analyzeCmd.Flags().StringVar(&limitsFile, "limits", "", "Peak-limit file used instead of boundary resolution when present")
	analyzeCmd.Flags().BoolVar(&saveLimits, "save-limits", false, "Write the resolved limits to --limits")
	addExportFlags(analyzeCmd)
	addAnalysisFlags(analyzeCmd)

	analyzeCmd.MarkFlagRequired("in")
}

func addExportFlags(c *cobra.Command) {
	c.Flags().StringVar(&csvOut, "csv", "", "Write the peak table as CSV")
	c.Flags().StringVar(&xlsxOut, "xlsx", "", "Write the peak table as an Excel workbook")
	c.Flags().StringVar(&sqliteOut, "sqlite", "", "Append the peak table to a SQLite database")
}

func runAnalyze(c *cobra.Command, args []string) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	domain, err := parseDomain(domainName)
	if err != nil {
		return err
	}

	s, err := spectrumio.ReadSeriesFile(inputFile, domain)
	if err != nil {
		return err
	}

	if cfg.Label == "" {
		cfg.Label = strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	}

	if limitsFile != "" && !saveLimits {
		limits, err := spectrumio.ReadLimitsFile(limitsFile)

		switch {
		case errors.Is(err, os.ErrNotExist):
			log.WithField("file", limitsFile).Debug("no cached limits")
		case err != nil:
			return err
		default:
			cfg.Limits = limits
		}
	}

	st := spectrum.Calculate(s)
	log.WithFields(log.Fields{
		"substance": cfg.Label,
		"samples":   st.Length,
		"xmin":      st.XMin,
		"xmax":      st.XMax,
	}).Debug("loaded spectrum")

	start := time.Now()

	rep, err := resonance.Analyze(s, cfg)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"substance":   cfg.Label,
		"peaks":       len(rep.Peaks),
		"resolved":    rep.Resolved(),
		"cachedLimit": rep.FromLimits,
		"elapsed":     time.Since(start),
	}).Info("analysis complete")

	if saveLimits && limitsFile != "" {
		if err := spectrumio.WriteLimitsFile(limitsFile, rep.Limits); err != nil {
			return err
		}

		log.WithField("file", limitsFile).Info("saved peak limits")
	}

	if err := printTable(os.Stdout, rep.Rows); err != nil {
		return err
	}

	return exportRows(cfg.Label, rep.Rows)
}

func exportRows(substance string, rows []rank.Row) error {
	if csvOut != "" {
		f, err := os.Create(csvOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", csvOut, err)
		}

		if err := export.WriteCSV(f, rows); err != nil {
			f.Close()
			return err
		}

		if err := f.Close(); err != nil {
			return err
		}

		log.WithField("file", csvOut).Info("wrote CSV")
	}

	if xlsxOut != "" {
		if err := export.WriteXLSX(xlsxOut, substance, rows); err != nil {
			return err
		}

		log.WithField("file", xlsxOut).Info("wrote workbook")
	}

	if sqliteOut != "" {
		w, err := export.NewSQLiteWriter(sqliteOut)
		if err != nil {
			return err
		}
		defer w.Close()

		if err := w.WriteTable(substance, rows); err != nil {
			return err
		}

		log.WithField("file", sqliteOut).Info("appended peak table")
	}

	return nil
}

func printTable(out io.Writer, rows []rank.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, "no peaks found")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(export.Columns, "\t"))

	for _, row := range rows {
		switch r := row.(type) {
		case rank.Resolved:
			fmt.Fprintf(tw, "%d\t%.6g\t%d\t%.6g\t%.6g\t%.4g\t%d\t%.6g\t%d\t%s\n",
				r.IntegralRank, r.X, r.EnergyRank, r.TOF, r.Integral,
				r.Width, r.WidthRank, r.Height, r.HeightRank, r.Origin)
		case rank.NoPeakData:
			fmt.Fprintf(tw, "-\t%.6g\t-\t-\t-\t-\t-\t%.6g\t-\t%s\n", r.X, r.Height, r.Label)
		}
	}

	return tw.Flush()
}
