package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-resonance/dsp/series"
	"github.com/cwbudde/algo-resonance/internal/spectrumio"
	"github.com/cwbudde/algo-resonance/measure/blend"
	"github.com/cwbudde/algo-resonance/measure/resonance"
	"github.com/cwbudde/algo-resonance/measure/tof"
)

var (
	components []string
	blendOut   string
	blendTOF   bool
	analyzeBlend bool
)

var errComponent = errors.New("component must be ID=FRACTION:PATH")

var blendCmd = &cobra.Command{
	Use:   "blend",
	Short: "Compose an element spectrum from weighted isotope spectra",
	Long: `Compose the spectrum of a natural element from isotope spectra weighted by
their abundance. Each --component is given as ID=FRACTION:PATH.

Examples:
  resonance blend --component U-238=0.992745:u238.dat --component U-235=0.0072:u235.dat --out u.dat
  resonance blend --component Fe-56=0.9175:fe56.dat --component Fe-54=0.0585:fe54.dat --analyze`,
	RunE: runBlend,
}

func init() {
	blendCmd.Flags().StringArrayVarP(&components, "component", "c", nil, "Isotope as ID=FRACTION:PATH (repeatable)")
	blendCmd.Flags().StringVarP(&blendOut, "out", "o", "", "Write the composed spectrum to this file")
	blendCmd.Flags().BoolVar(&blendTOF, "tof", false, "Convert the written spectrum to time of flight")
	blendCmd.Flags().BoolVar(&analyzeBlend, "analyze", false, "Analyse the composed spectrum and print the peak table")
	addExportFlags(blendCmd)
	addAnalysisFlags(blendCmd)

	blendCmd.MarkFlagRequired("component")
}

func parseComponent(arg string) (id string, fraction float64, path string, err error) {
	id, rest, ok := strings.Cut(arg, "=")
	if !ok || id == "" {
		return "", 0, "", fmt.Errorf("%w: %q", errComponent, arg)
	}

	frac, path, ok := strings.Cut(rest, ":")
	if !ok || path == "" {
		return "", 0, "", fmt.Errorf("%w: %q", errComponent, arg)
	}

	fraction, err = strconv.ParseFloat(frac, 64)
	if err != nil {
		return "", 0, "", fmt.Errorf("%w: %q: %w", errComponent, arg, err)
	}

	return id, fraction, path, nil
}

func runBlend(c *cobra.Command, args []string) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	contribs := make([]blend.Contribution, 0, len(components))

	for _, arg := range components {
		id, fraction, path, err := parseComponent(arg)
		if err != nil {
			return err
		}

		s, err := spectrumio.ReadSeriesFile(path, series.DomainEnergy)
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{"isotope": id, "fraction": fraction, "samples": s.Len()}).Debug("loaded component")
		contribs = append(contribs, blend.Contribution{ID: id, Fraction: fraction, Series: s})
	}

	if blendOut != "" {
		var opts []blend.Option

		if blendTOF {
			conv, err := tof.ForMode(cfg.FlightLength, cfg.Mode)
			if err != nil {
				return err
			}

			opts = append(opts, blend.WithTOF(conv))
		}

		composed, err := blend.Compose(contribs, opts...)
		if err != nil {
			return err
		}

		f, err := os.Create(blendOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", blendOut, err)
		}

		if err := spectrumio.WriteSeries(f, composed); err != nil {
			f.Close()
			return err
		}

		if err := f.Close(); err != nil {
			return err
		}

		log.WithFields(log.Fields{"file": blendOut, "samples": composed.Len(), "domain": composed.Domain()}).Info("wrote composed spectrum")
	}

	if !analyzeBlend {
		return nil
	}

	rep, err := resonance.AnalyzeBlend(contribs, cfg)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"substance": cfg.Label,
		"peaks":     len(rep.Peaks),
		"resolved":  rep.Resolved(),
	}).Info("blend analysis complete")

	if err := printTable(os.Stdout, rep.Rows); err != nil {
		return err
	}

	return exportRows(cfg.Label, rep.Rows)
}
