// Package cmd implements the resonance subcommands.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-resonance/dsp/series"
	"github.com/cwbudde/algo-resonance/measure/integral"
	"github.com/cwbudde/algo-resonance/measure/peaks"
	"github.com/cwbudde/algo-resonance/measure/resonance"
	"github.com/cwbudde/algo-resonance/measure/tof"
)

var (
	configFile string
	verbose    bool

	// Analysis flags shared by analyze and blend.
	sigma      float64
	threshold  float64
	prominence float64
	polarity   string
	mode       string
	method     string
	label      string
	domainName string
)

var rootCmd = &cobra.Command{
	Use:   "resonance",
	Short: "Neutron resonance spectrum analysis",
	Long: `resonance finds resonance peaks (or dips) in cross-section spectra, resolves
their integration limits from the smoothed first derivative, integrates and
ranks them, and exports the peak table.

Settings are read from an optional JSON file (--config) and overridden by
command-line flags.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "JSON configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(blendCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(summarizeCmd)
}

// addAnalysisFlags registers the flags that override resonance.Config.
func addAnalysisFlags(c *cobra.Command) {
	d := resonance.DefaultConfig()

	c.Flags().Float64Var(&sigma, "sigma", d.SmoothingSigma, "Gaussian smoothing width in samples")
	c.Flags().Float64Var(&threshold, "threshold", d.HeightThreshold, "Minimum peak height")
	c.Flags().Float64Var(&prominence, "prominence", 0, "Minimum peak prominence")
	c.Flags().StringVar(&polarity, "polarity", d.Polarity.String(), "Extremum type: maximum or minimum")
	c.Flags().StringVar(&mode, "mode", string(d.Mode), "Detector mode for TOF coordinates: n-gamma or n-tot")
	c.Flags().StringVar(&method, "method", d.Method.String(), "Integration rule: simpson, trapezoid or mean")
	c.Flags().StringVar(&label, "label", "", "Substance label used in reports")
}

// loadConfig reads the JSON file over the defaults, then applies the flags
// that were set explicitly on the command line.
func loadConfig(c *cobra.Command) (resonance.Config, error) {
	cfg := resonance.DefaultConfig()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}

		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", configFile, err)
		}

		log.WithField("file", configFile).Debug("loaded configuration")
	}

	flags := c.Flags()

	if flags.Changed("sigma") {
		cfg.SmoothingSigma = sigma
	}

	if flags.Changed("threshold") {
		cfg.HeightThreshold = threshold
	}

	if flags.Changed("polarity") {
		p, err := peaks.ParsePolarity(polarity)
		if err != nil {
			return cfg, err
		}

		cfg.Polarity = p
	}

	if flags.Changed("prominence") {
		if cfg.Polarity == peaks.Minimum {
			cfg.ProminenceMin = prominence
		} else {
			cfg.ProminenceMax = prominence
		}
	}

	if flags.Changed("mode") {
		cfg.Mode = tof.Mode(mode)
	}

	if flags.Changed("method") {
		m, err := integral.ParseMethod(method)
		if err != nil {
			return cfg, err
		}

		cfg.Method = m
	}

	if flags.Changed("label") {
		cfg.Label = label
	}

	return cfg, cfg.Validate()
}

func parseDomain(name string) (series.Domain, error) {
	switch name {
	case "", "energy", "eV":
		return series.DomainEnergy, nil
	case "tof", "us":
		return series.DomainTOF, nil
	default:
		return 0, fmt.Errorf("unknown domain %q, want energy or tof", name)
	}
}
