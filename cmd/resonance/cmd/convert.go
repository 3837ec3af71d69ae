package cmd

import (
	"fmt"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-resonance/dsp/series"
	"github.com/cwbudde/algo-resonance/internal/spectrumio"
	"github.com/cwbudde/algo-resonance/measure/tof"
)

var (
	convertTo     string
	convertMode   string
	convertLength float64
	convertIn     string
	convertOut    string
)

var convertCmd = &cobra.Command{
	Use:   "convert [value ...]",
	Short: "Convert between neutron energy (eV) and time of flight (µs)",
	Long: `Convert single values or a whole spectrum file between energy and time of
flight. The flight length comes from --length or, if unset, from --mode.

Examples:
  resonance convert --to tof 1 6.67 20.9
  resonance convert --to energy --length 22.8 1648.4
  resonance convert --to tof --in u238.dat --out u238_tof.dat`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertTo, "to", "tof", "Target domain: tof or energy")
	convertCmd.Flags().StringVar(&convertMode, "mode", string(tof.ModeNGamma), "Detector mode selecting the flight length")
	convertCmd.Flags().Float64Var(&convertLength, "length", 0, "Flight length in metres (overrides --mode)")
	convertCmd.Flags().StringVar(&convertIn, "in", "", "Convert a spectrum file instead of values")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "Output file for --in (stdout if empty)")
}

func runConvert(c *cobra.Command, args []string) error {
	target, err := parseDomain(convertTo)
	if err != nil {
		return err
	}

	var conv tof.Converter
	if convertLength != 0 {
		conv, err = tof.NewConverter(convertLength)
	} else {
		conv, err = tof.ForMode(nil, tof.Mode(convertMode))
	}

	if err != nil {
		return err
	}

	log.WithField("length", conv.FlightLength()).Debug("flight path")

	if convertIn != "" {
		return convertFile(conv, target)
	}

	if len(args) == 0 {
		return fmt.Errorf("no values to convert")
	}

	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("parse %q: %w", a, err)
		}

		var out float64
		if target == series.DomainTOF {
			out, err = conv.EnergyToTOF(v)
		} else {
			out, err = conv.TOFToEnergy(v)
		}

		if err != nil {
			return err
		}

		fmt.Printf("%g\t%g\n", v, out)
	}

	return nil
}

func convertFile(conv tof.Converter, target series.Domain) error {
	source := series.DomainEnergy
	if target == series.DomainEnergy {
		source = series.DomainTOF
	}

	s, err := spectrumio.ReadSeriesFile(convertIn, source)
	if err != nil {
		return err
	}

	converted, err := conv.ConvertSeries(s)
	if err != nil {
		return err
	}

	if convertOut == "" {
		return spectrumio.WriteSeries(os.Stdout, converted)
	}

	f, err := os.Create(convertOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", convertOut, err)
	}

	if err := spectrumio.WriteSeries(f, converted); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
