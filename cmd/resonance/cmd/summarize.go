package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-resonance/internal/spectrumio"
	"github.com/cwbudde/algo-resonance/stats/spectrum"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file ...]",
	Short: "Print summary statistics of spectrum files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		domain, err := parseDomain(domainName)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FILE\tSAMPLES\tXMIN\tXMAX\tMAX\tMAX AT\tMIN\tMEAN\tAREA")

		for _, path := range args {
			s, err := spectrumio.ReadSeriesFile(path, domain)
			if err != nil {
				return err
			}

			st := spectrum.Calculate(s)
			fmt.Fprintf(tw, "%s\t%d\t%g\t%g\t%.6g\t%g\t%.6g\t%.6g\t%.6g\n",
				path, st.Length, st.XMin, st.XMax, st.Max, st.MaxX, st.Min, st.Mean, st.Area)
		}

		return tw.Flush()
	},
}

func init() {
	summarizeCmd.Flags().StringVar(&domainName, "domain", "energy", "x axis of the input: energy or tof")
}
