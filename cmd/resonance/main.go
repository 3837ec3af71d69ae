// Command resonance locates, bounds and integrates neutron resonances in
// cross-section spectra.
//
// Usage:
//
//	resonance analyze --in u238.dat [flags]
//	resonance blend --component U-238=0.992745:u238.dat --component U-235=0.0072:u235.dat --analyze
//	resonance convert --to tof 1 6.67 20.9
//	resonance summarize u238.dat
package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-resonance/cmd/resonance/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
