// This file is part of vt100sim.
//
// vt100sim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// vt100sim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with vt100sim.  If not, see <https://www.gnu.org/licenses/>.

// Command vt100sim runs a command script against a headless VT100
// simulation: no window, no keyboard - just a ROM, an optional NVR image,
// and a script file driving the machine to completion.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/go-echarts/statsview"

	"github.com/retrovt/vt100sim/hardware"
	"github.com/retrovt/vt100sim/loaders"
	"github.com/retrovt/vt100sim/script"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "vt100sim: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flgs := flag.NewFlagSet("vt100sim", flag.ExitOnError)
	rom := flgs.String("rom", "vt100.rom", "path to the firmware ROM image")
	nvrPath := flgs.String("nvr", "er1400.bin", "path to the ER1400 NVR image (absent means erased)")
	symbolsPath := flgs.String("symbols", "", "path to a ROM symbol file")
	equatesPath := flgs.String("equates", "", "path to a RAM equate file")
	coveragePath := flgs.String("coverage", "", "path to a coverage-priming file")
	scriptPath := flgs.String("script", "", "path to a command script (required)")
	statsAddr := flgs.String("statsview", "", "address to serve a live statsview dashboard on, e.g. :18066 (empty disables it)")
	if err := flgs.Parse(args); err != nil {
		return err
	}

	if *scriptPath == "" {
		return fmt.Errorf("-script is required")
	}

	m := hardware.NewMachine()

	if err := loaders.LoadROM(m.Memory, *rom); err != nil {
		return err
	}
	if err := loaders.LoadNVR(m.Ports.NVR, *nvrPath); err != nil {
		return err
	}

	driver := script.NewDriver(m, os.Stdout)

	if *symbolsPath != "" {
		if err := loaders.LoadSymbols(driver.Symbols, *symbolsPath); err != nil {
			return err
		}
	}
	if *equatesPath != "" {
		if err := loaders.LoadEquates(driver.Symbols, *equatesPath); err != nil {
			return err
		}
	}
	if *coveragePath != "" {
		if err := loaders.LoadCoveragePriming(m.Coverage, *coveragePath); err != nil {
			return err
		}
	}

	if *statsAddr != "" {
		statsview.SetConfiguration(statsview.WithAddr(*statsAddr))
		mgr := statsview.New()
		go mgr.Start()
	}

	lines, err := readLines(*scriptPath)
	if err != nil {
		return err
	}

	if err := driver.Run(lines); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "coverage fill: %.1f%%\n", m.Coverage.Fill()*100)

	return loaders.SaveNVR(m.Ports.NVR, *nvrPath)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
