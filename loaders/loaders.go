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

// Package loaders reads the persisted files a run is configured from: the
// firmware ROM image, the character generator ROM, the ER1400's saved
// contents, symbol/equate tables, and a coverage-priming file. Every
// function here is a thin wrapper around os.ReadFile/os.Open plus a call
// into the relevant hardware/video/symbols/coverage package - none of
// those packages touch the filesystem themselves, so a headless test can
// build a Machine without ever going through this package.
package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/retrovt/vt100sim/coverage"
	"github.com/retrovt/vt100sim/hardware/memory"
	"github.com/retrovt/vt100sim/hardware/nvr"
	"github.com/retrovt/vt100sim/symbols"
	"github.com/retrovt/vt100sim/video"
)

// LoadROM reads a raw firmware image from path and pokes it into mem
// starting at address 0.
func LoadROM(mem *memory.Memory, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loaders: rom: %w", err)
	}
	for i, b := range data {
		if err := mem.Poke(uint16(i), b); err != nil {
			return fmt.Errorf("loaders: rom: %w", err)
		}
	}
	return nil
}

// LoadCharROM reads the character generator ROM image from path.
func LoadCharROM(path string) (*video.CharROM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loaders: char rom: %w", err)
	}
	rom, err := video.NewCharROM(data)
	if err != nil {
		return nil, fmt.Errorf("loaders: char rom: %w", err)
	}
	return rom, nil
}

// LoadNVR restores dev's contents from path. A missing file is not an
// error: it leaves dev erased, matching the original er1400_load's
// behavior the first time a terminal is ever run.
func LoadNVR(dev *nvr.ER1400, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			dev.Erase()
			return nil
		}
		return fmt.Errorf("loaders: nvr: %w", err)
	}
	dev.LoadBytes(data)
	return nil
}

// SaveNVR writes dev's contents to path, overwriting whatever was there.
func SaveNVR(dev *nvr.ER1400, path string) error {
	if err := os.WriteFile(path, dev.Bytes(), 0o644); err != nil {
		return fmt.Errorf("loaders: nvr: %w", err)
	}
	return nil
}

// LoadSymbols reads a ROM symbol file ("<hex> <name>" per line) from path
// into tables.
func LoadSymbols(tables *symbols.Tables, path string) error {
	return readSymbolFile(path, tables.AddSymbol)
}

// LoadEquates reads a RAM equate file ("<hex> <name>" per line, addresses
// >= 0x2000) from path into tables.
func LoadEquates(tables *symbols.Tables, path string) error {
	return readSymbolFile(path, tables.AddEquate)
}

func readSymbolFile(path string, add func(address uint16, name string)) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("loaders: symbols: %w", err)
	}
	defer f.Close()

	if err := symbols.ReadSymbolFile(f, add); err != nil {
		return fmt.Errorf("loaders: symbols: %w", err)
	}
	return nil
}

// LoadCoveragePriming reads a coverage-priming file from path: one
// "{d|u} HHHH HHHH" line per range, tagging every address in
// [start, end] with Data (d) or Unreach (u) in cov. Lines that don't match
// this shape, and an unknown type character, are skipped rather than
// treated as an error - the original coverage_load does the same.
func LoadCoveragePriming(cov *coverage.Vector, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("loaders: coverage priming: %w", err)
	}
	defer f.Close()

	return parseCoveragePriming(cov, f)
}

func parseCoveragePriming(cov *coverage.Vector, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		var kind byte
		var start, end uint16
		n, err := fmt.Sscanf(scanner.Text(), "%c %04x %04x", &kind, &start, &end)
		if err != nil || n != 3 {
			continue
		}

		var flag coverage.Flags
		switch kind {
		case 'd':
			flag = coverage.Data
		case 'u':
			flag = coverage.Unreach
		default:
			continue
		}

		for addr := uint32(start); addr <= uint32(end); addr++ {
			if flag == coverage.Unreach {
				cov.MarkUnreachable(uint16(addr))
			} else {
				cov.Tag(uint16(addr), flag)
			}
		}
	}
	return scanner.Err()
}
