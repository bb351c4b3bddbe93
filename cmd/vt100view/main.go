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

// Command vt100view runs a command script against a VT100 simulation and
// presents its rasterized output in an SDL2 window, repainting once per
// completed frame. Keyboard focus goes to the script: this program has no
// live keyboard input of its own, matching the headless vt100sim's script
// model plus a picture.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/retrovt/vt100sim/hardware"
	"github.com/retrovt/vt100sim/loaders"
	"github.com/retrovt/vt100sim/script"
	"github.com/retrovt/vt100sim/video"
)

// screenWidth and screenHeight are the presenter's fixed dot grid: 132
// columns at 10 dots/char, wider than either mode's single-width row
// (132x9 or 80x10 dots), by 24 lines at 10 scanlines each. SetDot drops any
// dot that falls outside it.
const (
	screenWidth  = 1320
	screenHeight = 240
)

const windowTitle = "vt100sim"

func main() {
	runtime.LockOSThread()
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "vt100view: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flgs := flag.NewFlagSet("vt100view", flag.ExitOnError)
	rom := flgs.String("rom", "vt100.rom", "path to the firmware ROM image")
	charROMPath := flgs.String("charrom", "vt100-char.rom", "path to the character generator ROM image")
	nvrPath := flgs.String("nvr", "er1400.bin", "path to the ER1400 NVR image (absent means erased)")
	scriptPath := flgs.String("script", "", "path to a command script (required)")
	scale := flgs.Int("scale", 1, "integer window scale factor")
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
	chars, err := loaders.LoadCharROM(*charROMPath)
	if err != nil {
		return err
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("vt100view: sdl init: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(windowTitle,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(screenWidth**scale), int32(screenHeight**scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("vt100view: create window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("vt100view: create renderer: %w", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		sdl.TEXTUREACCESS_STREAMING, screenWidth, screenHeight)
	if err != nil {
		return fmt.Errorf("vt100view: create texture: %w", err)
	}
	defer texture.Destroy()

	surface := newPresenter(renderer, texture)
	m.AttachVideo(chars, surface)
	m.OnFrame = surface.present

	driver := script.NewDriver(m, os.Stdout)

	lines, err := readLines(*scriptPath)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- driver.Run(lines) }()

	for {
		select {
		case err := <-done:
			return err
		default:
		}
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				return nil
			}
		}
		sdl.Delay(16)
	}
}

// presenter implements video.Surface by painting into an RGBA pixel buffer
// and blitting it to a streaming texture once per frame. It is not
// goroutine-safe, and needs not be: SetDot and present both run on the
// driver goroutine, inside the CPU step whose DC012 port write ends the
// frame, and present runs after that frame's SetDot calls - there is never
// a concurrent write to pixels while present reads it.
type presenter struct {
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pixels   []byte
}

func newPresenter(renderer *sdl.Renderer, texture *sdl.Texture) *presenter {
	return &presenter{
		renderer: renderer,
		texture:  texture,
		pixels:   make([]byte, screenWidth*screenHeight*4),
	}
}

func (p *presenter) SetDot(x, y int, intensity video.Intensity) {
	if x < 0 || x >= screenWidth || y < 0 || y >= screenHeight {
		return
	}
	v := intensityByte(intensity)
	i := (y*screenWidth + x) * 4
	p.pixels[i+0] = v
	p.pixels[i+1] = v
	p.pixels[i+2] = v
	p.pixels[i+3] = 255
}

func intensityByte(i video.Intensity) byte {
	switch i {
	case video.Dim:
		return 128
	case video.Normal:
		return 192
	case video.Bright:
		return 255
	default:
		return 0
	}
}

func (p *presenter) present() {
	p.texture.Update(nil, p.pixels, screenWidth*4)
	for i := range p.pixels {
		p.pixels[i] = 0
	}
	p.renderer.Clear()
	p.renderer.Copy(p.texture, nil, nil)
	p.renderer.Present()
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
