package main

import (
	"fmt"

	"github.com/massung/chip8vm/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

/// Window is the SDL frontend: a window showing the CHIP-8 video
/// memory stretched by an integer scale, and the keyboard as keypad.
///
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer

	/// Render target for the CHIP-8 video memory.
	///
	screen *sdl.Texture

	/// Keypad state, updated by Poll.
	///
	keys chip8.Keypad

	logger *log.Logger
}

/// NewWindow initializes SDL and opens the window.
///
func NewWindow(scale int, logger *log.Logger) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("initializing sdl: %w", err)
	}

	w := int32(chip8.Width * scale)
	h := int32(chip8.Height * scale)

	// create the main window and renderer
	window, renderer, err := sdl.CreateWindowAndRenderer(w, h, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	window.SetTitle("CHIP-8")

	// create a render target for the display
	screen, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.Width, chip8.Height)
	if err != nil {
		_ = renderer.Destroy()
		_ = window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("creating screen texture: %w", err)
	}

	return &Window{
		window:   window,
		renderer: renderer,
		screen:   screen,
		logger:   logger,
	}, nil
}

/// Keys returns the keypad state.
///
func (w *Window) Keys() chip8.Keypad {
	return w.keys
}

/// Present redraws the screen texture and copies it to the window.
///
func (w *Window) Present(frame *chip8.Frame) {
	if err := w.refresh(frame); err != nil {
		w.logger.Error("Refreshing screen failed", log.Err(err))
		return
	}

	// stretch the render target to fit
	if err := w.renderer.Copy(w.screen, nil, nil); err != nil {
		w.logger.Error("Copying screen failed", log.Err(err))
	}

	w.renderer.Present()
}

/// refresh the render target with the CHIP-8 video memory.
///
func (w *Window) refresh(frame *chip8.Frame) error {
	if err := w.renderer.SetRenderTarget(w.screen); err != nil {
		return err
	}

	// the background color for the screen
	_ = w.renderer.SetDrawColor(143, 145, 133, 255)
	_ = w.renderer.Clear()

	// set the pixel color
	_ = w.renderer.SetDrawColor(17, 29, 43, 255)

	// draw all the pixels
	for p, c := range frame {
		if c == chip8.PixelOn {
			_ = w.renderer.DrawPoint(int32(p%chip8.Width), int32(p/chip8.Width))
		}
	}

	// restore the render target
	return w.renderer.SetRenderTarget(nil)
}

/// Close the window and shut down SDL.
///
func (w *Window) Close() {
	_ = w.screen.Destroy()
	_ = w.renderer.Destroy()
	_ = w.window.Destroy()

	sdl.Quit()
}
