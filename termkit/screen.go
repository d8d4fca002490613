package termkit

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Screen owns an initialized tcell screen with its surface and input pump.
type Screen struct {
	screen  tcell.Screen
	surface *Surface
	input   *Input
}

// Open initializes the controlling terminal with mouse and paste reporting.
func Open() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("termkit: new screen: %w", err)
	}
	return OpenScreen(s)
}

// OpenScreen initializes s, which may be a simulation screen.
func OpenScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("termkit: init screen: %w", err)
	}
	s.SetStyle(tcell.StyleDefault)
	s.EnableMouse()
	s.EnablePaste()
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s, surface: NewSurface(s), input: NewInput(s)}, nil
}

// Surface returns the drawing surface.
func (s *Screen) Surface() *Surface { return s.surface }

// Input returns the event source.
func (s *Screen) Input() *Input { return s.input }

// TCell returns the underlying screen.
func (s *Screen) TCell() tcell.Screen { return s.screen }

// Close stops the input pump and restores the terminal.
func (s *Screen) Close() {
	s.input.Close()
	s.screen.Fini()
}
