package marquee

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyAnimation is wrapped by the ConfigurationError returned when a
	// frame list has no keyframes.
	ErrEmptyAnimation = errors.New("marquee: animation has no frames")
	// ErrUnknownAnimation is wrapped when an animation library has no
	// animation of the requested name.
	ErrUnknownAnimation = errors.New("marquee: unknown animation")
	// ErrNoFont is returned when a menu is built without any usable font.
	ErrNoFont = errors.New("marquee: no font configured")
	// ErrUnsupportedSource is wrapped when an image set source has no known kind.
	ErrUnsupportedSource = errors.New("marquee: unsupported image source")
	// ErrCancelled is returned by modal entry points when the input source is
	// exhausted before the menu produces a result.
	ErrCancelled = errors.New("marquee: cancelled")
)

// ConfigurationError reports malformed construction input. It is returned by
// the call that received the bad input and never surfaces from a tick.
type ConfigurationError struct {
	Op     string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		if e.Reason == "" {
			return fmt.Sprintf("marquee: %s: %v", e.Op, e.Err)
		}
		return fmt.Sprintf("marquee: %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("marquee: %s: %s", e.Op, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func configError(op, reason string, err error) error {
	return &ConfigurationError{Op: op, Reason: reason, Err: err}
}

// RenderTargetError wraps a Surface failure during a draw. Draw loops log it
// and skip the affected frame.
type RenderTargetError struct {
	Op  string
	Err error
}

func (e *RenderTargetError) Error() string {
	return fmt.Sprintf("marquee: render %s: %v", e.Op, e.Err)
}

func (e *RenderTargetError) Unwrap() error { return e.Err }

// BackgroundCallbackError wraps an error or recovered panic from a
// user-supplied menu background drawer.
type BackgroundCallbackError struct {
	Err error
}

func (e *BackgroundCallbackError) Error() string {
	return fmt.Sprintf("marquee: background callback: %v", e.Err)
}

func (e *BackgroundCallbackError) Unwrap() error { return e.Err }

// recoverAsError converts a recovered panic value into an error.
func recoverAsError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
