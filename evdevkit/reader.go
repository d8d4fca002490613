//go:build linux

package evdevkit

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/phanxgames/marquee"

	"github.com/holoplot/go-evdev"
	"go.uber.org/atomic"
)

// ErrNoDevices is returned by Open when no controller was found.
var ErrNoDevices = errors.New("evdevkit: no input devices")

// eventBuffer is the number of translated events held between polls.
const eventBuffer = 256

// device is the part of *evdev.InputDevice a Reader uses.
type device interface {
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// Reader is a marquee.InputSource fed by one goroutine per device.
type Reader struct {
	events  chan marquee.Event
	running *atomic.Bool
	dropped *atomic.Int64
	wg      sync.WaitGroup
	devices []device
	out     []marquee.Event
	// Logger receives device read errors.
	Logger *slog.Logger
}

// Open starts reading the devices at paths, or every device with gamepad
// buttons when no path is given.
func Open(paths ...string) (*Reader, error) {
	if len(paths) == 0 {
		found, err := Gamepads()
		if err != nil {
			return nil, err
		}
		paths = found
	}
	if len(paths) == 0 {
		return nil, ErrNoDevices
	}
	r := newReader()
	for _, p := range paths {
		d, err := evdev.Open(p)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("evdevkit: open %s: %w", p, err)
		}
		abs, err := d.AbsInfos()
		if err != nil {
			abs = nil
		}
		r.start(p, d, newMapper(abs))
	}
	return r, nil
}

// Gamepads lists the device paths that report a south face button.
func Gamepads() ([]string, error) {
	inputs, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("evdevkit: list devices: %w", err)
	}
	var paths []string
	for _, in := range inputs {
		d, err := evdev.Open(in.Path)
		if err != nil {
			continue
		}
		if slices.Contains(d.CapableEvents(evdev.EV_KEY), evdev.BTN_SOUTH) {
			paths = append(paths, in.Path)
		}
		d.Close()
	}
	return paths, nil
}

func newReader() *Reader {
	return &Reader{
		events:  make(chan marquee.Event, eventBuffer),
		running: atomic.NewBool(true),
		dropped: atomic.NewInt64(0),
		Logger:  marquee.Logger(),
	}
}

func (r *Reader) start(name string, d device, m *mapper) {
	r.devices = append(r.devices, d)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.read(name, d, m)
	}()
}

func (r *Reader) read(name string, d device, m *mapper) {
	var batch []marquee.Event
	for r.running.Load() {
		ev, err := d.ReadOne()
		if err != nil {
			if r.running.Load() {
				r.Logger.Warn("evdevkit: read failed", "device", name, "err", err)
			}
			return
		}
		batch = m.translate(*ev, batch[:0])
		for _, e := range batch {
			select {
			case r.events <- e:
			default:
				r.dropped.Inc()
			}
		}
	}
}

// Poll returns the events read since the previous call.
func (r *Reader) Poll() []marquee.Event {
	r.out = r.out[:0]
	for {
		select {
		case e := <-r.events:
			r.out = append(r.out, e)
		default:
			return r.out
		}
	}
}

// Dropped returns the number of events lost because Poll fell behind.
func (r *Reader) Dropped() int64 { return r.dropped.Load() }

// Close stops the readers and closes every device.
func (r *Reader) Close() error {
	if !r.running.CompareAndSwap(true, false) {
		return nil
	}
	var errs []error
	for _, d := range r.devices {
		errs = append(errs, d.Close())
	}
	r.wg.Wait()
	return errors.Join(errs...)
}
