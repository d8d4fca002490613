package marquee

// EventType identifies the kind of an input Event.
type EventType uint8

const (
	EventNone             EventType = iota
	EventKeyDown                    // a key was pressed (Key)
	EventText                       // text was typed or pasted (Text)
	EventPointerMove                // the pointer moved (X, Y)
	EventPointerDown                // a pointer button was pressed (X, Y, Button)
	EventPointerUp                  // a pointer button was released (X, Y, Button)
	EventQuit                       // the window or terminal asked to close
	EventControllerAxis             // a controller axis moved (Axis, Value)
	EventControllerButton           // a controller button changed (Pad, Pressed)
)

var eventTypeNames = [...]string{
	"none", "key", "text", "move", "down", "up", "quit", "axis", "button",
}

// String returns the short event name used in input scripts.
func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Key is a backend-independent key code covering the keys menus react to.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeySpace
	KeyEscape
	KeyBackspace
	KeyTab
)

var keyNames = [...]string{
	"unknown", "up", "down", "left", "right", "enter", "space", "escape", "backspace", "tab",
}

// String returns the key name used in input scripts.
func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}

// ParseKey converts a key name into a Key.
func ParseKey(s string) (Key, bool) {
	for i, n := range keyNames {
		if n == s {
			return Key(i), true
		}
	}
	switch s {
	case "return":
		return KeyEnter, true
	case "esc":
		return KeyEscape, true
	}
	return KeyUnknown, false
}

// PadButton identifies a game-controller button.
type PadButton uint8

const (
	PadNone PadButton = iota
	PadA
	PadB
	PadX
	PadY
	PadStart
	PadSelect
	PadUp
	PadDown
	PadLeft
	PadRight
	PadL1
	PadR1
)

// Event is one discrete input event. Only the fields relevant to Type are set.
type Event struct {
	Type EventType
	Key  Key
	Text string

	X, Y   float64
	Button MouseButton

	Axis    int
	Value   float64
	Pad     PadButton
	Pressed bool
}

// KeyEvent builds a key-down event.
func KeyEvent(k Key) Event { return Event{Type: EventKeyDown, Key: k} }

// TextEvent builds a text event.
func TextEvent(s string) Event { return Event{Type: EventText, Text: s} }

// MoveEvent builds a pointer-move event.
func MoveEvent(x, y float64) Event { return Event{Type: EventPointerMove, X: x, Y: y} }

// PressEvent builds a left-button pointer-down event.
func PressEvent(x, y float64) Event {
	return Event{Type: EventPointerDown, X: x, Y: y, Button: MouseButtonLeft, Pressed: true}
}

// ReleaseEvent builds a left-button pointer-up event.
func ReleaseEvent(x, y float64) Event {
	return Event{Type: EventPointerUp, X: x, Y: y, Button: MouseButtonLeft}
}

// QuitEvent builds a quit event.
func QuitEvent() Event { return Event{Type: EventQuit} }

// AxisEvent builds a controller axis event. Axis 0 is horizontal and 1 vertical.
func AxisEvent(axis int, value float64) Event {
	return Event{Type: EventControllerAxis, Axis: axis, Value: value}
}

// PadEvent builds a controller button event.
func PadEvent(b PadButton, pressed bool) Event {
	return Event{Type: EventControllerButton, Pad: b, Pressed: pressed}
}

// ControllerMap assigns controller buttons and axes to menu actions.
type ControllerMap struct {
	Confirm PadButton
	Cancel  PadButton
	// AxisX and AxisY select the stick axes used for navigation.
	AxisX, AxisY int
	// Threshold is the absolute axis value that counts as a direction.
	Threshold float64
}

// DefaultControllerMap returns A to confirm, B to cancel and the left stick.
func DefaultControllerMap() ControllerMap {
	return ControllerMap{Confirm: PadA, Cancel: PadB, AxisX: 0, AxisY: 1, Threshold: 0.5}
}
