package marquee

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Key    string  `json:"key,omitempty"`
	Text   string  `json:"text,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Axis   int     `json:"axis,omitempty"`
	Value  float64 `json:"value,omitempty"`
	Button string  `json:"button,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// inputScript is the top-level JSON structure for an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptedInput is an InputSource that replays one batch of events per Poll.
// It drives menus and sprite loops headlessly. Build it fluently or load it
// from JSON with LoadInputScript.
type ScriptedInput struct {
	batches [][]Event
	cursor  int
}

// NewScriptedInput creates an empty script.
func NewScriptedInput() *ScriptedInput { return &ScriptedInput{} }

// Poll returns the next batch, or nil once the script is exhausted.
func (in *ScriptedInput) Poll() []Event {
	if in.cursor >= len(in.batches) {
		return nil
	}
	b := in.batches[in.cursor]
	in.cursor++
	return b
}

// Exhausted reports whether every batch has been polled.
func (in *ScriptedInput) Exhausted() bool { return in.cursor >= len(in.batches) }

// Remaining returns the number of batches not yet polled.
func (in *ScriptedInput) Remaining() int { return len(in.batches) - in.cursor }

// Reset rewinds the script to its first batch.
func (in *ScriptedInput) Reset() { in.cursor = 0 }

// Tick appends one batch delivered together in a single poll.
func (in *ScriptedInput) Tick(events ...Event) *ScriptedInput {
	in.batches = append(in.batches, events)
	return in
}

// Wait appends n empty batches.
func (in *ScriptedInput) Wait(n int) *ScriptedInput {
	for range n {
		in.batches = append(in.batches, nil)
	}
	return in
}

// Key appends one batch per key press.
func (in *ScriptedInput) Key(keys ...Key) *ScriptedInput {
	for _, k := range keys {
		in.Tick(KeyEvent(k))
	}
	return in
}

// Type appends a text event.
func (in *ScriptedInput) Type(s string) *ScriptedInput { return in.Tick(TextEvent(s)) }

// Move appends a pointer move.
func (in *ScriptedInput) Move(x, y float64) *ScriptedInput { return in.Tick(MoveEvent(x, y)) }

// Click appends a press on one tick and the release on the next.
func (in *ScriptedInput) Click(x, y float64) *ScriptedInput {
	return in.Tick(MoveEvent(x, y), PressEvent(x, y)).Tick(ReleaseEvent(x, y))
}

// Drag appends a press at (fromX, fromY), frames-1 interpolated moves and a
// release at (toX, toY). frames is at least 2.
func (in *ScriptedInput) Drag(fromX, fromY, toX, toY float64, frames int) *ScriptedInput {
	frames = max(frames, 2)
	in.Tick(MoveEvent(fromX, fromY), PressEvent(fromX, fromY))
	for i := 1; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		in.Tick(MoveEvent(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t))
	}
	return in.Tick(ReleaseEvent(toX, toY))
}

// Pad appends a controller button press.
func (in *ScriptedInput) Pad(b PadButton) *ScriptedInput { return in.Tick(PadEvent(b, true)) }

// Quit appends a quit event.
func (in *ScriptedInput) Quit() *ScriptedInput { return in.Tick(QuitEvent()) }

var padNames = map[string]PadButton{
	"a": PadA, "b": PadB, "x": PadX, "y": PadY, "start": PadStart, "select": PadSelect,
	"up": PadUp, "down": PadDown, "left": PadLeft, "right": PadRight, "l1": PadL1, "r1": PadR1,
}

// LoadInputScript parses a JSON input script. Each step is one of:
//
//	{"action": "key", "key": "enter"}
//	{"action": "type", "text": "abc"}
//	{"action": "move", "x": 10, "y": 20}
//	{"action": "click", "x": 10, "y": 20}
//	{"action": "axis", "axis": 1, "value": -1}
//	{"action": "pad", "button": "a"}
//	{"action": "quit"}
//	{"action": "wait", "frames": 3}
func LoadInputScript(jsonData []byte) (*ScriptedInput, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	in := NewScriptedInput()
	for i, st := range script.Steps {
		switch st.Action {
		case "key":
			k, ok := ParseKey(st.Key)
			if !ok {
				return nil, fmt.Errorf("parse input script: step %d: unknown key %q", i, st.Key)
			}
			in.Key(k)
		case "type":
			in.Type(st.Text)
		case "move":
			in.Move(st.X, st.Y)
		case "click":
			in.Click(st.X, st.Y)
		case "axis":
			in.Tick(AxisEvent(st.Axis, st.Value))
		case "pad":
			b, ok := padNames[st.Button]
			if !ok {
				return nil, fmt.Errorf("parse input script: step %d: unknown button %q", i, st.Button)
			}
			in.Pad(b)
		case "quit":
			in.Quit()
		case "wait":
			in.Wait(max(st.Frames, 1))
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return in, nil
}
