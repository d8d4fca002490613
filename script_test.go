package marquee

import "testing"

func TestLoadInputScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "key", "key": "down"},
			{"action": "type", "text": "hi"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "axis", "axis": 1, "value": -1},
			{"action": "pad", "button": "a"},
			{"action": "quit"}
		]
	}`)

	in, err := LoadInputScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// click takes two ticks and wait three.
	if in.Remaining() != 10 {
		t.Fatalf("Remaining = %d, want 10", in.Remaining())
	}

	first := in.Poll()
	if len(first) != 1 || first[0].Type != EventKeyDown || first[0].Key != KeyDown {
		t.Errorf("step 0 = %+v", first)
	}
	if ev := in.Poll(); ev[0].Type != EventText || ev[0].Text != "hi" {
		t.Errorf("step 1 = %+v", ev)
	}
	click := in.Poll()
	if len(click) != 2 || click[1].Type != EventPointerDown || click[1].X != 100 || click[1].Y != 200 {
		t.Errorf("click press = %+v", click)
	}
	if ev := in.Poll(); ev[0].Type != EventPointerUp {
		t.Errorf("click release = %+v", ev)
	}
	for i := range 3 {
		if ev := in.Poll(); len(ev) != 0 {
			t.Errorf("wait tick %d = %+v, want empty", i, ev)
		}
	}
	if ev := in.Poll(); ev[0].Type != EventControllerAxis || ev[0].Axis != 1 || ev[0].Value != -1 {
		t.Errorf("axis = %+v", ev)
	}
	if ev := in.Poll(); ev[0].Pad != PadA || !ev[0].Pressed {
		t.Errorf("pad = %+v", ev)
	}
	if ev := in.Poll(); ev[0].Type != EventQuit {
		t.Errorf("quit = %+v", ev)
	}
	if !in.Exhausted() {
		t.Error("Exhausted = false after the last step")
	}
	if ev := in.Poll(); ev != nil {
		t.Errorf("Poll after exhaustion = %+v, want nil", ev)
	}

	in.Reset()
	if in.Exhausted() || in.Remaining() != 10 {
		t.Error("Reset did not rewind the script")
	}
}

func TestLoadInputScript_Invalid(t *testing.T) {
	bad := []string{
		`not json`,
		`{"steps": []}`,
		`{"steps": [{"action": "key", "key": "f13"}]}`,
		`{"steps": [{"action": "pad", "button": "z"}]}`,
		`{"steps": [{"action": "screenshot"}]}`,
	}
	for _, data := range bad {
		if _, err := LoadInputScript([]byte(data)); err == nil {
			t.Errorf("LoadInputScript(%s) error = nil, want error", data)
		}
	}
}

func TestScriptedInputDrag(t *testing.T) {
	in := NewScriptedInput().Drag(0, 10, 30, 10, 4)
	// press, three moves, release
	if in.Remaining() != 5 {
		t.Fatalf("Remaining = %d, want 5", in.Remaining())
	}
	in.Poll()
	var xs []float64
	for range 3 {
		xs = append(xs, in.Poll()[0].X)
	}
	if !approxEqual(xs[0], 10, epsilon) || !approxEqual(xs[1], 20, epsilon) || xs[2] != 30 {
		t.Errorf("drag moves = %v, want [10 20 30]", xs)
	}
	if ev := in.Poll(); ev[0].Type != EventPointerUp || ev[0].X != 30 {
		t.Errorf("release = %+v", ev)
	}
}

func TestScriptedInputDrivesMenu(t *testing.T) {
	in := NewScriptedInput().Type("42").Key(KeyEnter)
	f := newTestMenu(t, MenuConfig{Input: in})
	res, err := f.menu.Input("Count", InputOptions{Type: InputInt})
	if err != nil {
		t.Fatal(err)
	}
	if res.Int != 42 || res.Cancelled {
		t.Errorf("result = %+v, want 42", res)
	}
}
