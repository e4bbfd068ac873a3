package core

import "testing"

func TestInputFrameActionsAndClicks(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("New frame should be empty")
	}

	f.Set(ActionSelect)
	f.Click(3, 4)
	f.Click(5, 6)

	if !f.Has(ActionSelect) {
		t.Error("Has(ActionSelect) should be true")
	}
	if f.Has(ActionUp) {
		t.Error("Has(ActionUp) should be false")
	}
	if len(f.Clicks) != 2 || f.Clicks[0] != (Point{X: 3, Y: 4}) {
		t.Errorf("Clicks = %v, expected [{3 4} {5 6}]", f.Clicks)
	}

	f.Clear()
	if !f.Empty() {
		t.Errorf("After Clear, frame should be empty, got %+v", f)
	}
}

func TestZeroInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionSelect) {
		t.Error("Zero frame should have no actions")
	}
	f.Set(ActionQuit)
	if !f.Has(ActionQuit) {
		t.Error("Set on zero frame should allocate actions")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name   string
		want   Color
		wantOK bool
	}{
		{"red", ColorRed, true},
		{" Bright_Red ", ColorBrightRed, true},
		{"orange", ColorOrange, true},
		{"teal", ColorDefault, false},
	}

	for _, tc := range tests {
		got, ok := ParseColor(tc.name)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("ParseColor(%q) = (%d, %v), expected (%d, %v)", tc.name, got, ok, tc.want, tc.wantOK)
		}
	}
}
