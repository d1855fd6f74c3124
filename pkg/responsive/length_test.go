package responsive

import "testing"

func TestLength_Pixels(t *testing.T) {
	tests := []struct {
		length   Length
		viewport float64
		want     float64
	}{
		{Px(60), 800, 60},
		{Percent(50), 800, 400},
		{Percent(105), 800, 800},
		{Px(-10), 800, 0},
		{Px(2000), 800, 800},
		{Percent(50), 0, 0},
	}
	for _, tt := range tests {
		if got := tt.length.Pixels(tt.viewport); got != tt.want {
			t.Errorf("%v.Pixels(%v) = %v, want %v", tt.length, tt.viewport, got, tt.want)
		}
	}
}

func TestLength_Fraction(t *testing.T) {
	tests := []struct {
		length   Length
		viewport float64
		want     float64
	}{
		{Px(80), 800, 0.1},
		{Percent(35), 800, 0.35},
		{Percent(120), 800, 1},
		{Px(80), 0, 0},
	}
	for _, tt := range tests {
		if got := tt.length.Fraction(tt.viewport); got != tt.want {
			t.Errorf("%v.Fraction(%v) = %v, want %v", tt.length, tt.viewport, got, tt.want)
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(Percent(50), Percent(90), 0.5); got != Percent(70) {
		t.Errorf("Lerp percent = %v", got)
	}
	if got := Lerp(Px(100), Px(200), 1.1); got != Px(210) {
		t.Errorf("Lerp should not clamp overshoot, got %v", got)
	}
	if got := Lerp(Px(80), Percent(50), 0.3); got != Percent(50) {
		t.Errorf("mixed units should snap to target, got %v", got)
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want Length
	}{
		{"60px", Px(60)},
		{"60", Px(60)},
		{" 50% ", Percent(50)},
		{"92.5%", Percent(92.5)},
	}
	for _, tt := range tests {
		got, err := ParseLength(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLength(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []string{"", "px", "abc%", "NaN"} {
		if _, err := ParseLength(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestLength_String(t *testing.T) {
	if Px(60).String() != "60px" || Percent(92.5).String() != "92.5%" {
		t.Errorf("unexpected strings %q %q", Px(60).String(), Percent(92.5).String())
	}
}
