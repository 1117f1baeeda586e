package raster

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#FF0000", RGB(255, 0, 0)},
		{"00ff00", RGB(0, 255, 0)},
		{" #0000Ff ", RGB(0, 0, 255)},
		{"#11223380", Color{R: 0x11, G: 0x22, B: 0x33, A: 0x80}},
		{"white", RGB(255, 255, 255)},
		{"CornflowerBlue", RGB(100, 149, 237)},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "#12345", "#GGGGGG", "notacolor"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) succeeded", bad)
		}
	}
}

func TestColorHexAndPacked(t *testing.T) {
	c := RGB(0xAB, 0x01, 0xEF)
	if c.Hex() != "#AB01EF" {
		t.Fatalf("Hex = %s", c.Hex())
	}
	if c.Packed() != 0xAB01EF {
		t.Fatalf("Packed = %06x", c.Packed())
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(RGB(0, 0, 0), RGB(3, 4, 0)); d != 5 {
		t.Fatalf("Distance = %v, want 5", d)
	}
	if d := Distance(RGB(1, 2, 3), Color{R: 1, G: 2, B: 3, A: 7}); d != 0 {
		t.Fatalf("alpha should not affect distance, got %v", d)
	}
}
