package display

import (
	"image"
	"testing"

	"github.com/screenlens/screenlens/internal/fault"
)

func TestNormalizeEmpty(t *testing.T) {
	_, err := Normalize(nil)
	if err == nil {
		t.Fatal("Normalize(nil) succeeded, want NoDisplaysDetected")
	}
	if !fault.Is(err, fault.NoDisplaysDetected) {
		t.Errorf("Normalize(nil) error = %v, want NoDisplaysDetected", err)
	}
}

func TestNormalizeAssignsDenseIndices(t *testing.T) {
	raw := []Info{
		{Width: 1920, Height: 1080, IsPrimary: true},
		{OriginX: 1920, Width: 1280, Height: 800},
		{OriginX: 3200, Width: 800, Height: 600},
	}
	out, err := Normalize(raw)
	if err != nil {
		t.Fatal(err)
	}
	for i, d := range out {
		if d.Index != i+1 {
			t.Errorf("out[%d].Index = %d, want %d", i, d.Index, i+1)
		}
	}
}

func TestNormalizeExactlyOnePrimary(t *testing.T) {
	tests := []struct {
		name        string
		raw         []Info
		wantPrimary int // index into the slice
	}{
		{"os marks the second", []Info{{}, {IsPrimary: true}, {}}, 1},
		{"os marks none, first by convention", []Info{{}, {}, {}}, 0},
		{"os marks several, first marked wins", []Info{{}, {IsPrimary: true}, {IsPrimary: true}}, 1},
		{"single display", []Info{{}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Normalize(tt.raw)
			if err != nil {
				t.Fatal(err)
			}
			primaries := 0
			for i, d := range out {
				if d.IsPrimary {
					primaries++
					if i != tt.wantPrimary {
						t.Errorf("primary at position %d, want %d", i, tt.wantPrimary)
					}
				}
			}
			if primaries != 1 {
				t.Errorf("got %d primary displays, want exactly 1", primaries)
			}
		})
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	raw := []Info{{Width: 100, Height: 100}}
	if _, err := Normalize(raw); err != nil {
		t.Fatal(err)
	}
	if raw[0].Index != 0 || raw[0].IsPrimary {
		t.Errorf("Normalize mutated its input: %+v", raw[0])
	}
}

func TestInfoBounds(t *testing.T) {
	d := Info{OriginX: -1920, OriginY: 200, Width: 1920, Height: 1080}
	want := image.Rect(-1920, 200, 0, 1280)
	if got := d.Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}
