package region

import (
	"image"
	"strings"
	"testing"

	"github.com/screenlens/screenlens/internal/display"
	"github.com/screenlens/screenlens/internal/fault"
)

func twoDisplays() []display.Info {
	return []display.Info{
		{Index: 1, OriginX: 0, OriginY: 0, Width: 1920, Height: 1080, IsPrimary: true},
		{Index: 2, OriginX: 1920, OriginY: 0, Width: 1280, Height: 800},
	}
}

func TestResolveAll(t *testing.T) {
	regions, err := Resolve(0, twoDisplays())
	if err != nil {
		t.Fatalf("Resolve(0) error: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("Resolve(0) returned %d regions, want 2", len(regions))
	}
	for i, want := range []int{1, 2} {
		if regions[i].Index != want {
			t.Errorf("regions[%d].Index = %d, want %d", i, regions[i].Index, want)
		}
	}
	if got, want := regions[0].Bounds, image.Rect(0, 0, 1920, 1080); got != want {
		t.Errorf("regions[0].Bounds = %v, want %v", got, want)
	}
	if got, want := regions[1].Bounds, image.Rect(1920, 0, 3200, 800); got != want {
		t.Errorf("regions[1].Bounds = %v, want %v", got, want)
	}
}

func TestResolveAllOrdersByIndex(t *testing.T) {
	// Input deliberately out of order; output must be ascending by index.
	displays := []display.Info{
		{Index: 3, OriginX: 5000, Width: 800, Height: 600},
		{Index: 1, OriginX: 0, Width: 1920, Height: 1080, IsPrimary: true},
		{Index: 2, OriginX: 1920, Width: 1280, Height: 800},
	}
	regions, err := Resolve(0, displays)
	if err != nil {
		t.Fatalf("Resolve(0) error: %v", err)
	}
	for i, want := range []int{1, 2, 3} {
		if regions[i].Index != want {
			t.Errorf("regions[%d].Index = %d, want %d", i, regions[i].Index, want)
		}
	}
}

func TestResolveSingle(t *testing.T) {
	displays := twoDisplays()
	for _, d := range displays {
		regions, err := Resolve(d.Index, displays)
		if err != nil {
			t.Fatalf("Resolve(%d) error: %v", d.Index, err)
		}
		if len(regions) != 1 {
			t.Fatalf("Resolve(%d) returned %d regions, want 1", d.Index, len(regions))
		}
		if regions[0].Index != d.Index {
			t.Errorf("Resolve(%d) region index = %d", d.Index, regions[0].Index)
		}
		if regions[0].Bounds != d.Bounds() {
			t.Errorf("Resolve(%d) bounds = %v, want %v", d.Index, regions[0].Bounds, d.Bounds())
		}
	}
}

func TestResolveInvalidSelectors(t *testing.T) {
	tests := []struct {
		name     string
		selector int
		displays []display.Info
	}{
		{"negative", -1, twoDisplays()},
		{"very negative", -100, twoDisplays()},
		{"one past end", 3, twoDisplays()},
		{"far past end", 5, twoDisplays()},
		{"positive with no displays", 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.selector, tt.displays)
			if err == nil {
				t.Fatalf("Resolve(%d) succeeded, want InvalidScreenIndex", tt.selector)
			}
			if !fault.Is(err, fault.InvalidScreenIndex) {
				t.Errorf("Resolve(%d) error = %v, want InvalidScreenIndex", tt.selector, err)
			}
		})
	}
}

func TestResolveErrorNamesValidRange(t *testing.T) {
	_, err := Resolve(5, twoDisplays())
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if want := "0-2"; !strings.Contains(msg, want) {
		t.Errorf("error %q does not name the valid range %q", msg, want)
	}
}

func TestResolveIsPure(t *testing.T) {
	displays := twoDisplays()
	first, err := Resolve(0, displays)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Resolve(0, displays)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("region count changed between calls: %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("region %d differs between calls: %+v vs %+v", i, first[i], second[i])
		}
	}
}
