// Package region maps a caller-supplied screen selector to capture regions.
// Resolution is a pure function of its inputs, so it is testable with
// synthetic display data and never touches the OS.
package region

import (
	"image"

	"github.com/screenlens/screenlens/internal/display"
	"github.com/screenlens/screenlens/internal/fault"
)

// SelectorAll requests one region per display plus a composed capture.
const SelectorAll = 0

// Region is a rectangular pixel area in absolute desktop coordinates,
// labeled with the index of the display it came from.
type Region struct {
	Index  int
	Bounds image.Rectangle
}

// Resolve maps a selector to regions:
//
//	0  → one region per display, ascending by index
//	k  → exactly one region for display k (1-based)
//
// Any selector outside [0, len(displays)] fails with InvalidScreenIndex;
// negative selectors are never clamped.
func Resolve(selector int, displays []display.Info) ([]Region, error) {
	if selector < 0 || selector > len(displays) {
		return nil, fault.New(fault.InvalidScreenIndex,
			"screen %d not found; valid range is 0-%d (0 = all displays)",
			selector, len(displays))
	}

	if selector == SelectorAll {
		if len(displays) == 0 {
			return nil, fault.New(fault.InvalidScreenIndex,
				"screen 0 not found; no displays are available")
		}
		regions := make([]Region, 0, len(displays))
		for _, d := range sortedByIndex(displays) {
			regions = append(regions, Region{Index: d.Index, Bounds: d.Bounds()})
		}
		return regions, nil
	}

	for _, d := range displays {
		if d.Index == selector {
			return []Region{{Index: d.Index, Bounds: d.Bounds()}}, nil
		}
	}
	return nil, fault.New(fault.InvalidScreenIndex,
		"screen %d not found; valid range is 0-%d (0 = all displays)",
		selector, len(displays))
}

func sortedByIndex(displays []display.Info) []display.Info {
	out := make([]display.Info, len(displays))
	copy(out, displays)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Index > out[j].Index; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
