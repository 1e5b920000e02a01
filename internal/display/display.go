// Package display enumerates the machine's active displays and owns the
// single platform seam (Backend) behind which OS capture primitives live.
// Everything above this package works with synthetic Info values in tests.
package display

import (
	"image"

	"github.com/screenlens/screenlens/internal/fault"
)

// Info describes one physical display at enumeration time. Indices are
// 1-based and dense, and are stable only for the lifetime of a single
// Enumerate call: plugging or unplugging a monitor may reorder them.
type Info struct {
	Index     int  `json:"index"`
	OriginX   int  `json:"origin_x"`
	OriginY   int  `json:"origin_y"`
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	IsPrimary bool `json:"is_primary"`
}

// Bounds returns the display geometry in absolute desktop coordinates.
func (i Info) Bounds() image.Rectangle {
	return image.Rect(i.OriginX, i.OriginY, i.OriginX+i.Width, i.OriginY+i.Height)
}

// Backend is the platform capability interface: everything OS-specific
// (coordinate conventions, permission probes, pixel grabs) sits behind it.
type Backend interface {
	// Enumerate returns the active displays in stable order. It fails with
	// fault.NoDisplaysDetected when the OS reports none, and with
	// fault.PermissionDenied when screen-recording authorization is missing.
	Enumerate() ([]Info, error)

	// CaptureRegion grabs the pixels of an absolute desktop rectangle.
	CaptureRegion(bounds image.Rectangle) (*image.RGBA, error)
}

// Normalize enforces the enumeration invariants on a raw display list:
// dense 1-based indices in input order, and exactly one primary entry.
// When the platform marks no display primary, the first one is promoted
// by convention; when it marks several, the first marked wins.
func Normalize(raw []Info) ([]Info, error) {
	if len(raw) == 0 {
		return nil, fault.New(fault.NoDisplaysDetected, "the OS reported zero active displays")
	}

	out := make([]Info, len(raw))
	copy(out, raw)

	primary := -1
	for i := range out {
		out[i].Index = i + 1
		if out[i].IsPrimary && primary == -1 {
			primary = i
		}
		out[i].IsPrimary = false
	}
	if primary == -1 {
		primary = 0
	}
	out[primary].IsPrimary = true
	return out, nil
}
