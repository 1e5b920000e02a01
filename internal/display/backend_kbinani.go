package display

import (
	"image"

	kbinani "github.com/kbinani/screenshot"

	"github.com/screenlens/screenlens/internal/fault"
)

// ScreenshotBackend implements Backend on top of kbinani/screenshot, which
// wraps the native capture primitive on Windows, macOS and X11.
type ScreenshotBackend struct{}

// NewBackend returns the platform-native backend.
func NewBackend() *ScreenshotBackend {
	return &ScreenshotBackend{}
}

// Enumerate queries the active displays. kbinani reports display 0 as the
// OS primary, so it is marked before normalization.
func (b *ScreenshotBackend) Enumerate() ([]Info, error) {
	n := kbinani.NumActiveDisplays()
	if n == 0 {
		return nil, fault.New(fault.NoDisplaysDetected, "the OS reported zero active displays")
	}

	if err := b.probePermission(); err != nil {
		return nil, err
	}

	raw := make([]Info, 0, n)
	for i := 0; i < n; i++ {
		bounds := kbinani.GetDisplayBounds(i)
		raw = append(raw, Info{
			OriginX:   bounds.Min.X,
			OriginY:   bounds.Min.Y,
			Width:     bounds.Dx(),
			Height:    bounds.Dy(),
			IsPrimary: i == 0,
		})
	}
	return Normalize(raw)
}

// CaptureRegion grabs an absolute desktop rectangle.
func (b *ScreenshotBackend) CaptureRegion(bounds image.Rectangle) (*image.RGBA, error) {
	img, err := kbinani.CaptureRect(bounds)
	if err != nil {
		return nil, fault.Wrap(fault.DisplayVanished, err,
			"capture of region %v failed", bounds)
	}
	return img, nil
}

// probePermission grabs a single pixel of the first display. On platforms
// that gate capture behind a screen-recording authorization (macOS), the
// probe fails before any real work is attempted, keeping the error precise.
func (b *ScreenshotBackend) probePermission() error {
	bounds := kbinani.GetDisplayBounds(0)
	probe := image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+1, bounds.Min.Y+1)
	if _, err := kbinani.CaptureRect(probe); err != nil {
		return fault.Wrap(fault.PermissionDenied, err,
			"screen capture is not authorized for this process")
	}
	return nil
}
