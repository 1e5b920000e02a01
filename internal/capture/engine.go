// Package capture turns resolved regions into in-memory images. The engine
// owns the process-wide one-capture-at-a-time guard: the underlying OS
// primitive is not safe for concurrent invocation within one process.
package capture

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/screenlens/screenlens/internal/display"
	"github.com/screenlens/screenlens/internal/fault"
	"github.com/screenlens/screenlens/internal/region"
)

// Acquisition selects how a caller behaves when a capture is already in
// flight. The MCP surface blocks (callers expect a response, not an error,
// for a transient overlap); the polling CLI fails fast to avoid queue
// buildup.
type Acquisition int

const (
	AcquisitionBlock Acquisition = iota
	AcquisitionFailFast
)

// ComposedIndex is the synthetic index assigned to the tiled all-displays
// image appended in composed mode.
const ComposedIndex = 0

// DefaultFastMaxDimension bounds the longest image edge in fast mode.
const DefaultFastMaxDimension = 1280

// Options controls a single capture call.
type Options struct {
	// Compose appends a single left-to-right tiling of all captured regions
	// as an extra result with index 0. Only meaningful for multi-region
	// (selector 0) captures.
	Compose bool

	// Fast trades fidelity for latency: results are downsampled so their
	// longest edge is at most MaxDimension and encoded at a faster
	// compression level. Never applied implicitly.
	Fast bool

	// MaxDimension bounds the longest edge in fast mode. Zero means
	// DefaultFastMaxDimension.
	MaxDimension int
}

// Result is one captured raster paired with its source region's index and
// the capture timestamp. Index 0 marks the composed all-displays image.
type Result struct {
	Index      int
	Image      *image.RGBA
	CapturedAt time.Time
}

// Engine captures regions through a display backend, serializing all
// capture work behind an exclusive guard.
type Engine struct {
	backend display.Backend
	inUse   chan struct{}
	now     func() time.Time
}

// NewEngine creates an engine on top of the given backend.
func NewEngine(backend display.Backend) *Engine {
	return &Engine{
		backend: backend,
		inUse:   make(chan struct{}, 1),
		now:     time.Now,
	}
}

// Acquire takes the exclusive capture guard. It must bracket the whole
// resolve→capture span of an invocation; see Dispatcher. Release with the
// returned function.
func (e *Engine) Acquire(ctx context.Context, mode Acquisition) (release func(), err error) {
	switch mode {
	case AcquisitionFailFast:
		select {
		case e.inUse <- struct{}{}:
		default:
			return nil, fault.New(fault.CaptureInProgress,
				"another capture is in progress")
		}
	default:
		select {
		case e.inUse <- struct{}{}:
		case <-ctx.Done():
			return nil, fault.Wrap(fault.CaptureInProgress, ctx.Err(),
				"gave up waiting for the in-flight capture")
		}
	}
	return func() { <-e.inUse }, nil
}

// Capture grabs one image per region, preserving input order. A failure on
// any region fails the whole call: callers never receive a shorter sequence
// than they asked for without an explicit error. The guard must already be
// held by the caller (via Acquire).
func (e *Engine) Capture(ctx context.Context, regions []region.Region, opts Options) ([]Result, error) {
	results := make([]Result, 0, len(regions)+1)
	for _, r := range regions {
		if err := ctx.Err(); err != nil {
			return nil, fault.Wrap(fault.PartialCaptureFailure, err,
				"capture canceled before screen %d", r.Index)
		}
		img, err := e.backend.CaptureRegion(r.Bounds)
		if err != nil {
			if fault.Is(err, fault.PermissionDenied) {
				return nil, err
			}
			return nil, fault.Wrap(fault.PartialCaptureFailure, err,
				"screen %d failed mid-capture", r.Index)
		}
		if opts.Fast {
			img = downsample(img, fastMaxDimension(opts))
		}
		results = append(results, Result{Index: r.Index, Image: img, CapturedAt: e.now()})
	}

	if opts.Compose && len(results) > 1 {
		composed := composeTiled(results)
		if opts.Fast {
			// The tiled width is the sum of the component widths, so the
			// composed image needs its own bounding pass.
			composed = downsample(composed, fastMaxDimension(opts))
		}
		results = append(results, Result{
			Index:      ComposedIndex,
			Image:      composed,
			CapturedAt: e.now(),
		})
	}
	return results, nil
}

func fastMaxDimension(opts Options) int {
	if opts.MaxDimension > 0 {
		return opts.MaxDimension
	}
	return DefaultFastMaxDimension
}

// composeTiled lays captures side by side left-to-right in input order.
// Width is the sum of component widths, height the max component height;
// shorter tiles are padded with an opaque black background.
func composeTiled(results []Result) *image.RGBA {
	width, height := 0, 0
	for _, r := range results {
		b := r.Image.Bounds()
		width += b.Dx()
		if b.Dy() > height {
			height = b.Dy()
		}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	x := 0
	for _, r := range results {
		b := r.Image.Bounds()
		dst := image.Rect(x, 0, x+b.Dx(), b.Dy())
		draw.Draw(canvas, dst, r.Image, b.Min, draw.Src)
		x += b.Dx()
	}
	return canvas
}
