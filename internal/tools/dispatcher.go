package tools

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/screenlens/screenlens/internal/capture"
	"github.com/screenlens/screenlens/internal/config"
	"github.com/screenlens/screenlens/internal/display"
	"github.com/screenlens/screenlens/internal/fault"
	"github.com/screenlens/screenlens/internal/region"
	"github.com/screenlens/screenlens/internal/vision"
)

// DescribeFunc forwards an encoded PNG plus prompt to the vision service.
// Injected so tests can run the full pipeline without network access.
type DescribeFunc func(ctx context.Context, pngData []byte, prompt string) (string, error)

// Request is one named-operation invocation.
type Request struct {
	Op     string
	Params map[string]any
}

// ScreenInfo is one row of a list_screens result.
type ScreenInfo struct {
	Index     int  `json:"index"`
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	IsPrimary bool `json:"is_primary"`
}

// Result is the success payload of an operation. Only the fields relevant
// to the invoked operation are populated.
type Result struct {
	Screens     []ScreenInfo `json:"screens,omitempty"`
	SavedPaths  []string     `json:"saved_paths,omitempty"`
	Description string       `json:"description,omitempty"`
}

// Dispatcher runs the resolve → capture → persist → describe pipeline for
// every operation. It is the single choke point enforcing the
// one-capture-at-a-time rule regardless of entry surface.
type Dispatcher struct {
	backend     display.Backend
	engine      *capture.Engine
	describe    DescribeFunc
	acquisition capture.Acquisition
	fastMaxDim  int
	timeout     time.Duration

	// ordinal names sequential saved files; it is the only process-wide
	// state besides the capture guard and resets on process restart.
	ordinal atomic.Uint64
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithAcquisition selects block vs fail-fast behavior when a capture is
// already in flight.
func WithAcquisition(mode capture.Acquisition) Option {
	return func(d *Dispatcher) { d.acquisition = mode }
}

// WithDescriber installs the vision bridge. Without one, describe
// operations fail with UpstreamUnavailable.
func WithDescriber(fn DescribeFunc) Option {
	return func(d *Dispatcher) { d.describe = fn }
}

// NewDispatcher wires a dispatcher over a display backend.
func NewDispatcher(backend display.Backend, cfg *config.Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		backend:     backend,
		engine:      capture.NewEngine(backend),
		acquisition: capture.AcquisitionBlock,
		fastMaxDim:  cfg.Capture.FastMaxDimension,
		timeout:     cfg.VisionTimeout(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Dispatch validates req against the operation table and runs it. All
// failures carry a fault kind; an invocation is all-or-nothing for itself.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Result, error) {
	op, ok := LookupOp(req.Op)
	if !ok {
		return nil, fault.New(fault.InvalidParameters, "unknown operation %q", req.Op)
	}
	params, err := validateParams(op, req.Params)
	if err != nil {
		return nil, err
	}

	switch op.Name {
	case OpListScreens:
		return d.listScreens(ctx)
	case OpDescribeScreen:
		return d.describeScreen(ctx,
			params["screen_number"].(int),
			vision.FocusPrompt(params["focus"].(string)),
			params["save_to_directory"].(string))
	case OpDescribeWithQuery:
		return d.describeScreen(ctx,
			params["screen_number"].(int),
			vision.QuestionPrompt(params["question"].(string)),
			params["save_to_directory"].(string))
	case OpCaptureOnly:
		return d.captureOnly(ctx,
			params["screen_number"].(int),
			params["save_to_directory"].(string),
			params["fast"].(bool))
	default:
		return nil, fault.New(fault.InvalidParameters, "unknown operation %q", req.Op)
	}
}

// listScreens enumerates under the capture guard: on the real backend,
// enumeration probes the capture primitive, which must never run
// concurrently with an in-flight capture.
func (d *Dispatcher) listScreens(ctx context.Context) (*Result, error) {
	release, err := d.engine.Acquire(ctx, d.acquisition)
	if err != nil {
		return nil, err
	}
	defer release()

	displays, err := d.backend.Enumerate()
	if err != nil {
		return nil, err
	}
	screens := make([]ScreenInfo, 0, len(displays))
	for _, disp := range displays {
		screens = append(screens, ScreenInfo{
			Index:     disp.Index,
			Width:     disp.Width,
			Height:    disp.Height,
			IsPrimary: disp.IsPrimary,
		})
	}
	return &Result{Screens: screens}, nil
}

func (d *Dispatcher) captureOnly(ctx context.Context, selector int, dir string, fast bool) (*Result, error) {
	paths, _, err := d.captureAndSave(ctx, selector, dir, fast)
	if err != nil {
		return nil, err
	}
	return &Result{SavedPaths: paths}, nil
}

func (d *Dispatcher) describeScreen(ctx context.Context, selector int, prompt, dir string) (*Result, error) {
	// Checked before any capture work: a describe call that can never be
	// answered must not leave PNG files behind.
	if d.describe == nil {
		return nil, fault.New(fault.UpstreamUnavailable, "no vision service configured")
	}

	paths, describable, err := d.captureAndSave(ctx, selector, dir, false)
	if err != nil {
		return nil, err
	}

	descCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	description, err := d.describe(descCtx, describable, prompt)
	if err != nil {
		return nil, err
	}
	return &Result{SavedPaths: paths, Description: description}, nil
}

// captureAndSave runs the shared resolve → capture → encode → persist span
// under the exclusive guard. It returns the saved paths in capture order and
// the PNG to describe: the composed image for selector 0, the single
// display's image otherwise.
func (d *Dispatcher) captureAndSave(ctx context.Context, selector int, dir string, fast bool) (paths []string, describable []byte, err error) {
	release, err := d.engine.Acquire(ctx, d.acquisition)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	displays, err := d.backend.Enumerate()
	if err != nil {
		return nil, nil, err
	}
	regions, err := region.Resolve(selector, displays)
	if err != nil {
		return nil, nil, err
	}

	opts := capture.Options{
		Compose:      selector == region.SelectorAll,
		Fast:         fast,
		MaxDimension: d.fastMaxDim,
	}
	results, err := d.engine.Capture(ctx, regions, opts)
	if err != nil {
		return nil, nil, err
	}

	encoded := make([][]byte, len(results))
	for i, res := range results {
		encoded[i], err = capture.EncodePNG(res, fast)
		if err != nil {
			return nil, nil, err
		}
	}

	paths, err = d.saveAll(dir, results, encoded)
	if err != nil {
		return nil, nil, err
	}

	// The last result is the composed image when one was requested;
	// otherwise the single (or only) region's image.
	return paths, encoded[len(encoded)-1], nil
}

// saveAll writes one PNG per result into dir (cwd when empty), named with
// the source index, capture timestamp and the process-wide ordinal. A
// failed invocation leaves zero files behind.
func (d *Dispatcher) saveAll(dir string, results []capture.Result, encoded [][]byte) ([]string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fault.Wrap(fault.WriteFailure, err, "cannot determine working directory")
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fault.Wrap(fault.WriteFailure, err, "directory %s is not writable", dir)
	}

	paths := make([]string, 0, len(results))
	for i, res := range results {
		name := fmt.Sprintf("screen%d_%s_%04d.png",
			res.Index, res.CapturedAt.Format("20060102_150405"), d.ordinal.Add(1))
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, encoded[i], 0o644); err != nil {
			// All-or-nothing per invocation: discard anything already written.
			for _, p := range paths {
				if rmErr := os.Remove(p); rmErr != nil {
					log.Printf("cleanup of %s failed: %v", p, rmErr)
				}
			}
			return nil, fault.Wrap(fault.WriteFailure, err, "failed to write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
