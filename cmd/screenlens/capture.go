package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/screenlens/screenlens/internal/capture"
	"github.com/screenlens/screenlens/internal/config"
	"github.com/screenlens/screenlens/internal/display"
	"github.com/screenlens/screenlens/internal/fault"
	"github.com/screenlens/screenlens/internal/tools"
)

const (
	defaultScreen   = 1
	defaultInterval = 3 * time.Second
)

// captureArgs holds the parsed positional arguments of the capture command:
// [screen [interval_seconds [max_shots]]].
type captureArgs struct {
	Screen   int
	Interval time.Duration
	MaxShots int // 0 = unbounded
}

func parseCaptureArgs(args []string) (captureArgs, error) {
	out := captureArgs{Screen: defaultScreen, Interval: defaultInterval}

	if len(args) > 3 {
		return out, fmt.Errorf("too many arguments (expected [screen [interval [max_shots]]])")
	}
	if len(args) >= 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return out, fmt.Errorf("invalid screen number: %s", args[0])
		}
		out.Screen = n
	}
	if len(args) >= 2 {
		secs, err := strconv.ParseFloat(args[1], 64)
		if err != nil || secs <= 0 {
			return out, fmt.Errorf("invalid interval: %s", args[1])
		}
		out.Interval = time.Duration(secs * float64(time.Second))
	}
	if len(args) >= 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil || n < 0 {
			return out, fmt.Errorf("invalid max shots: %s", args[2])
		}
		out.MaxShots = n
	}
	return out, nil
}

func runCapture(args []string) int {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: screenlens capture [flags] [screen [interval_seconds [max_shots]]]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Save screenshots of a screen at a fixed interval. Defaults: screen 1,")
		fmt.Fprintln(os.Stderr, "every 3 seconds, unbounded. Screen 0 captures all displays plus a")
		fmt.Fprintln(os.Stderr, "composed image. Press Ctrl+C to stop.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	listOnly := fs.Bool("list", false, "List connected displays and exit")
	fs.BoolVar(listOnly, "l", *listOnly, "Shorthand for --list")
	fast := fs.Bool("fast", false, "Downsampled, faster encoding")
	outputDir := fs.String("output", "", "Directory to save screenshots into (default: current directory)")
	fs.StringVar(outputDir, "o", *outputDir, "Shorthand for --output")
	pick := fs.Bool("pick", false, "Pick the screen interactively")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	backend := display.NewBackend()
	displays, err := backend.Enumerate()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *listOnly {
		printScreens(os.Stdout, displays)
		return 0
	}

	parsed, err := parseCaptureArgs(fs.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return 2
	}

	if *pick {
		screen, err := pickScreen(displays)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		parsed.Screen = screen
	}

	dispatcher := tools.NewDispatcher(backend, cfg,
		tools.WithAcquisition(capture.AcquisitionFailFast))

	return captureLoop(dispatcher, parsed, *outputDir, *fast)
}

// captureLoop runs the fixed-interval capture cycle. Cancellation (Ctrl+C)
// is honored between iterations only: a capture in progress runs to
// completion.
func captureLoop(dispatcher *tools.Dispatcher, args captureArgs, outputDir string, fast bool) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Capturing screen %d every %s", args.Screen, args.Interval)
	if args.MaxShots > 0 {
		fmt.Printf(" (max %d shots)", args.MaxShots)
	}
	fmt.Println(". Press Ctrl+C to stop.")

	count := 0
	for {
		if args.MaxShots > 0 && count >= args.MaxShots {
			fmt.Printf("Reached %d screenshots. Done.\n", args.MaxShots)
			return 0
		}

		// Each cycle runs on a fresh background context so an interrupt
		// never aborts a capture mid-flight.
		res, err := dispatcher.Dispatch(context.Background(), tools.Request{
			Op: tools.OpCaptureOnly,
			Params: map[string]any{
				"screen_number":     args.Screen,
				"save_to_directory": outputDir,
				"fast":              fast,
			},
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			if kind, ok := fault.KindOf(err); ok && kind == fault.CaptureInProgress {
				// Transient overlap; skip this tick.
			} else {
				return 1
			}
		} else {
			count++
			for _, p := range res.SavedPaths {
				fmt.Printf("  [%d] Saved: %s\n", count, p)
			}
		}

		select {
		case <-ctx.Done():
			fmt.Printf("\nStopped. Captured %d screenshots.\n", count)
			return 0
		case <-time.After(args.Interval):
		}
	}
}

// pickScreen shows an interactive selector over the enumerated displays.
// Requires a terminal on stdin.
func pickScreen(displays []display.Info) (int, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return 0, fmt.Errorf("--pick requires an interactive terminal")
	}

	options := make([]huh.Option[int], 0, len(displays)+1)
	options = append(options, huh.NewOption("All displays (composed)", 0))
	for _, d := range displays {
		label := fmt.Sprintf("Display %d: %d×%d at (%d,%d)", d.Index, d.Width, d.Height, d.OriginX, d.OriginY)
		if d.IsPrimary {
			label += " [primary]"
		}
		options = append(options, huh.NewOption(label, d.Index))
	}

	var selected int
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("Which screen do you want to capture?").
			Options(options...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return 0, fmt.Errorf("screen selection aborted: %w", err)
	}
	return selected, nil
}

func printScreens(w io.Writer, displays []display.Info) {
	fmt.Fprintln(w, "Available screens:")
	totalW, maxH := 0, 0
	for _, d := range displays {
		totalW += d.Width
		if d.Height > maxH {
			maxH = d.Height
		}
	}
	fmt.Fprintf(w, "  [0] All displays composed: %dx%d\n", totalW, maxH)
	for _, d := range displays {
		marker := ""
		if d.IsPrimary {
			marker = " (primary)"
		}
		fmt.Fprintf(w, "  [%d] Display %d: %dx%d at (%d,%d)%s\n",
			d.Index, d.Index, d.Width, d.Height, d.OriginX, d.OriginY, marker)
	}
}
