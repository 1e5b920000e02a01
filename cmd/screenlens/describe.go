package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/screenlens/screenlens/internal/config"
	"github.com/screenlens/screenlens/internal/display"
	"github.com/screenlens/screenlens/internal/tools"
	"github.com/screenlens/screenlens/internal/vision"
)

func runDescribe(args []string) int {
	fs := flag.NewFlagSet("describe", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: screenlens describe [flags]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Capture one screenshot, save it, and print an AI description.")
		fmt.Fprintln(os.Stderr, "Requires OPENROUTER_API_KEY in the environment or a .env file.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	screen := fs.Int("screen", 0, "Screen to capture (0 = all displays composed)")
	focus := fs.String("focus", vision.FocusGeneral, "Description focus: general, code, ui, text or browser")
	question := fs.String("question", "", "Ask a specific question instead of a general description")
	outputDir := fs.String("output", "", "Directory to save the screenshot into (default: current directory)")
	fs.StringVar(outputDir, "o", *outputDir, "Shorthand for --output")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "describe takes no positional arguments")
		fs.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	client := vision.NewClient(cfg)
	dispatcher := tools.NewDispatcher(display.NewBackend(), cfg,
		tools.WithDescriber(client.Describe))

	req := tools.Request{
		Op: tools.OpDescribeScreen,
		Params: map[string]any{
			"screen_number":     *screen,
			"focus":             *focus,
			"save_to_directory": *outputDir,
		},
	}
	if *question != "" {
		req = tools.Request{
			Op: tools.OpDescribeWithQuery,
			Params: map[string]any{
				"question":          *question,
				"screen_number":     *screen,
				"save_to_directory": *outputDir,
			},
		}
	}

	res, err := dispatcher.Dispatch(context.Background(), req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	for _, p := range res.SavedPaths {
		fmt.Printf("Saved: %s\n", p)
	}
	fmt.Println()
	fmt.Println(res.Description)
	return 0
}
