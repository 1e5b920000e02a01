package mcp

import "github.com/screenlens/screenlens/internal/tools"

// ListScreensInput is the input for the list_screens tool.
type ListScreensInput struct{}

// ListScreensOutput is the output for the list_screens tool.
type ListScreensOutput struct {
	Screens []tools.ScreenInfo `json:"screens"`
}

// DescribeScreenInput is the input for the describe_screen tool.
type DescribeScreenInput struct {
	ScreenNumber int    `json:"screen_number,omitempty" jsonschema:"Which screen to capture: 0 = all displays tiled into one image (default), 1 = first display, 2 = second, etc. Use list_screens first to see the options."`
	Focus        string `json:"focus,omitempty" jsonschema:"What to emphasize in the description: general, code, ui, text or browser (default: general)"`
	SaveToDir    string `json:"save_to_directory,omitempty" jsonschema:"Directory where the screenshot PNG files are saved (default: current working directory)"`
}

// DescribeScreenWithQuestionInput is the input for the
// describe_screen_with_question tool.
type DescribeScreenWithQuestionInput struct {
	Question     string `json:"question" jsonschema:"required,The question to answer about the screen content, e.g. 'What error is shown?'"`
	ScreenNumber int    `json:"screen_number,omitempty" jsonschema:"Which screen to capture: 0 = all displays tiled into one image (default), 1 = first display, etc."`
	SaveToDir    string `json:"save_to_directory,omitempty" jsonschema:"Directory where the screenshot PNG files are saved (default: current working directory)"`
}

// DescribeOutput is the output shape shared by both describe tools.
type DescribeOutput struct {
	SavedPaths  []string `json:"saved_paths"`
	Description string   `json:"description"`
}

// CaptureOnlyInput is the input for the capture_only tool.
type CaptureOnlyInput struct {
	ScreenNumber int    `json:"screen_number,omitempty" jsonschema:"Which screen to capture: 0 = all displays tiled into one image (default), 1 = first display, etc."`
	SaveToDir    string `json:"save_to_directory,omitempty" jsonschema:"Directory where the screenshot PNG files are saved (default: current working directory)"`
	Fast         bool   `json:"fast,omitempty" jsonschema:"Downsample and use fast PNG compression, trading fidelity for latency (default: false)"`
}

// CaptureOnlyOutput is the output for the capture_only tool.
type CaptureOnlyOutput struct {
	SavedPaths []string `json:"saved_paths"`
}
