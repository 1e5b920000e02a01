// Package tools is the composition root: it exposes the capture and
// description capabilities as a closed set of named operations with declared
// parameter schemas, invoked identically by the polling CLI and the MCP
// server.
package tools

import (
	"fmt"
	"math"

	"github.com/screenlens/screenlens/internal/fault"
	"github.com/screenlens/screenlens/internal/vision"
)

// Operation names.
const (
	OpListScreens       = "list_screens"
	OpDescribeScreen    = "describe_screen"
	OpDescribeWithQuery = "describe_screen_with_question"
	OpCaptureOnly       = "capture_only"
)

// ParamType is the declared type of an operation parameter.
type ParamType string

const (
	TypeInt    ParamType = "int"
	TypeString ParamType = "string"
	TypeBool   ParamType = "bool"
	TypeEnum   ParamType = "enum"
)

// ParamSpec declares one operation parameter. The dispatcher validates every
// request against these specs; handlers receive only normalized values.
type ParamSpec struct {
	Name        string
	Type        ParamType
	Required    bool
	Default     any
	Enum        []string
	Description string
}

// OpSpec declares one operation. Adding an operation means adding a row
// here plus a handler registration; the validate-dispatch-respond routine
// is shared.
type OpSpec struct {
	Name        string
	Description string
	Params      []ParamSpec
}

// Operations is the full operation table, in the order they are advertised.
var Operations = []OpSpec{
	{
		Name:        OpListScreens,
		Description: "List all connected displays with their index, resolution and primary flag. Use this to find the screen number for the other operations.",
	},
	{
		Name:        OpDescribeScreen,
		Description: "Capture a screenshot of the selected screen (0 = all screens tiled into one image), save it as PNG, and return an AI-generated text description of what is visible.",
		Params: []ParamSpec{
			{Name: "screen_number", Type: TypeInt, Default: 0,
				Description: "Which screen to capture: 0 = all displays, 1 = first display, and so on."},
			{Name: "focus", Type: TypeEnum, Default: vision.FocusGeneral, Enum: vision.Focuses,
				Description: "What to emphasize in the description."},
			{Name: "save_to_directory", Type: TypeString, Default: "",
				Description: "Directory for the saved PNG files. Empty means the current working directory."},
		},
	},
	{
		Name:        OpDescribeWithQuery,
		Description: "Capture a screenshot of the selected screen and answer a specific question about what is visible.",
		Params: []ParamSpec{
			{Name: "question", Type: TypeString, Required: true,
				Description: "The question to answer about the screen content."},
			{Name: "screen_number", Type: TypeInt, Default: 0,
				Description: "Which screen to capture: 0 = all displays, 1 = first display, and so on."},
			{Name: "save_to_directory", Type: TypeString, Default: "",
				Description: "Directory for the saved PNG files. Empty means the current working directory."},
		},
	},
	{
		Name:        OpCaptureOnly,
		Description: "Capture a screenshot of the selected screen and save it as PNG without describing it.",
		Params: []ParamSpec{
			{Name: "screen_number", Type: TypeInt, Default: 0,
				Description: "Which screen to capture: 0 = all displays, 1 = first display, and so on."},
			{Name: "save_to_directory", Type: TypeString, Default: "",
				Description: "Directory for the saved PNG files. Empty means the current working directory."},
			{Name: "fast", Type: TypeBool, Default: false,
				Description: "Downsample and use fast PNG compression, trading fidelity for latency."},
		},
	},
}

// LookupOp returns the OpSpec for an operation name.
func LookupOp(name string) (OpSpec, bool) {
	for _, op := range Operations {
		if op.Name == name {
			return op, true
		}
	}
	return OpSpec{}, false
}

// validateParams checks raw request parameters against an OpSpec and returns
// the normalized parameter map with defaults applied.
func validateParams(op OpSpec, raw map[string]any) (map[string]any, error) {
	known := make(map[string]ParamSpec, len(op.Params))
	for _, p := range op.Params {
		known[p.Name] = p
	}
	for name := range raw {
		if _, ok := known[name]; !ok {
			return nil, fault.New(fault.InvalidParameters,
				"operation %s does not accept parameter %q", op.Name, name)
		}
	}

	out := make(map[string]any, len(op.Params))
	for _, p := range op.Params {
		v, present := raw[p.Name]
		if !present || v == nil {
			if p.Required {
				return nil, fault.New(fault.InvalidParameters,
					"operation %s requires parameter %q", op.Name, p.Name)
			}
			out[p.Name] = p.Default
			continue
		}
		norm, err := normalizeValue(p, v)
		if err != nil {
			return nil, err
		}
		out[p.Name] = norm
	}
	return out, nil
}

func normalizeValue(p ParamSpec, v any) (any, error) {
	switch p.Type {
	case TypeInt:
		switch n := v.(type) {
		case int:
			return n, nil
		case int64:
			return int(n), nil
		case float64:
			// JSON numbers arrive as float64.
			if n != math.Trunc(n) {
				return nil, fault.New(fault.InvalidParameters,
					"parameter %q must be an integer, got %v", p.Name, n)
			}
			return int(n), nil
		default:
			return nil, typeError(p, v)
		}
	case TypeBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
		return nil, typeError(p, v)
	case TypeString:
		if s, ok := v.(string); ok {
			if p.Required && s == "" {
				return nil, fault.New(fault.InvalidParameters,
					"parameter %q must not be empty", p.Name)
			}
			return s, nil
		}
		return nil, typeError(p, v)
	case TypeEnum:
		s, ok := v.(string)
		if !ok {
			return nil, typeError(p, v)
		}
		for _, allowed := range p.Enum {
			if s == allowed {
				return s, nil
			}
		}
		return nil, fault.New(fault.InvalidParameters,
			"parameter %q must be one of %v, got %q", p.Name, p.Enum, s)
	default:
		return nil, fmt.Errorf("unknown parameter type %q for %q", p.Type, p.Name)
	}
}

func typeError(p ParamSpec, v any) error {
	return fault.New(fault.InvalidParameters,
		"parameter %q must be of type %s, got %T", p.Name, p.Type, v)
}
