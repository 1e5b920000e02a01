package tools

import (
	"testing"

	"github.com/screenlens/screenlens/internal/fault"
	"github.com/screenlens/screenlens/internal/vision"
)

func TestOperationTableIsWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, op := range Operations {
		if op.Name == "" || op.Description == "" {
			t.Errorf("operation %+v lacks a name or description", op)
		}
		if seen[op.Name] {
			t.Errorf("operation %q declared twice", op.Name)
		}
		seen[op.Name] = true

		for _, p := range op.Params {
			if p.Description == "" {
				t.Errorf("%s.%s has no description", op.Name, p.Name)
			}
			if p.Required && p.Default != nil {
				t.Errorf("%s.%s is required but declares a default", op.Name, p.Name)
			}
			if p.Type == TypeEnum && len(p.Enum) == 0 {
				t.Errorf("%s.%s is an enum with no values", op.Name, p.Name)
			}
		}
	}
	for _, name := range []string{OpListScreens, OpDescribeScreen, OpDescribeWithQuery, OpCaptureOnly} {
		if !seen[name] {
			t.Errorf("operation %q missing from table", name)
		}
	}
}

func TestLookupOp(t *testing.T) {
	if _, ok := LookupOp(OpCaptureOnly); !ok {
		t.Errorf("LookupOp(%q) not found", OpCaptureOnly)
	}
	if _, ok := LookupOp("reboot_machine"); ok {
		t.Error("LookupOp found an operation that does not exist")
	}
}

func TestValidateParamsAppliesDefaults(t *testing.T) {
	op, _ := LookupOp(OpDescribeScreen)
	out, err := validateParams(op, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out["screen_number"] != 0 {
		t.Errorf("screen_number default = %v, want 0", out["screen_number"])
	}
	if out["focus"] != vision.FocusGeneral {
		t.Errorf("focus default = %v, want %q", out["focus"], vision.FocusGeneral)
	}
	if out["save_to_directory"] != "" {
		t.Errorf("save_to_directory default = %v, want empty string", out["save_to_directory"])
	}
}

func TestValidateParamsNormalizesJSONNumbers(t *testing.T) {
	op, _ := LookupOp(OpCaptureOnly)
	out, err := validateParams(op, map[string]any{"screen_number": float64(2)})
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := out["screen_number"].(int); !ok || n != 2 {
		t.Errorf("screen_number = %v (%T), want int 2", out["screen_number"], out["screen_number"])
	}
}

func TestValidateParamsRejectsFractionalNumbers(t *testing.T) {
	op, _ := LookupOp(OpCaptureOnly)
	_, err := validateParams(op, map[string]any{"screen_number": 1.5})
	if !fault.Is(err, fault.InvalidParameters) {
		t.Errorf("error = %v, want InvalidParameters", err)
	}
}

func TestValidateParamsNilRequiredValue(t *testing.T) {
	op, _ := LookupOp(OpDescribeWithQuery)
	_, err := validateParams(op, map[string]any{"question": nil})
	if !fault.Is(err, fault.InvalidParameters) {
		t.Errorf("error = %v, want InvalidParameters", err)
	}
}
