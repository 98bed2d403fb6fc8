package led

import (
	"errors"
	"testing"
)

func TestParsePin(t *testing.T) {
	tests := []struct {
		input    string
		lineNum  int
		polarity Polarity
		wantErr  bool
	}{
		{input: "GPIO13", lineNum: 13, polarity: ActiveHigh},
		{input: "gpio13", lineNum: 13, polarity: ActiveHigh},
		{input: "13", lineNum: 13, polarity: ActiveHigh},
		{input: "GPIO18:active-low", lineNum: 18, polarity: ActiveLow},
		{input: "18:ActiveLow", lineNum: 18, polarity: ActiveLow},
		{input: "GPIO5:active-low:active-high", lineNum: 5, polarity: ActiveHigh},
		{input: "GPIO", wantErr: true},
		{input: "PIN13", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "GPIO13:pull-up", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			spec, err := ParsePin(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %+v", tt.input, spec)
				}
				if !errors.Is(err, ErrInvalidPinSpec) {
					t.Errorf("expected ErrInvalidPinSpec, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if spec.LineNum != tt.lineNum {
				t.Errorf("expected line %d, got %d", tt.lineNum, spec.LineNum)
			}
			if spec.Polarity != tt.polarity {
				t.Errorf("expected polarity %s, got %s", tt.polarity, spec.Polarity)
			}
		})
	}
}

func TestPinSpecString(t *testing.T) {
	spec, err := ParsePin("13:active-low")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := spec.String(); got != "GPIO13:active-low" {
		t.Errorf("expected GPIO13:active-low, got %s", got)
	}
	if got := spec.Name(); got != "GPIO13" {
		t.Errorf("expected GPIO13, got %s", got)
	}
}

func TestDefaultPinParses(t *testing.T) {
	spec, err := ParsePin(DefaultPin)
	if err != nil {
		t.Fatalf("default pin does not parse: %v", err)
	}
	if spec.LineNum != 13 {
		t.Errorf("expected default line 13, got %d", spec.LineNum)
	}
}

func TestPolarityValues(t *testing.T) {
	if ActiveHigh.onValue() != 1 || ActiveHigh.offValue() != 0 {
		t.Error("active-high should drive 1 for on and 0 for off")
	}
	if ActiveLow.onValue() != 0 || ActiveLow.offValue() != 1 {
		t.Error("active-low should drive 0 for on and 1 for off")
	}
	if Polarity(9).String() != "unknown" {
		t.Errorf("unexpected string for invalid polarity: %s", Polarity(9))
	}
}
