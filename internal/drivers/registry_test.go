package drivers

import (
	"errors"
	"testing"

	"github.com/larsks/faultblink/internal/led"
)

func TestDefaultRegistry_Drivers(t *testing.T) {
	drivers := ListDrivers()

	expected := []string{"dummy", "gpio", "gpiocdev"}
	if len(drivers) != len(expected) {
		t.Fatalf("Expected drivers %v, got %v", expected, drivers)
	}
	for i, name := range expected {
		if drivers[i] != name {
			t.Errorf("Expected driver %s at position %d, got %s", name, i, drivers[i])
		}
	}
}

func TestDummyDriver_Create(t *testing.T) {
	device, err := Create("dummy", map[string]any{"pin": "GPIO21"})
	if err != nil {
		t.Fatalf("Failed to create dummy driver: %v", err)
	}

	rec, ok := device.(*led.Recorder)
	if !ok {
		t.Fatalf("Expected *led.Recorder, got %T", device)
	}
	if rec.String() != "dummy:GPIO21" {
		t.Errorf("Unexpected device name %s", rec)
	}
}

func TestDummyDriver_DefaultPin(t *testing.T) {
	device, err := Create("dummy", nil)
	if err != nil {
		t.Fatalf("Failed to create dummy driver: %v", err)
	}
	if device.String() != "dummy:"+led.DefaultPin {
		t.Errorf("Expected default pin, got %s", device)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		config  map[string]any
		wantErr error
	}{
		{name: "valid dummy", driver: "dummy", config: map[string]any{"pin": "13"}},
		{name: "valid gpio", driver: "gpio", config: map[string]any{"pin": "GPIO13:active-low"}},
		{name: "valid gpiocdev", driver: "gpiocdev", config: map[string]any{"pin": "GPIO13", "chip": "gpiochip4"}},
		{name: "numeric pin", driver: "gpiocdev", config: map[string]any{"pin": 13}},
		{name: "bad pin", driver: "gpio", config: map[string]any{"pin": "LED0"}, wantErr: ErrInvalidConfig},
		{name: "unknown key", driver: "dummy", config: map[string]any{"switch-count": 4}, wantErr: ErrInvalidConfig},
		{name: "unknown driver", driver: "piface", config: nil, wantErr: ErrUnknownDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig(tt.driver, tt.config)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("dummy", &DummyFactory{}); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}
	if err := r.Register("dummy", &DummyFactory{}); !errors.Is(err, ErrDriverExists) {
		t.Errorf("Expected ErrDriverExists, got %v", err)
	}
	if _, err := r.Create("gpio", nil); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("Expected ErrUnknownDriver, got %v", err)
	}
}
