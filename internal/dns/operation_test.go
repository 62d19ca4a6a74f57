package dns

import "testing"

func TestMapOperation(t *testing.T) {
	tests := []struct {
		op   string
		want string
	}{
		{"add", "registration"},
		{"update", "update"},
		{"delete", "remove"},
		{"registration", "registration"},
		{"remove", "remove"},
		{"custom", "custom"}, // unknown names pass through
		{"auto", "auto"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			if got := MapOperation(tt.op); got != tt.want {
				t.Errorf("MapOperation(%q) = %q, want %q", tt.op, got, tt.want)
			}
		})
	}
}

func TestMapOperationStrict(t *testing.T) {
	if got, err := MapOperationStrict("add"); err != nil || got != "registration" {
		t.Errorf("MapOperationStrict(add) = %q, %v; want registration, nil", got, err)
	}
	if got, err := MapOperationStrict("auto"); err != nil || got != "auto" {
		t.Errorf("MapOperationStrict(auto) = %q, %v; want auto, nil", got, err)
	}
	if _, err := MapOperationStrict("custom"); err == nil {
		t.Error("MapOperationStrict(custom): expected error, got nil")
	}
}
