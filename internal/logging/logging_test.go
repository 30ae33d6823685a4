package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		verbose bool
		debugOn bool
		infoOn  bool
	}{
		{verbose: false, debugOn: false, infoOn: true},
		{verbose: true, debugOn: true, infoOn: true},
	}

	for _, tt := range tests {
		logger, err := New(tt.verbose)
		if err != nil {
			t.Fatalf("New(%v): %v", tt.verbose, err)
		}
		core := logger.Core()
		if got := core.Enabled(zapcore.DebugLevel); got != tt.debugOn {
			t.Errorf("verbose=%v debug enabled=%v, want %v", tt.verbose, got, tt.debugOn)
		}
		if got := core.Enabled(zapcore.InfoLevel); got != tt.infoOn {
			t.Errorf("verbose=%v info enabled=%v, want %v", tt.verbose, got, tt.infoOn)
		}
	}
}

func TestMust(t *testing.T) {
	if Must(false) == nil {
		t.Fatal("Must returned nil logger")
	}
}
