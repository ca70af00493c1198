package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zapcore.Level
	}{
		{DebugLevel, zapcore.DebugLevel},
		{InfoLevel, zapcore.InfoLevel},
		{WarnLevel, zapcore.WarnLevel},
		{ErrorLevel, zapcore.ErrorLevel},
		{" INFO ", zapcore.InfoLevel},
		{"verbose", defaultZapLevel},
		{"", defaultZapLevel},
	}
	for _, tc := range cases {
		if got := toZapLevel(tc.in); got != tc.want {
			t.Errorf("toZapLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	log := New(WarnLevel, JSONFormat)
	core := log.Desugar().Core()

	if core.Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be disabled at warn level")
	}
	if !core.Enabled(zapcore.ErrorLevel) {
		t.Fatalf("error should be enabled at warn level")
	}
}

func TestNop_DiscardsEverything(t *testing.T) {
	log := Nop()
	if log.Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("nop logger must not enable any level")
	}
	log.Infow("ignored", "k", "v")
}
