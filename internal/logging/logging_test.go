package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		cfg  Config
		want zapcore.Level
	}{
		{Config{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{Config{Level: "warn", Format: "json"}, zapcore.WarnLevel},
		{Config{Level: "loud", Format: "console"}, zapcore.InfoLevel},
		{DefaultConfig(), zapcore.InfoLevel},
	}
	for _, tc := range cases {
		log, err := New(tc.cfg)
		if err != nil {
			t.Fatalf("New(%+v): %v", tc.cfg, err)
		}
		if !log.Core().Enabled(tc.want) {
			t.Fatalf("%+v: level %v should be enabled", tc.cfg, tc.want)
		}
		if tc.want > zapcore.DebugLevel && log.Core().Enabled(tc.want-1) {
			t.Fatalf("%+v: level %v should be disabled", tc.cfg, tc.want-1)
		}
	}
}
