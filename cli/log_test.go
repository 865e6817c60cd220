package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ardnew/glenum/log"
)

func withDefaultLogger(t *testing.T, opts ...log.Option) *bytes.Buffer {
	t.Helper()

	saved := log.Default()
	t.Cleanup(func() { log.SetDefault(saved) })

	var buf bytes.Buffer

	log.SetDefault(log.Make(&buf, opts...))

	return &buf
}

func TestLogConfig_Scan(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantLevel  log.Level
		wantFormat log.Format
		wantPretty bool
		wantCaller bool
	}{
		{
			name:       "none",
			args:       []string{"gen", "-o", "out.go"},
			wantLevel:  log.LevelInfo,
			wantFormat: log.FormatJSON,
			wantPretty: true,
		},
		{
			name:       "separate values",
			args:       []string{"--log-level", "trace", "--log-format", "text"},
			wantLevel:  log.LevelTrace,
			wantFormat: log.FormatText,
			wantPretty: true,
		},
		{
			name:       "assigned values",
			args:       []string{"check", "--log-level=warn", "--no-log-pretty", "--log-caller"},
			wantLevel:  log.LevelWarn,
			wantFormat: log.FormatJSON,
			wantCaller: true,
		},
		{
			name:       "explicit booleans",
			args:       []string{"--log-pretty=false", "--no-log-caller=false"},
			wantLevel:  log.LevelInfo,
			wantFormat: log.FormatJSON,
			wantCaller: true,
		},
		{
			name:       "stops at terminator",
			args:       []string{"--", "--log-level=error"},
			wantLevel:  log.LevelInfo,
			wantFormat: log.FormatJSON,
			wantPretty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withDefaultLogger(t, log.WithLevel(log.LevelInfo), log.WithFormat(log.FormatJSON))

			f := logConfig{Pretty: true}
			f.scan(tt.args)

			if got := log.Default().Level(); got != tt.wantLevel {
				t.Errorf("level = %v, want %v", got, tt.wantLevel)
			}

			if got := log.Default().Format(); got != tt.wantFormat {
				t.Errorf("format = %v, want %v", got, tt.wantFormat)
			}

			if f.Pretty != tt.wantPretty || f.Caller != tt.wantCaller {
				t.Errorf("pretty, caller = %v, %v; want %v, %v",
					f.Pretty, f.Caller, tt.wantPretty, tt.wantCaller)
			}
		})
	}
}

func TestLogConfig_RegistryLogger(t *testing.T) {
	tests := []struct {
		name      string
		registry  string
		wantTrace bool
	}{
		{"inherits default level", "", false},
		{"trace", "trace", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := withDefaultLogger(t,
				log.WithLevel(log.LevelInfo),
				log.WithFormat(log.FormatJSON),
				log.WithPretty(false),
			)

			f := logConfig{Registry: tt.registry}
			logger := f.registryLogger()

			logger.Trace("folded entry")
			logger.Info("loaded")

			out := buf.String()

			if got := strings.Contains(out, "folded entry"); got != tt.wantTrace {
				t.Errorf("trace record written = %v, want %v\n%s", got, tt.wantTrace, out)
			}

			if !strings.Contains(out, `"component":"registry"`) {
				t.Errorf("missing component attribute\n%s", out)
			}
		})
	}
}
