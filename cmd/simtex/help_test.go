package main

import (
	"strings"
	"testing"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args     []string
		wantCode int
		want     string
	}{
		{args: nil, wantCode: ExitSuccess, want: "Run 'simtex help <command>'"},
		{args: []string{"convert"}, wantCode: ExitSuccess, want: "--no-title"},
		{args: []string{"config"}, wantCode: ExitSuccess, want: "Usage: simtex config"},
		{args: []string{"doctor"}, wantCode: ExitSuccess, want: "Usage: simtex doctor"},
		{args: []string{"completion"}, wantCode: ExitSuccess, want: "Supported shells:"},
		{args: []string{"version"}, wantCode: ExitSuccess, want: "Usage: simtex version"},
		{args: []string{"help"}, wantCode: ExitSuccess, want: "Usage: simtex help"},
		{args: []string{"render"}, wantCode: ExitUsage, want: "Unknown command: render"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv(nil)
			if code := runHelp(tt.args, env); code != tt.wantCode {
				t.Errorf("runHelp(%v) = %d, want %d", tt.args, code, tt.wantCode)
			}
			if out := stdout.String() + stderr.String(); !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}
