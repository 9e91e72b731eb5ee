package main

import (
	"runtime"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name           string
		quiet          bool
		wantJSON       bool
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:        "plain",
			wantContain: []string{"lotctl dev", "commit none", "built unknown", runtime.Version()},
		},
		{
			name:        "json",
			wantJSON:    true,
			wantContain: []string{`"version": "dev"`, `"go": "` + runtime.Version() + `"`},
		},
		{
			name:           "quiet",
			quiet:          true,
			wantNotContain: []string{"lotctl"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetGlobals(t)
			quiet = tt.quiet
			jsonOut = tt.wantJSON

			output, err := captureOutput(t, runVersion)
			if err != nil {
				t.Fatalf("runVersion() error = %v", err)
			}

			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}
