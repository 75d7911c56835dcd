package enumerate

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// TestParseSherlockOutput tests stdout parsing for the tool's hit lines.
func TestParseSherlockOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name: "hit lines",
			output: "[*] Checking username anapaz on:\n" +
				"Found: https://www.instagram.com/anapaz\n" +
				"Found: https://x.com/anapaz\n" +
				"[*] Search completed\n",
			want: []string{
				"https://www.instagram.com/anapaz",
				"https://x.com/anapaz",
			},
		},
		{
			name:   "no hits",
			output: "[*] Checking username anapaz on:\n[*] Search completed\n",
			want:   nil,
		},
		{
			name:   "malformed hit line",
			output: "Found\nFound: https://x.com/anapaz extra tokens\n",
			want:   []string{"https://x.com/anapaz"},
		},
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseSherlockOutput(tt.output)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("unexpected URLs (-want +got):\n%s", diff)
			}
		})
	}
}

// writeStubTool writes an executable shell script standing in for the tool.
func writeStubTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub tool requires a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "sherlock-stub")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestSherlockEnumerate tests the subprocess adapter end to end with a stub.
func TestSherlockEnumerate(t *testing.T) {
	t.Parallel()

	stub := writeStubTool(t, `echo "Found: https://www.tiktok.com/@$1"`)

	enumerator := NewSherlock(WithCommand(stub))
	got := enumerator.Enumerate(context.Background(), "anapaz")

	want := []string{"https://www.tiktok.com/@anapaz"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected URLs (-want +got):\n%s", diff)
	}
}

// TestSherlockEnumerateFailures tests that every failure mode is swallowed.
func TestSherlockEnumerateFailures(t *testing.T) {
	t.Parallel()

	t.Run("tool absent", func(t *testing.T) {
		t.Parallel()

		enumerator := NewSherlock(WithCommand("no-such-tool-on-path"))
		if got := enumerator.Enumerate(context.Background(), "anapaz"); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("non-zero exit", func(t *testing.T) {
		t.Parallel()

		stub := writeStubTool(t, "exit 3")
		enumerator := NewSherlock(WithCommand(stub))
		if got := enumerator.Enumerate(context.Background(), "anapaz"); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		stub := writeStubTool(t, "sleep 5")
		enumerator := NewSherlock(WithCommand(stub), WithTimeout(100*time.Millisecond))
		if got := enumerator.Enumerate(context.Background(), "anapaz"); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}
