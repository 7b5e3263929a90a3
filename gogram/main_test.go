package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"github.com/mfroeh/gogram/pattern"
)

func TestTomlLoader(t *testing.T) {
	tests := map[string]struct {
		givenConfig  string
		givenArgs    []string
		wantLogLevel string
		wantFormat   string
		wantNoColor  bool
	}{
		"defaults": {
			givenArgs:    []string{"parse", "in.json"},
			wantLogLevel: "off",
			wantFormat:   "xml",
		},
		"top level keys": {
			givenConfig:  "log_level = \"debug\"\nno-color = true\n",
			givenArgs:    []string{"parse", "in.json"},
			wantLogLevel: "debug",
			wantFormat:   "xml",
			wantNoColor:  true,
		},
		"command table": {
			givenConfig:  "[parse]\nformat = \"yaml\"\n",
			givenArgs:    []string{"parse", "in.json"},
			wantLogLevel: "off",
			wantFormat:   "yaml",
		},
		"flags win": {
			givenConfig:  "[parse]\nformat = \"yaml\"\n",
			givenArgs:    []string{"parse", "in.json", "--format", "json"},
			wantLogLevel: "off",
			wantFormat:   "json",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			resolver, err := tomlLoader(strings.NewReader(tc.givenConfig))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var c struct {
				Globals
				Parse parseCmd `cmd:""`
			}
			parser, err := kong.New(&c, kong.Resolvers(resolver))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := parser.Parse(tc.givenArgs); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := []any{c.LogLevel, c.Parse.Format, c.NoColor}
			want := []any{tc.wantLogLevel, tc.wantFormat, tc.wantNoColor}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("got diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTomlLoaderInvalid(t *testing.T) {
	if _, err := tomlLoader(strings.NewReader("log_level = ")); err == nil {
		t.Errorf("expected an error")
	}
}

func TestSearchFile(t *testing.T) {
	color.NoColor = true

	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")
	content := "12:00:01 start\nnothing here\n12:00:02 stop 12:00:03 done\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := map[string]struct {
		givenPattern  string
		givenMaxCount int
		want          string
	}{
		"all matches": {
			givenPattern:  "[0-9]{2}(:[0-9]{2})+",
			givenMaxCount: -1,
			want:          path + " :\n1:12:00:01 start\n3:12:00:02 stop 12:00:03 done\n\n",
		},
		"no match": {
			givenPattern:  "x{3}",
			givenMaxCount: -1,
			want:          "",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c := grepCmd{MaxCount: tc.givenMaxCount}
			var buf bytes.Buffer
			if err := c.searchDir(&buf, dir, pattern.MustCompile(tc.givenPattern)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, buf.String()); diff != "" {
				t.Errorf("got diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHighlight(t *testing.T) {
	color.NoColor = true

	tests := map[string]struct {
		givenPattern string
		givenLine    string
	}{
		"groups": {
			givenPattern: "(a)(b)?c",
			givenLine:    "xac abc",
		},
		"nested groups": {
			givenPattern: "((a)b)c",
			givenLine:    "abc abc",
		},
		"unicode": {
			givenPattern: "ä(ö)",
			givenLine:    "ääöx",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			matches := pattern.MustCompile(tc.givenPattern).FindAllSubmatches(tc.givenLine, -1)
			if len(matches) == 0 {
				t.Fatalf("no match of %q in %q", tc.givenPattern, tc.givenLine)
			}
			if diff := cmp.Diff(tc.givenLine, highlight(tc.givenLine, matches)); diff != "" {
				t.Errorf("got diff (-want +got):\n%s", diff)
			}
		})
	}
}
