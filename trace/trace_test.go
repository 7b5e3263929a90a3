package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mfroeh/gogram/grammar"
	"github.com/mfroeh/gogram/lang"
)

func TestTrace(t *testing.T) {
	tests := map[string]struct {
		givenLevel  string
		wantEnabled bool
		wantLines   []string
		wantAbsent  []string
	}{
		"trace": {
			givenLevel:  "trace",
			wantEnabled: true,
			wantLines:   []string{"rule started", "rule matched", "Lexer scan complete, 2 token(s)", "lexical analysis: end"},
		},
		"debug": {
			givenLevel: "debug",
			wantLines:  []string{"lexical analysis: start", "lexical analysis: end"},
			wantAbsent: []string{"rule started"},
		},
		"off": {
			givenLevel: "off",
			wantAbsent: []string{"lexical analysis"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			tr := New(NewLogger(tc.givenLevel, &buf, false))
			if tr.Enabled() != tc.wantEnabled {
				t.Errorf("want enabled %v, got %v", tc.wantEnabled, tr.Enabled())
			}

			g := grammar.NewGrammar("", grammar.NewRule("A", lang.TokenFactory("A"), lang.Char('a')))
			lexer := lang.LexicalAnalysis{Grammar: g}
			for _, err := range lexer.RunToEnd(lang.NewSourceReader(lang.NewSource("t", "aa"), tr)) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			out := buf.String()
			for _, want := range tc.wantLines {
				if !strings.Contains(out, want) {
					t.Errorf("want %q in output:\n%s", want, out)
				}
			}
			for _, absent := range tc.wantAbsent {
				if strings.Contains(out, absent) {
					t.Errorf("want no %q in output:\n%s", absent, out)
				}
			}
		})
	}
}

func TestNewLoggerLevel(t *testing.T) {
	log := NewLogger("warn", &bytes.Buffer{}, false)
	if log.GetLevel() != hclog.Warn {
		t.Errorf("want level warn, got %v", log.GetLevel())
	}
}
