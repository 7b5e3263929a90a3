package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/pelletier/go-toml/v2"

	"github.com/mfroeh/gogram/grammar"
	"github.com/mfroeh/gogram/trace"
)

// errSyntax is returned by commands whose input has errors. The messages are
// printed already.
var errSyntax = errors.New("input has errors")

type Globals struct {
	LogLevel string `name:"log-level" help:"Trace output level (trace, debug, info, warn, error, off)." default:"off" enum:"trace,debug,info,warn,error,off"`
	NoColor  bool   `name:"no-color" help:"Disable colored output."`
}

// Trace returns the trace of the grammar passes, or nil if tracing is off.
func (g *Globals) Trace() grammar.Trace {
	if hclog.LevelFromString(g.LogLevel) == hclog.Off {
		return nil
	}
	return trace.New(trace.NewLogger(g.LogLevel, os.Stderr, !g.NoColor))
}

var cli struct {
	Globals

	Parse parseCmd `cmd:"" help:"Parse a JSON document and write its tree as XML, YAML or JSON."`
	Lex   lexCmd   `cmd:"" help:"Print the tokens of a JSON document."`
	Grep  grepCmd  `cmd:"" help:"Recursively search for lines matching a pattern."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("gogram"),
		kong.Description("Lexes and parses documents with grammars built on the gogram engine."),
		kong.UsageOnError(),
		kong.Configuration(tomlLoader, "~/.gogram.toml", ".gogram.toml"),
	)
	if cli.NoColor {
		color.NoColor = true
	}

	err := ctx.Run(&cli.Globals)
	if errors.Is(err, errSyntax) {
		os.Exit(3)
	}
	ctx.FatalIfErrorf(err)
}

// tomlLoader resolves flags from a TOML file. Keys are flag names, with
// dashes or underscores. Keys of a table apply to the command of that name.
func tomlLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	var f kong.ResolverFunc = func(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if parent != nil && parent.Command != nil {
			if table, ok := values[parent.Command.Name].(map[string]any); ok {
				if v, ok := lookup(table, flag.Name); ok {
					return v, nil
				}
			}
		}
		v, _ := lookup(values, flag.Name)
		return v, nil
	}
	return f, nil
}

func lookup(values map[string]any, name string) (any, bool) {
	if v, ok := values[name]; ok {
		return v, true
	}
	v, ok := values[strings.ReplaceAll(name, "-", "_")]
	return v, ok
}
