package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/mfroeh/gogram/demos/jsonlang"
	"github.com/mfroeh/gogram/grammar"
	"github.com/mfroeh/gogram/lang"
)

var levelColors = map[grammar.Level]*color.Color{
	grammar.Info:    color.New(color.FgCyan),
	grammar.Warning: color.New(color.FgYellow),
	grammar.Error:   color.New(color.FgRed, color.Bold),
}

type parseCmd struct {
	Input  string `arg:"" name:"input" help:"JSON document to parse, - for standard input."`
	Output string `short:"o" help:"File to write the tree to instead of standard output." type:"path"`
	Format string `short:"f" help:"Output format (xml, yaml, json)." default:"xml" enum:"xml,yaml,json"`
}

func (c *parseCmd) Run(g *Globals) error {
	src, err := readInput(c.Input)
	if err != nil {
		return err
	}

	v, res, err := jsonlang.Parse(src, g.Trace())
	if err != nil {
		return err
	}
	printMessages(os.Stderr, res.Messages)
	if v == nil {
		return errSyntax
	}

	var w io.Writer = os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return jsonlang.Encode(w, v, jsonlang.Format(c.Format))
}

type lexCmd struct {
	Input string `arg:"" name:"input" help:"JSON document to lex, - for standard input."`
}

func (c *lexCmd) Run(g *Globals) error {
	src, err := readInput(c.Input)
	if err != nil {
		return err
	}

	lexer := lang.LexicalAnalysis{Grammar: jsonlang.NewLexicon()}
	tokens, msgs, err := lexer.Lex(src, g.Trace())
	if err != nil {
		return err
	}
	for _, t := range tokens {
		fmt.Printf("%s\t%s\t%q\n", t.Span().Location(), t.Name(), t.Span().Text())
	}
	printMessages(os.Stderr, msgs)
	if len(msgs) > 0 {
		return errSyntax
	}
	return nil
}

func readInput(path string) (*lang.Source, error) {
	if path == "-" {
		return lang.ReadSource("<stdin>", os.Stdin)
	}
	return lang.OpenSource(path)
}

func printMessages(w io.Writer, msgs []lang.Message) {
	for _, m := range msgs {
		c, ok := levelColors[m.Level]
		if !ok {
			c = color.New(color.Reset)
		}
		fmt.Fprintf(w, "%s: %s %s\n", m.Location, c.Sprintf("%s %s:", strings.ToLower(m.Level.String()), m.Code), m.Text)
	}
}
