package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/mfroeh/gogram/pattern"
)

var submatchColors = []*color.Color{
	color.New(color.FgRed),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgBlue),
	color.New(color.FgMagenta),
	color.New(color.FgCyan),
}

type grepCmd struct {
	Pattern  string   `arg:"" name:"pattern" help:"Pattern to use in search."`
	Paths    []string `arg:"" optional:"" name:"path" help:"Paths to search." type:"path"`
	MaxCount int      `short:"m" help:"Maximum number of matches per line, -1 for all." default:"-1"`
}

func (c *grepCmd) Run(_ *Globals) error {
	p, err := pattern.Compile(c.Pattern)
	if err != nil {
		return err
	}

	if len(c.Paths) == 0 {
		c.Paths = []string{"."}
	}

	for _, path := range c.Paths {
		info, err := os.Lstat(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if info.IsDir() {
			err = c.searchDir(os.Stdout, path, p)
		} else {
			err = c.searchFile(os.Stdout, path, p)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *grepCmd) searchDir(w io.Writer, root string, p *pattern.Pattern) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		// resolve symlinks
		var info os.FileInfo
		for {
			info, err = os.Stat(path)
			// symlinks may be broken, in that case, just ignore them
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return err
			}
			if info.Mode()&fs.ModeSymlink != fs.ModeSymlink {
				break
			}

			path, err = os.Readlink(path)
			if err != nil {
				return err
			}
		}

		// symlink may resolve to a directory, in which case we just ignore it
		if info.IsDir() {
			return nil
		}

		return c.searchFile(w, path, p)
	})
}

func (c *grepCmd) searchFile(w io.Writer, path string, p *pattern.Pattern) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	printFileHeader := false
	for i, line := range strings.Split(string(content), "\n") {
		matches := p.FindAllSubmatches(line, c.MaxCount)
		if len(matches) == 0 {
			continue
		}

		if !printFileHeader {
			printFileHeader = true
			fmt.Fprintln(w, path, ":")
		}
		fmt.Fprintf(w, "%d:%s\n", i+1, highlight(line, matches))
	}

	if printFileHeader {
		fmt.Fprintln(w)
	}
	return nil
}

func highlight(line string, matches [][]pattern.Submatch) string {
	out := strings.Builder{}
	lastMatchEnd := 0
	for _, match := range matches {
		out.WriteString(line[lastMatchEnd:match[0].Offset])
		out.WriteString(formatMatch(match))
		lastMatchEnd = match[0].Offset + len(match[0].Str)
	}
	out.WriteString(line[lastMatchEnd:])
	return out.String()
}

// formatMatch colors each group of the match in its own color. Groups nested
// in an earlier group, and groups that did not take part, keep the color of
// the enclosing text.
func formatMatch(match []pattern.Submatch) string {
	fullMatch := match[0].Str
	if len(match) == 1 || len(match) > len(submatchColors) {
		return submatchColors[0].Sprint(fullMatch)
	}

	out := strings.Builder{}
	matchOff := 0
	for i, sm := range match[1:] {
		offRelativeToMatch := sm.Offset - match[0].Offset
		if sm.Offset < 0 || offRelativeToMatch < matchOff {
			continue
		}
		submatchColors[0].Fprint(&out, fullMatch[matchOff:offRelativeToMatch])
		submatchColors[i+1].Fprint(&out, sm.Str)
		matchOff = offRelativeToMatch + len(sm.Str)
	}
	submatchColors[0].Fprint(&out, fullMatch[matchOff:])
	return out.String()
}
