package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/coregx/coreac/ac"
	"github.com/coregx/coreac/persist"
)

var cmdBuild = &cli.Command{
	Name:      "build",
	Usage:     "Compile a pattern list into an automaton image",
	ArgsUsage: "[PATTERN_FILE]",
	Description: `Reads one pattern per line from PATTERN_FILE, or from standard input
when it is omitted. Empty lines are skipped.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    "Image file to write",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "layout",
			Value: "16",
			Usage: "State layout: 16, 12, 8 or da",
		},
		&cli.IntFlag{
			Name:  "ext",
			Value: int(ac.WordExtContent),
			Usage: "Word tables: 0 ids only, 1 lengths, 2 lengths and contents",
		},
		&cli.BoolFlag{
			Name:  "lex",
			Usage: "Number patterns in lexicographic order",
		},
		&cli.BoolFlag{
			Name:  "sort-len",
			Usage: "Report longer patterns first at each position",
		},
		&cli.BoolFlag{
			Name:  "reverse",
			Usage: "Store reversed patterns, for scan --reverse",
		},
		&cli.BoolFlag{
			Name:  "fold-case",
			Usage: "Store ASCII lower-cased patterns, for scan --fold-case",
		},
		&cli.BoolFlag{
			Name:  "zstd",
			Usage: "Compress the image with zstd",
		},
	},
	Action: runBuild,
}

func runBuild(c *cli.Context) error {
	log := newLogger(c)

	layout, err := ac.ParseLayout(c.String("layout"))
	if err != nil {
		return err
	}
	ext := c.Int("ext")
	if ext < int(ac.WordExtNone) || ext > int(ac.WordExtContent) {
		return fmt.Errorf("--ext %d: want 0, 1 or 2", ext)
	}
	cfg := ac.Config{
		Layout:        layout,
		WordExt:       ac.WordExt(ext),
		Lexicographic: c.Bool("lex"),
		SortByWordLen: c.Bool("sort-len"),
		Logger:        log,
	}

	in := c.App.Reader
	name := "<stdin>"
	if c.NArg() > 0 {
		name = c.Args().First()
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	start := time.Now()
	a, err := buildAutomaton(in, cfg, c.Bool("reverse"), c.Bool("fold-case"))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer a.Close()

	out := c.String("output")
	n, err := writeImage(out, a, c.Bool("zstd"))
	if err != nil {
		return err
	}
	log.Info("image written",
		"path", out,
		"words", a.NumWords(),
		"states", a.NumStates(),
		"layout", a.Layout(),
		"size", humanize.IBytes(uint64(n)),
		"elapsed", time.Since(start))
	return nil
}

// buildAutomaton compiles the non-empty lines of r.
func buildAutomaton(r io.Reader, cfg ac.Config, reverse, fold bool) (*ac.Automaton, error) {
	b, err := ac.NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for line := 1; sc.Scan(); line++ {
		word := sc.Bytes()
		if len(word) == 0 {
			continue
		}
		if fold {
			for i, ch := range word {
				word[i] = foldASCII(ch)
			}
		}
		if reverse {
			reverseBytes(word)
		}
		if _, _, err := b.AddWord(word); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return b.Compile()
}

func writeImage(path string, a *ac.Automaton, compress bool) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	var n int64
	if compress {
		n, err = persist.WriteCompressed(f, a.Image())
	} else {
		n, err = a.WriteTo(f)
	}
	if err != nil {
		f.Close()
		return n, err
	}
	return n, f.Close()
}
