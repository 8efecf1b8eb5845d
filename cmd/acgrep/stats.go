package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/coregx/coreac/ac"
)

var cmdStats = &cli.Command{
	Name:      "stats",
	Usage:     "Describe an automaton image",
	ArgsUsage: "FILE",
	Action:    runStats,
}

func runStats(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("stats: expected exactly one image file")
	}
	path := c.Args().First()
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	a, err := ac.Open(path)
	if err != nil {
		return err
	}
	defer a.Close()

	w := c.App.Writer
	fmt.Fprintf(w, "layout:      %s\n", a.Layout())
	fmt.Fprintf(w, "word ext:    %s\n", a.WordExt())
	fmt.Fprintf(w, "words:       %d\n", a.NumWords())
	fmt.Fprintf(w, "states:      %d\n", a.NumStates())
	fmt.Fprintf(w, "transitions: %d\n", a.NumTransitions())
	fmt.Fprintf(w, "memory:      %s\n", humanize.IBytes(uint64(a.MemSize())))
	fmt.Fprintf(w, "file:        %s (mapped: %t)\n", humanize.IBytes(uint64(fi.Size())), a.Borrowed())
	return nil
}
