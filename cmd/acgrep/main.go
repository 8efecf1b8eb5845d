// Command acgrep builds Aho-Corasick automaton images from pattern lists and
// scans files with them.
//
//	acgrep build -o words.ac words.txt
//	acgrep scan -a words.ac *.log
//	acgrep stats words.ac
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "acgrep: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "acgrep"
	app.Usage = "Multi-pattern search with Aho-Corasick automata"
	app.Description = `acgrep compiles a list of patterns into an automaton image once, then
scans any number of inputs for every occurrence of every pattern in a
single pass per input.`
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log build and scan statistics",
		},
	}
	app.Commands = []*cli.Command{
		cmdBuild,
		cmdScan,
		cmdStats,
	}
	return app
}

// newLogger returns a text logger on the app's error writer, at debug level
// when --verbose is set.
func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))
}

// foldASCII maps ASCII upper case letters to lower case.
func foldASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
