package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/coregx/coreac/ac"
	"github.com/coregx/coreac/trie"
)

var cmdScan = &cli.Command{
	Name:      "scan",
	Usage:     "Report every pattern occurrence in the input files",
	ArgsUsage: "[FILE...]",
	Description: `Prints FILE:POS:PATTERN for each occurrence. POS is the end offset of
the occurrence, or its start offset with --reverse. Standard input is
scanned as a stream when no file is given.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "automaton",
			Aliases:  []string{"a"},
			Usage:    "Image file written by build",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "reverse",
			Usage: "Scan from the last byte; the image must be built with --reverse",
		},
		&cli.BoolFlag{
			Name:  "fold-case",
			Usage: "Fold ASCII case of the input; the image must be built with --fold-case",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Value:   4,
			Usage:   "Number of files scanned concurrently",
		},
		&cli.BoolFlag{
			Name:  "count",
			Usage: "Print only the number of distinct patterns found across all inputs",
		},
	},
	Action: runScan,
}

// scanResult is the output of one input, kept until every input is done so
// that files are reported in argument order.
type scanResult struct {
	out   bytes.Buffer
	words *roaring.Bitmap
	hits  int // distinct words on the plain forward --count path
}

type scanner struct {
	a       *ac.Automaton
	reverse bool
	tr      ac.ByteTranslator
	count   bool
}

func runScan(c *cli.Context) error {
	log := newLogger(c)
	a, err := ac.Open(c.String("automaton"))
	if err != nil {
		return err
	}
	defer a.Close()

	s := &scanner{a: a, reverse: c.Bool("reverse"), count: c.Bool("count")}
	if c.Bool("fold-case") {
		s.tr = foldASCII
	}

	start := time.Now()
	var results []*scanResult
	if c.NArg() == 0 {
		res, err := s.scanStdin(c)
		if err != nil {
			return err
		}
		results = append(results, res)
	} else {
		files := c.Args().Slice()
		results = make([]*scanResult, len(files))
		g, ctx := errgroup.WithContext(c.Context)
		g.SetLimit(max(1, c.Int("jobs")))
		for i, name := range files {
			g.Go(func() error {
				res, err := s.scanFile(ctx, name)
				if err != nil {
					return err
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	seen := roaring.New()
	hits := 0
	for _, res := range results {
		hits += res.hits
		if s.count {
			seen.Or(res.words)
			continue
		}
		if _, err := c.App.Writer.Write(res.out.Bytes()); err != nil {
			return err
		}
	}
	if s.count {
		fmt.Fprintln(c.App.Writer, seen.GetCardinality())
	}
	log.Debug("scan finished", "inputs", len(results), "hits", hits, "elapsed", time.Since(start))
	return nil
}

func (s *scanner) scanFile(ctx context.Context, name string) (*scanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	res := s.newResult()
	if s.count && !s.reverse && s.tr == nil {
		ids := s.a.DistinctWords(text, nil)
		res.words.AddMany(ids)
		res.hits = len(ids)
		return res, nil
	}
	on := s.onHit(name, res)
	if s.reverse {
		s.a.ScanReverseWithTranslate(text, on, s.tr)
	} else {
		s.a.ScanWithTranslate(text, on, s.tr)
	}
	return res, nil
}

func (s *scanner) scanStdin(c *cli.Context) (*scanResult, error) {
	const name = "-"
	res := s.newResult()
	if s.reverse {
		text, err := readAll(c)
		if err != nil {
			return nil, err
		}
		s.a.ScanReverseWithTranslate(text, s.onHit(name, res), s.tr)
		return res, nil
	}
	err := s.a.ScanStreamWithTranslate(bufio.NewReader(c.App.Reader), s.onHit(name, res), s.tr)
	return res, err
}

func readAll(c *cli.Context) ([]byte, error) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(c.App.Reader)
	return buf.Bytes(), err
}

func (s *scanner) newResult() *scanResult {
	res := &scanResult{}
	if s.count {
		res.words = roaring.New()
	}
	return res
}

func (s *scanner) onHit(name string, res *scanResult) ac.OnHit {
	return func(pos int, words []uint32, state trie.StateID) {
		res.hits += len(words)
		if s.count {
			res.words.AddMany(words)
			return
		}
		for _, w := range words {
			res.out.WriteString(name)
			res.out.WriteByte(':')
			res.out.WriteString(strconv.Itoa(pos))
			res.out.WriteByte(':')
			res.out.Write(s.wordText(state, w))
			res.out.WriteByte('\n')
		}
	}
}

// wordText spells word from the strpool, or from the trie on a double
// array, and falls back to #id.
func (s *scanner) wordText(state trie.StateID, w uint32) []byte {
	word, ok := s.a.Word(w)
	if !ok {
		restored, err := s.a.RestoreWord(state, w)
		if err != nil {
			return []byte("#" + strconv.FormatUint(uint64(w), 10))
		}
		word = restored
	}
	if s.reverse {
		word = bytes.Clone(word)
		reverseBytes(word)
	}
	return word
}
