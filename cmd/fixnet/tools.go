package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/born-ml/fixnet/internal/compare"
	"github.com/born-ml/fixnet/internal/fixed"
	"github.com/born-ml/fixnet/internal/output"
	"github.com/born-ml/fixnet/internal/segment"
	"github.com/born-ml/fixnet/internal/serialization"
	"github.com/born-ml/fixnet/internal/wordpack"
)

var errMismatch = errors.New("files differ")

func diffCmd(args []string) error {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	unified := fs.Int("u", -1, "Print a unified diff with N context lines instead of the line report")
	tree := fs.Bool("tree", false, "Compare two stage trees")
	_ = fs.Parse(args)
	if fs.NArg() != 2 {
		return errors.New("usage: fixnet diff [-u N] [-tree] <a> <b>")
	}
	a, b := fs.Arg(0), fs.Arg(1)

	if *tree {
		rep, err := compare.CompareTrees(a, b)
		if err != nil {
			return err
		}
		for _, s := range rep.Stages {
			switch {
			case s.Optional():
				fmt.Printf("%-12s skipped, only in one tree\n", s.Key)
			case s.Report == nil && s.Left == "":
				fmt.Printf("%-12s only in %s\n", s.Key, b)
			case s.Report == nil:
				fmt.Printf("%-12s only in %s\n", s.Key, a)
			case s.Report.Equal():
				fmt.Printf("%-12s match (%d lines)\n", s.Key, s.Report.LeftLines)
			default:
				fmt.Printf("%-12s %d mismatched lines, first at line %d, max delta %d\n",
					s.Key, len(s.Report.Mismatches), s.Report.Mismatches[0].Line, s.Report.MaxDelta())
			}
		}
		if first, ok := rep.FirstDivergence(); ok {
			fmt.Printf("first divergence: %s\n", first.Key)
			return errMismatch
		}
		return nil
	}

	rep, err := compare.CompareFiles(a, b)
	if err != nil {
		return err
	}
	if *unified >= 0 {
		text, err := rep.Unified(*unified)
		if err != nil {
			return err
		}
		fmt.Print(text)
	} else if err := rep.Format(os.Stdout); err != nil {
		return err
	}
	if !rep.Equal() {
		return errMismatch
	}
	return nil
}

func verifyCmd(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		return errors.New("usage: fixnet verify <tree>...")
	}
	failed := false
	for _, dir := range fs.Args() {
		bad, err := output.Verify(dir)
		if err != nil {
			return err
		}
		if len(bad) > 0 {
			failed = true
			log.Printf("tree=%s corrupted_stages=%s", dir, strings.Join(bad, ","))
			continue
		}
		log.Printf("tree=%s ok", dir)
	}
	if failed {
		return serialization.ErrChecksumMismatch
	}
	return nil
}

func splitCmd(args []string) error {
	fs := flag.NewFlagSet("split", flag.ExitOnError)
	out := fs.String("o", "", "Output file (default: <input>_16bit_split.txt)")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("usage: fixnet split [-o out] <input>")
	}
	in := fs.Arg(0)

	lines, err := readLines(in)
	if err != nil {
		return err
	}
	words, err := wordpack.SplitLines(lines)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	return writeLines(outputPath(*out, in, "_16bit_split.txt"), words)
}

func mergeCmd(args []string) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	out := fs.String("o", "", "Output file (default: <input>_64bit_merged.txt)")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("usage: fixnet merge [-o out] <input>")
	}
	in := fs.Arg(0)

	lines, err := readLines(in)
	if err != nil {
		return err
	}
	words, padding, err := wordpack.MergeLines(lines)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if padding > 0 {
		log.Printf("input=%s padded_words=%d", in, padding)
	}
	return writeLines(outputPath(*out, in, "_64bit_merged.txt"), words)
}

func segmentCmd(args []string) error {
	fs := flag.NewFlagSet("segment", flag.ExitOnError)
	def := segment.DefaultConfig()
	height := fs.Int("height", 227, "Input height")
	width := fs.Int("width", 227, "Input width")
	channels := fs.Int("channels", 3, "Input channels")
	rows := fs.Int("rows", def.RowsPerSegment, "Rows per segment")
	overlap := fs.Int("overlap", def.Overlap, "Rows shared by neighbouring segments")
	outDir := fs.String("o", "segments", "Output directory")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("usage: fixnet segment [flags] <input>")
	}

	x, err := serialization.ReadTensorFile(fs.Arg(0), *height, *width, *channels)
	if err != nil {
		return err
	}
	tiles, err := segment.Segment(x, segment.Config{RowsPerSegment: *rows, Overlap: *overlap})
	if err != nil {
		return err
	}
	for i, tile := range tiles {
		path := filepath.Join(*outDir, segment.FileName(i))
		if err := serialization.WriteTensorFile(path, tile); err != nil {
			return err
		}
		log.Printf("segment=%d file=%s", i+1, path)
	}
	return nil
}

func quantizeCmd(args []string) error {
	fs := flag.NewFlagSet("quantize", flag.ExitOnError)
	out := fs.String("o", "", "Output file (default: stdout)")
	decode := fs.Bool("decode", false, "Convert bit strings back to decimal")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("usage: fixnet quantize [-decode] [-o out] <input>")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	w := os.Stdout
	if *out != "" {
		if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
			return err
		}
		w, err = os.Create(*out)
		if err != nil {
			return err
		}
		defer w.Close()
	}
	bw := bufio.NewWriter(w)

	if *decode {
		vals, err := serialization.ReadValues(f)
		if err != nil {
			return err
		}
		for _, v := range vals {
			if _, err := fmt.Fprintln(bw, v); err != nil {
				return err
			}
		}
		return bw.Flush()
	}

	floats, err := serialization.ParseFloats(f)
	if err != nil {
		return err
	}
	if err := serialization.WriteValues(bw, fixed.QuantizeSlice(floats)); err != nil {
		return err
	}
	return bw.Flush()
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), nil
}

func writeLines(path string, lines []string) error {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return err
	}
	log.Printf("lines=%d file=%s", len(lines), path)
	return nil
}

func outputPath(explicit, input, suffix string) string {
	if explicit != "" {
		return explicit
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}
