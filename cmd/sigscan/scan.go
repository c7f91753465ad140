package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/mhr3/sigscan"
)

var errNoMatch = errors.New("no match")

type scanOptions struct {
	signature string
	literal   bool // signature is matched byte for byte
	tier      sigscan.Tier
	context   int
}

var scanCmd = &cobra.Command{
	Use:   "scan FILE...",
	Short: "Scan files for a signature",
	Long:  longScan,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tier, err := sigscan.ParseTier(viper.GetString("tier"))
		if err != nil {
			return err
		}

		opts := scanOptions{
			tier:    tier,
			context: viper.GetInt("context"),
		}
		// The signature is per invocation and only ever comes from flags.
		if cmd.Flags().Changed("literal") {
			opts.literal = true
			opts.signature, _ = cmd.Flags().GetString("literal")
		} else {
			opts.signature, _ = cmd.Flags().GetString("pattern")
		}
		return runScan(cmd.OutOrStdout(), opts, args)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringP("pattern", "p", "", `IDA-style signature, e.g. "48 89 5c 24 ?? 48 89 6c"`)
	scanCmd.Flags().StringP("literal", "l", "", "literal string to search for")
	scanCmd.Flags().IntP("context", "C", 16, "bytes of context to dump after a match (0 disables)")
	scanCmd.MarkFlagsMutuallyExclusive("pattern", "literal")
	scanCmd.MarkFlagsOneRequired("pattern", "literal")

	_ = viper.BindPFlag("context", scanCmd.Flags().Lookup("context"))
}

type fileResult struct {
	path    string
	offset  int
	context []byte
}

// runScan scans files concurrently and writes one line per file to w, in
// argument order. It returns errNoMatch if any file did not contain the
// signature.
func runScan(w io.Writer, opts scanOptions, files []string) error {
	var s *sigscan.Scanner
	if opts.literal {
		s = sigscan.NewLiteral(opts.signature)
	} else {
		s = sigscan.New(opts.signature)
	}

	tier := sigscan.SelectTier(opts.tier, sigscan.DetectCapabilities())
	logger.Debug("compiled pattern",
		"pattern", s.Pattern().String(),
		"size", s.Pattern().Len(),
		"wildcards", s.Pattern().Wildcards(),
		"preferred", opts.tier,
		"tier", tier,
	)

	results := make([]fileResult, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			res, err := scanFile(s, opts, path)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	missing := 0
	for _, res := range results {
		if res.offset < 0 {
			fmt.Fprintf(w, "%s: not found\n", res.path)
			missing++
			continue
		}
		fmt.Fprintf(w, "%s: %#x [%s]\n", res.path, res.offset, tier)
		if len(res.context) > 0 {
			fmt.Fprint(w, hex.Dump(res.context))
		}
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d files: %w", missing, len(files), errNoMatch)
	}
	return nil
}

// scanFile finds the first match in path. The context bytes are copied out
// before the file is released.
func scanFile(s *sigscan.Scanner, opts scanOptions, path string) (fileResult, error) {
	res := fileResult{path: path, offset: -1}

	data, release, err := loadFile(path)
	if err != nil {
		return res, fmt.Errorf("failed to load %s: %w", path, err)
	}
	defer func() {
		if err := release(); err != nil {
			logger.Warn("failed to release file", "file", path, "error", err)
		}
	}()

	start := time.Now()
	r := s.Find(opts.tier, data)
	elapsed := time.Since(start)

	logger.Debug("scanned file",
		"file", path,
		"size", humanize.IBytes(uint64(len(data))),
		"elapsed", elapsed,
		"rate", rate(len(data), elapsed),
		"found", r.Valid(),
	)

	if !r.Valid() {
		return res, nil
	}
	res.offset = r.Offset()
	if opts.context > 0 {
		end := min(res.offset+opts.context, len(data))
		res.context = bytes.Clone(data[res.offset:end])
	}
	return res, nil
}

func rate(n int, d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	return humanize.IBytes(uint64(float64(n)/d.Seconds())) + "/s"
}

var longScan = `
Scan one or more files for the first occurrence of a signature and print its
offset, the tier that ran, and a hex dump of the bytes that follow.

Files ending in .gz, .zst or .lz4 are decompressed before scanning and
offsets refer to the decompressed data. Other files are memory mapped.

Examples:
  # find a function prologue in a binary
  sigscan scan -p "40 57 48 83 EC ? 48 C7 44 24" game.exe

  # find a string, forcing the scalar matcher
  sigscan scan --tier scalar -l LocalPlayer client.dll
`
