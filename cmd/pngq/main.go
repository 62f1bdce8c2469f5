package main

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	pngq "github.com/BiriHub/PNG-files-reader"
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"
)

var errNoFiles = errors.New("no PNG file given")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbose        bool
		maxChunkLength uint32
	)

	rootCmd := &cobra.Command{
		Use:   "pngq [p=FORMAT] [c=FORMAT] [k=FORMAT] FILE... [-- FILE...]",
		Short: "Print the chunks of PNG files",
		Long: `Print the chunks of PNG files.

p=, c= and k= set the header, chunk and tEXt formats for the next file only.
Arguments after -- are always files.

header format: _f file, _w width, _h height, _d bit depth, _c color type,
               _N number of chunks, _C print chunks, _K print tEXt chunks
chunk format:  _n number, _t type, _l length, _c CRC, _D hex dump of data
tEXt format:   _k keyword, _t text`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetHandler(cli.New(cmd.ErrOrStderr()))
			if verbose {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.InfoLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rd := &pngq.Reader{MaxChunkLength: maxChunkLength}
			return run(cmd.OutOrStdout(), rd, args, cmd.ArgsLenAtDash())
		},
	}
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every chunk read")
	rootCmd.Flags().Uint32Var(&maxChunkLength, "max-chunk-length", pngq.MaxChunkLength, "Reject chunks longer than this many bytes")

	return rootCmd
}

// run inspects every file in args. Format options before dash apply to
// the next file only; dash < 0 means there was no "--".
func run(out io.Writer, rd *pngq.Reader, args []string, dash int) error {
	files := 0
	f := pngq.DefaultFormats()
	for i, arg := range args {
		if dash < 0 || i < dash {
			if setFormat(&f, arg) {
				continue
			}
		}
		files++
		inspectFile(out, rd, arg, f)
		f = pngq.DefaultFormats()
	}
	if files == 0 {
		return errNoFiles
	}
	return nil
}

// setFormat applies a p=, c= or k= argument
func setFormat(f *pngq.Formats, arg string) bool {
	if v, ok := strings.CutPrefix(arg, "p="); ok {
		f.Header = v
	} else if v, ok := strings.CutPrefix(arg, "c="); ok {
		f.Chunk = v
	} else if v, ok := strings.CutPrefix(arg, "k="); ok {
		f.Text = v
	} else {
		return false
	}
	return true
}

func inspectFile(out io.Writer, rd *pngq.Reader, path string, f pngq.Formats) {
	ctx := log.WithField("file", path)

	file, err := os.Open(path)
	if err != nil {
		ctx.WithError(err).Error("cannot open file")
		return
	}
	defer file.Close()

	// output of the file comes before its messages
	w := bufio.NewWriter(out)
	rep, err := rd.Inspect(w, bufio.NewReader(file), path, f)
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		ctx.WithError(err).Error("cannot read PNG file")
		return
	}

	for _, c := range rep.Sequence.Chunks {
		ctx.WithFields(log.Fields{
			"chunk":  c.Sequence,
			"type":   c.Type,
			"length": c.Length,
			"crc":    c.CRC,
		}).Debug("chunk")
	}
	for _, warn := range rep.Warnings {
		for _, e := range splitJoined(warn) {
			ctx.WithError(e).Warn("invalid PNG file")
		}
	}
	if !rep.Sequence.Terminated {
		ctx.Warn("no IEND chunk before end of file")
	}
}

// one message per error of an errors.Join result
func splitJoined(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
