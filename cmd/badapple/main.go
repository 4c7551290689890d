package main

import (
	"bufio"
	"context"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	badapple "github.com/lkesteloot/bad-apple-trs-80"
	"github.com/lkesteloot/bad-apple-trs-80/asm"
	"github.com/lkesteloot/bad-apple-trs-80/frame"
	"github.com/lkesteloot/bad-apple-trs-80/glyph"
	"github.com/lkesteloot/bad-apple-trs-80/pgm"
	"github.com/urfave/cli/v2"
)

const (
	formatIndirect = "indirect"
	formatDirect   = "direct"
	formatRaw      = "raw"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// Nothing is written unless fn succeeds
func writeOutput(file string, fn func(io.Writer) error) error {
	if file == "" || file == "-" {
		w := bufio.NewWriter(os.Stdout)
		if err := fn(w); err != nil {
			return err
		}
		return w.Flush()
	}

	tmp, err := ioutil.TempFile(filepath.Dir(file), ".badapple")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := fn(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}

func decodeImage(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	return m, err
}

func encode(c *cli.Context) error {
	logger := newLogger(c)

	format := c.String("format")
	switch format {
	case formatIndirect, formatDirect, formatRaw:
	default:
		return errors.New("unknown format " + format)
	}

	conv := badapple.New(logger, badapple.WithWorkers(c.Int("workers")), badapple.WithVerify(c.Bool("verify")))

	paths := badapple.FramePaths(c.String("pattern"), c.Int("first"), c.Int("count"))
	res, err := conv.Convert(context.Background(), paths, c.Int("first"))
	if err != nil {
		return err
	}

	return writeOutput(c.String("output"), func(w io.Writer) error {
		switch format {
		case formatDirect:
			return asm.WriteDirect(w, res.Runs)
		case formatRaw:
			b, err := res.Stream.MarshalBinary()
			if err != nil {
				return err
			}
			_, err = w.Write(b)
			return err
		default:
			return asm.WriteIndirect(w, res.Stream)
		}
	})
}

func convert(c *cli.Context) error {
	m, err := decodeImage(c.Args().First())
	if err != nil {
		return err
	}

	g := badapple.Prepare(m)
	newLogger(c).Printf("%s: %dx%d -> %dx%d\n", c.Args().First(), m.Bounds().Dx(), m.Bounds().Dy(), g.Bounds().Dx(), g.Bounds().Dy())

	return writeOutput(c.String("output"), func(w io.Writer) error {
		return pgm.Encode(w, g)
	})
}

func preview(c *cli.Context) error {
	m, err := decodeImage(c.Args().First())
	if err != nil {
		return err
	}

	f, err := frame.FromImage(m)
	if err != nil {
		return err
	}

	return writeOutput(c.String("output"), func(w io.Writer) error {
		return png.Encode(w, glyph.Pack(f).Image())
	})
}

// Wraps a subcommand with the argument check and exit code handling
func action(nargs int, fn cli.ActionFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() < nargs {
			cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
		}

		if err := fn(c); err != nil {
			return cli.NewExitError(err, 1)
		}

		return nil
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "badapple"
	app.Usage = "Bad Apple video encoder for the TRS-80"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	outputFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "write to `FILE` instead of standard output",
		}
	}

	app.Commands = []*cli.Command{
		{
			Name:        "encode",
			Usage:       "Encode frames for the TRS-80 player",
			Description: "Reads 128x48 plain PGM frames and writes an assembly listing or the raw stream",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "pattern",
					EnvVars: []string{"BADAPPLE_PATTERN"},
					Value:   badapple.DefaultPattern,
					Usage:   "printf pattern of frame files",
				},
				&cli.IntFlag{
					Name:  "first",
					Value: badapple.FirstFrame,
					Usage: "number of the first frame",
				},
				&cli.IntFlag{
					Name:  "count",
					Value: badapple.NumFrames,
					Usage: "number of frames",
				},
				&cli.StringFlag{
					Name:  "format",
					Value: formatIndirect,
					Usage: "output format: indirect, direct or raw",
				},
				&cli.BoolFlag{
					Name:  "verify",
					Usage: "decode each frame again and compare",
				},
				&cli.IntFlag{
					Name:  "workers",
					Value: 10,
					Usage: "frames encoded at once",
				},
				outputFlag(),
			},
			Action: action(0, encode),
		},
		{
			Name:        "convert",
			Usage:       "Convert an image to a frame",
			Description: "Scales a PNG, GIF, JPEG or PGM image to a 128x48 plain PGM frame",
			ArgsUsage:   "IMAGE",
			Flags:       []cli.Flag{outputFlag()},
			Action:      action(1, convert),
		},
		{
			Name:        "preview",
			Usage:       "Render a frame as the TRS-80 shows it",
			Description: "Writes a PNG of the graphics characters a 128x48 frame turns into",
			ArgsUsage:   "FRAME",
			Flags:       []cli.Flag{outputFlag()},
			Action:      action(1, preview),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
