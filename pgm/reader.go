package pgm

import (
	"bufio"
	"errors"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrFormat is returned when a header line does not match the
	// expected form.
	ErrFormat = errors.New("pgm: invalid format")

	errNotEnough = errors.New("pgm: not enough image data")
	errTooMuch   = errors.New("pgm: too much image data")
	errRange     = errors.New("pgm: sample out of range")
)

func init() {
	image.RegisterFormat("pgm", magic, Decode, DecodeConfig)
}

// Parse a canonical non-negative decimal, so "0128" or "+5" don't pass
func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || strconv.Itoa(n) != s {
		return 0, false
	}
	return n, true
}

type decoder struct {
	r *bufio.Reader

	header Header
	image  *image.Gray
}

func (d *decoder) readLine() (string, error) {
	s, err := d.r.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return "", ErrFormat
		}
		return "", err
	}
	return strings.TrimSuffix(s, "\n"), nil
}

func (d *decoder) readHeader() error {
	tag, err := d.readLine()
	if err != nil {
		return err
	}
	if tag != magic {
		return ErrFormat
	}

	dims, err := d.readLine()
	if err != nil {
		return err
	}
	parts := strings.Split(dims, " ")
	if len(parts) != 2 {
		return ErrFormat
	}
	var ok bool
	if d.header.Width, ok = atoi(parts[0]); !ok || d.header.Width == 0 {
		return ErrFormat
	}
	if d.header.Height, ok = atoi(parts[1]); !ok || d.header.Height == 0 {
		return ErrFormat
	}

	max, err := d.readLine()
	if err != nil {
		return err
	}
	if d.header.MaxValue, ok = atoi(max); !ok || d.header.MaxValue == 0 || d.header.MaxValue > maxLimit {
		return ErrFormat
	}

	return nil
}

func (d *decoder) readSamples() error {
	d.image = image.NewGray(image.Rect(0, 0, d.header.Width, d.header.Height))

	s := bufio.NewScanner(d.r)
	s.Split(bufio.ScanWords)

	max := d.header.MaxValue
	for i := range d.image.Pix {
		if !s.Scan() {
			if err := s.Err(); err != nil {
				return err
			}
			return errNotEnough
		}
		v, ok := atoi(s.Text())
		if !ok {
			return ErrFormat
		}
		if v > max {
			return errRange
		}
		if max != MaxValue {
			v = (v*MaxValue + max/2) / max
		}
		d.image.Pix[i] = uint8(v)
	}

	if s.Scan() {
		return errTooMuch
	}

	return s.Err()
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = bufio.NewReader(r)

	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	return d.readSamples()
}

// Decode reads a PGM file from r and returns it as an image.Image. The
// concrete type is *image.Gray with samples scaled to 0-255.
func Decode(r io.Reader) (image.Image, error) {
	_, m, err := DecodeGray(r)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeGray reads a PGM file from r and returns both the header as it was
// written in the file and the decoded image.
func DecodeGray(r io.Reader) (Header, *image.Gray, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return Header{}, nil, err
	}
	return d.header, d.image, nil
}

// DecodeConfig returns the color model and dimensions of a PGM file without
// decoding the samples.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.GrayModel,
		Width:      d.header.Width,
		Height:     d.header.Height,
	}, nil
}
