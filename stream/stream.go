/*
Package stream holds the encoded frames of a whole video as played by the
TRS-80.

The stream is the frame records, each ending with its own zero byte, one
after another in playback order. One more zero byte follows the last frame;
the player sees it as an empty frame and stops.
*/
package stream

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/lkesteloot/bad-apple-trs-80/compact"
)

// Frame is the compact encoding of one source frame, terminator included.
// Index is the number of the source frame it was made from.
type Frame struct {
	Index int
	Data  []byte
}

// Stream is a sequence of encoded frames. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Stream struct {
	Frames []Frame
}

// Add appends a frame record. The record must end with the terminator.
func (s *Stream) Add(index int, data []byte) error {
	if len(data) == 0 || data[len(data)-1] != compact.Terminator {
		return fmt.Errorf("stream: frame %d is not terminated", index)
	}
	if bytes.IndexByte(data, compact.Terminator) != len(data)-1 {
		return fmt.Errorf("stream: frame %d has an early terminator", index)
	}
	s.Frames = append(s.Frames, Frame{Index: index, Data: data})
	return nil
}

// Len returns the number of frames.
func (s *Stream) Len() int {
	return len(s.Frames)
}

// Size returns the length in bytes of the marshalled stream.
func (s *Stream) Size() int {
	n := 1
	for _, f := range s.Frames {
		n += len(f.Data)
	}
	return n
}

// MarshalBinary encodes the stream as read by the player
func (s *Stream) MarshalBinary() ([]byte, error) {
	b := bytes.NewBuffer(make([]byte, 0, s.Size()))

	for _, f := range s.Frames {
		if len(f.Data) == 0 || f.Data[len(f.Data)-1] != compact.Terminator {
			return nil, fmt.Errorf("stream: frame %d is not terminated", f.Index)
		}
		if _, err := b.Write(f.Data); err != nil {
			return nil, err
		}
	}

	// End of stream
	if err := b.WriteByte(compact.Terminator); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// UnmarshalBinary splits b back into frames, numbering them from zero
func (s *Stream) UnmarshalBinary(b []byte) error {
	s.Frames = nil

	for i := 0; ; i++ {
		if len(b) == 0 {
			return errors.New("stream: missing end of stream")
		}
		if b[0] == compact.Terminator {
			if len(b) > 1 {
				return errors.New("stream: data after end of stream")
			}
			return nil
		}

		_, n, err := compact.Decode(b)
		if err != nil {
			return fmt.Errorf("stream: frame %d: %w", i, err)
		}
		s.Frames = append(s.Frames, Frame{Index: i, Data: append([]byte(nil), b[:n]...)})
		b = b[n:]
	}
}
