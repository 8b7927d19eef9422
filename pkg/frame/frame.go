// Package frame reads and writes length-prefixed messages: a 4-byte
// big-endian payload length followed by the payload bytes.
package frame

import (
	"encoding/binary"
	"io"

	"main/pkg/exception"
)

// MaxFrameSize bounds a single payload. Frames carry short control
// strings and serialized signals, so anything larger is a broken or
// hostile peer.
const MaxFrameSize = 1 << 20

// Read consumes one frame from r and returns its payload. A stream
// that ends cleanly between frames reports ErrConnectionClose.
func Read(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF {
			return nil, exception.ErrConnectionClose
		}
		return nil, err
	}

	size := binary.BigEndian.Uint32(header[:])
	if size > MaxFrameSize {
		return nil, exception.ErrFrameTooLarge
	}
	if size == 0 {
		return nil, nil
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Write emits one frame containing payload to w.
func Write(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return exception.ErrFrameTooLarge
	}

	buf := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[4:], payload)

	_, err := w.Write(buf)
	return err
}

// WriteString emits one frame containing the string payload.
func WriteString(w io.Writer, payload string) error {
	return Write(w, []byte(payload))
}
