package protocol

import (
	"fmt"
	"io"

	"github.com/feather-dev/feather/internal/errors"
)

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FrameEvent     FrameType = 0x01 // Viewer → server events
	FrameMutations FrameType = 0x02 // Server → viewer mutation batches
	FrameError     FrameType = 0x05 // Error message
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameEvent:
		return "Event"
	case FrameMutations:
		return "Mutations"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Frame is one protocol message.
type Frame struct {
	Type    FrameType
	Payload []byte
}

// Encode encodes the frame including its header.
func (f *Frame) Encode() []byte {
	e := &Encoder{buf: make([]byte, 0, len(f.Payload)+4)}
	f.EncodeTo(e)
	return e.Bytes()
}

// EncodeTo encodes the frame using the provided encoder.
func (f *Frame) EncodeTo(e *Encoder) {
	e.WriteByte(byte(f.Type))
	e.WriteUvarint(uint64(len(f.Payload)))
	e.WriteBytes(f.Payload)
}

// DecodeFrame decodes one frame. Trailing bytes are an error.
func DecodeFrame(data []byte) (*Frame, error) {
	d := NewDecoder(data)
	ft, err := d.ReadByte()
	if err != nil {
		return nil, malformed("frame header", err)
	}
	switch FrameType(ft) {
	case FrameEvent, FrameMutations, FrameError:
	default:
		return nil, malformed("frame header", fmt.Errorf("unknown frame type 0x%02x", ft))
	}
	length, err := d.ReadUvarint()
	if err != nil {
		return nil, malformed("frame header", err)
	}
	if length != uint64(d.Remaining()) {
		return nil, malformed("frame payload", io.ErrUnexpectedEOF)
	}
	payload, _ := d.ReadBytes(int(length))
	return &Frame{Type: FrameType(ft), Payload: append([]byte(nil), payload...)}, nil
}

// ErrorFrame builds a FrameError carrying msg.
func ErrorFrame(msg string) *Frame {
	e := NewEncoder()
	e.WriteString(msg)
	return &Frame{Type: FrameError, Payload: e.Bytes()}
}

// DecodeErrorMessage returns the message of a FrameError payload.
func DecodeErrorMessage(payload []byte) (string, error) {
	s, err := NewDecoder(payload).ReadString()
	if err != nil {
		return "", malformed("error frame", err)
	}
	return s, nil
}

func malformed(what string, err error) error {
	return errors.New("E301").WithDetail("invalid " + what).Wrap(err)
}
