// Package wire implements the framed-record codec spoken between the
// connector and the reporter process on loopback.
//
// A framed record is the 2-byte protocol version followed by six
// length-prefixed byte strings. All integers are little-endian; the
// deployed receiver decodes fixed-width integers little-endian, so this
// is the only order that is wire-compatible with it.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ProtocolVersion is the framed-record layout revision. Bump whenever
// the field set or encoding changes.
const ProtocolVersion uint16 = 0

// AnswerCode is the receiver's 2-byte reply to one framed record.
// Values outside the known set are receiver-defined and passed through
// to callers unchanged.
type AnswerCode uint16

const (
	AnswerOK            AnswerCode = 0
	AnswerWrongProtocol AnswerCode = 1
)

func (c AnswerCode) String() string {
	switch c {
	case AnswerOK:
		return "ok"
	case AnswerWrongProtocol:
		return "wrong_protocol"
	default:
		return fmt.Sprintf("receiver_code_%d", uint16(c))
	}
}

var (
	ErrStringTooLong  = errors.New("wire: string exceeds u16 length prefix")
	ErrStringTooLarge = errors.New("wire: incoming string exceeds limit")
	ErrShortVersion   = errors.New("wire: short protocol version")
	ErrShortLength    = errors.New("wire: short length prefix")
	ErrShortPayload   = errors.New("wire: short string payload")
	ErrShortAnswer    = errors.New("wire: short answer code")

	// ErrVersionMismatch marks a framed record whose version word does
	// not match ProtocolVersion. Receiver side only; the connector
	// learns of a mismatch through AnswerWrongProtocol.
	ErrVersionMismatch = errors.New("wire: protocol version mismatch")
)

// WriteVersion writes the 2-byte protocol version.
func WriteVersion(w io.Writer) error {
	if err := writeU16(w, ProtocolVersion); err != nil {
		return fmt.Errorf("%w: %v", ErrShortVersion, err)
	}
	return nil
}

// ReadVersion reads the 2-byte protocol version sent by a connector.
func ReadVersion(r io.Reader) (uint16, error) {
	v, err := readU16(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrShortVersion, err)
	}
	return v, nil
}

// WriteString writes the 2-byte length prefix followed by the raw
// bytes. A zero-length string emits the prefix and no payload.
func WriteString(w io.Writer, b []byte) error {
	if len(b) > math.MaxUint16 {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(b))
	}
	if err := writeU16(w, uint16(len(b))); err != nil {
		return fmt.Errorf("%w: %v", ErrShortLength, err)
	}
	if len(b) == 0 {
		return nil
	}
	n, err := w.Write(b)
	if err != nil {
		return fmt.Errorf("%w: sent %d while expected %d: %v", ErrShortPayload, n, len(b), err)
	}
	return nil
}

// ReadString reads one length-prefixed string, rejecting payloads over
// max bytes before allocating.
func ReadString(r io.Reader, max int) ([]byte, error) {
	length, err := readU16(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShortLength, err)
	}
	if int(length) > max {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrStringTooLarge, length, max)
	}
	if length == 0 {
		return []byte{}, nil
	}
	buf := make([]byte, length)
	if n, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: received %d while expected %d", ErrShortPayload, n, length)
	}
	return buf, nil
}

// WriteAnswerCode writes the receiver's 2-byte reply.
func WriteAnswerCode(w io.Writer, code AnswerCode) error {
	if err := writeU16(w, uint16(code)); err != nil {
		return fmt.Errorf("%w: %v", ErrShortAnswer, err)
	}
	return nil
}

// ReadAnswerCode reads exactly the 2-byte reply; anything less is a
// short-answer error carrying the received count.
func ReadAnswerCode(r io.Reader) (AnswerCode, error) {
	var buf [2]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, fmt.Errorf("%w: received %d while expected %d", ErrShortAnswer, n, len(buf))
	}
	return AnswerCode(binary.LittleEndian.Uint16(buf[:])), nil
}

func writeU16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	n, err := w.Write(buf[:])
	if err != nil {
		return fmt.Errorf("sent %d while expected %d: %v", n, len(buf), err)
	}
	return nil
}

func readU16(r io.Reader) (uint16, error) {
	var buf [2]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return 0, fmt.Errorf("received %d while expected %d", n, len(buf))
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}
