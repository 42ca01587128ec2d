package wire

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriteVersionBytes(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVersion(&buf); err != nil {
		t.Fatalf("write version: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0x00, 0x00}) {
		t.Fatalf("unexpected version bytes: %x", buf.Bytes())
	}
}

func TestWriteStringLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteString(&buf, []byte("abc")); err != nil {
		t.Fatalf("write string: %v", err)
	}
	want := []byte{0x03, 0x00, 'a', 'b', 'c'}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("unexpected layout: got=%x want=%x", buf.Bytes(), want)
	}
}

func TestWriteStringEmptyEmitsPrefixOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteString(&buf, nil); err != nil {
		t.Fatalf("write empty string: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0x00, 0x00}) {
		t.Fatalf("unexpected empty layout: %x", buf.Bytes())
	}
}

func TestWriteStringTooLong(t *testing.T) {
	err := WriteString(&bytes.Buffer{}, bytes.Repeat([]byte{'x'}, 65536))
	if !errors.Is(err, ErrStringTooLong) {
		t.Fatalf("expected ErrStringTooLong, got %v", err)
	}
}

func TestReadStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteString(&buf, []byte("e@e")); err != nil {
		t.Fatalf("write string: %v", err)
	}
	got, err := ReadString(&buf, 100)
	if err != nil {
		t.Fatalf("read string: %v", err)
	}
	if string(got) != "e@e" {
		t.Fatalf("unexpected value: %q", string(got))
	}
}

func TestReadStringOverLimit(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteString(&buf, bytes.Repeat([]byte{'x'}, 101)); err != nil {
		t.Fatalf("write string: %v", err)
	}
	_, err := ReadString(&buf, 100)
	if !errors.Is(err, ErrStringTooLarge) {
		t.Fatalf("expected ErrStringTooLarge, got %v", err)
	}
}

func TestReadStringShortPayload(t *testing.T) {
	// Prefix promises 5 bytes, only 2 follow.
	_, err := ReadString(bytes.NewReader([]byte{0x05, 0x00, 'a', 'b'}), 100)
	if !errors.Is(err, ErrShortPayload) {
		t.Fatalf("expected ErrShortPayload, got %v", err)
	}
}

func TestAnswerCodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAnswerCode(&buf, AnswerWrongProtocol); err != nil {
		t.Fatalf("write answer: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0x01, 0x00}) {
		t.Fatalf("unexpected answer bytes: %x", buf.Bytes())
	}
	code, err := ReadAnswerCode(&buf)
	if err != nil {
		t.Fatalf("read answer: %v", err)
	}
	if code != AnswerWrongProtocol {
		t.Fatalf("unexpected code: %v", code)
	}
}

func TestReadAnswerCodeShort(t *testing.T) {
	_, err := ReadAnswerCode(bytes.NewReader([]byte{0x00}))
	if !errors.Is(err, ErrShortAnswer) {
		t.Fatalf("expected ErrShortAnswer, got %v", err)
	}
	if !strings.Contains(err.Error(), "received 1 while expected 2") {
		t.Fatalf("diagnostic missing counts: %v", err)
	}
}

func TestAnswerCodeString(t *testing.T) {
	if AnswerOK.String() != "ok" {
		t.Fatalf("unexpected: %q", AnswerOK.String())
	}
	if AnswerWrongProtocol.String() != "wrong_protocol" {
		t.Fatalf("unexpected: %q", AnswerWrongProtocol.String())
	}
	if AnswerCode(7).String() != "receiver_code_7" {
		t.Fatalf("unexpected: %q", AnswerCode(7).String())
	}
}
