package frame

import (
	"bytes"
	"encoding/binary"
	"testing"

	"main/pkg/exception"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteString(&buf, "strategy_{\"code\":\"0001\"}"); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	if err := WriteString(&buf, "ping"); err != nil {
		t.Fatalf("write frame: %v", err)
	}

	first, err := Read(&buf)
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if string(first) != "strategy_{\"code\":\"0001\"}" {
		t.Fatalf("payload mismatch: %q", first)
	}

	second, err := Read(&buf)
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if string(second) != "ping" {
		t.Fatalf("payload mismatch: %q", second)
	}
}

func TestFrameEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatalf("write empty frame: %v", err)
	}
	payload, err := Read(&buf)
	if err != nil {
		t.Fatalf("read empty frame: %v", err)
	}
	if len(payload) != 0 {
		t.Fatalf("payload mismatch: %q", payload)
	}
}

func TestFrameSizeLimit(t *testing.T) {
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], MaxFrameSize+1)
	_, err := Read(bytes.NewReader(header[:]))
	if err != exception.ErrFrameTooLarge {
		t.Fatalf("oversized header: got %v want ErrFrameTooLarge", err)
	}
}

func TestFrameClosedStream(t *testing.T) {
	if _, err := Read(bytes.NewReader(nil)); err != exception.ErrConnectionClose {
		t.Fatalf("exhausted stream: got %v want ErrConnectionClose", err)
	}
}

func TestFrameTruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteString(&buf, "abcdef"); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	truncated := buf.Bytes()[:buf.Len()-2]
	if _, err := Read(bytes.NewReader(truncated)); err == nil {
		t.Fatal("truncated payload must fail")
	}
}
