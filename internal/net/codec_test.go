package net

import (
	"bytes"
	"testing"
)

func TestFramesSurviveAStream(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, []byte{2, 1, 0}); err != nil {
		t.Fatal(err)
	}
	if err := WriteFrame(&buf, []byte{4}); err != nil {
		t.Fatal(err)
	}
	if got := buf.Bytes()[:2]; got[0] != 5 || got[1] != 0 {
		t.Fatalf("length header = % x, want total length 5", got)
	}

	first, err := ReadFrame(&buf)
	if err != nil || !bytes.Equal(first, []byte{2, 1, 0}) {
		t.Fatalf("first frame = % x, %v", first, err)
	}
	second, err := ReadFrame(&buf)
	if err != nil || !bytes.Equal(second, []byte{4}) {
		t.Fatalf("second frame = % x, %v", second, err)
	}
	if _, err := ReadFrame(&buf); err == nil {
		t.Fatal("expected error on empty stream")
	}
}

func TestReadFrameRejectsEmptyPayload(t *testing.T) {
	if _, err := ReadFrame(bytes.NewReader([]byte{2, 0})); err == nil {
		t.Fatal("expected error for zero-length payload")
	}
	if err := WriteFrame(&bytes.Buffer{}, nil); err == nil {
		t.Fatal("expected error writing empty payload")
	}
}
