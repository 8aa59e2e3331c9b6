package chunkio

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReadExactAcrossRefills(t *testing.T) {
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i)
	}
	src := bytes.NewReader(data)
	buf := make([]byte, 64) // small window, forces several refills
	r := New(src, buf)

	got := make([]byte, len(data))
	if err := r.ReadExact(got); err != nil {
		t.Fatalf("ReadExact: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("data mismatch")
	}
}

func TestReadU32LE(t *testing.T) {
	src := bytes.NewReader([]byte{0x78, 0x56, 0x34, 0x12})
	r := New(src, make([]byte, 16))
	v, err := r.ReadU32LE()
	if err != nil {
		t.Fatalf("ReadU32LE: %v", err)
	}
	if v != 0x12345678 {
		t.Fatalf("got %#x, want 0x12345678", v)
	}
}

func TestReadU64LE(t *testing.T) {
	src := bytes.NewReader([]byte{1, 0, 0, 0, 0, 0, 0, 0})
	r := New(src, make([]byte, 16))
	v, err := r.ReadU64LE()
	if err != nil {
		t.Fatalf("ReadU64LE: %v", err)
	}
	if v != 1 {
		t.Fatalf("got %d, want 1", v)
	}
}

func TestSeekInvalidatesWindow(t *testing.T) {
	data := []byte("hello world this is a test string")
	src := bytes.NewReader(data)
	r := New(src, make([]byte, 8))

	head := make([]byte, 5)
	if err := r.ReadExact(head); err != nil {
		t.Fatalf("ReadExact: %v", err)
	}
	if string(head) != "hello" {
		t.Fatalf("got %q", head)
	}

	if err := r.Seek(6); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	rest := make([]byte, 5)
	if err := r.ReadExact(rest); err != nil {
		t.Fatalf("ReadExact after seek: %v", err)
	}
	if string(rest) != "world" {
		t.Fatalf("got %q", rest)
	}
}

func TestReadExactShortReturnsUnexpectedEOF(t *testing.T) {
	src := bytes.NewReader([]byte{1, 2, 3})
	r := New(src, make([]byte, 16))
	err := r.ReadExact(make([]byte, 10))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected wrapped io.ErrUnexpectedEOF, got %v", err)
	}
}
