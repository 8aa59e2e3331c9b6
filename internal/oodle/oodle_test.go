package oodle

import (
	"errors"
	"testing"
)

func TestFakeCodecRoundTrip(t *testing.T) {
	src := []byte("hello")
	dst := make([]byte, 5)
	var codec FakeCodec
	n, err := codec.Decompress(src, dst)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if n != len(src) || string(dst) != "hello" {
		t.Fatalf("got %q (%d bytes)", dst[:n], n)
	}
}

func TestFakeCodecDstTooSmall(t *testing.T) {
	var codec FakeCodec
	_, err := codec.Decompress([]byte("hello"), make([]byte, 2))
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestCandidatePaths(t *testing.T) {
	paths := CandidatePaths("oo2core_9_win64.dll", "/game/bundle", "/game/install")
	if len(paths) != 3 {
		t.Fatalf("expected 3 candidates, got %d: %v", len(paths), paths)
	}
	if paths[0] != "oo2core_9_win64.dll" {
		t.Fatalf("first candidate should be the bare name, got %q", paths[0])
	}
}

func TestResolveFallsThroughCandidates(t *testing.T) {
	attempts := 0
	_, err := Resolve("missing.dll", "", "", func(path string) (Decompressor, error) {
		attempts++
		return nil, errors.New("not found")
	})
	if err == nil {
		t.Fatalf("expected failure")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt for bare name with no fallback dirs, got %d", attempts)
	}
}

func TestResolveSucceedsOnBareName(t *testing.T) {
	dec, err := Resolve("identity", "", "", func(path string) (Decompressor, error) {
		return FakeCodec{}, nil
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if dec == nil {
		t.Fatalf("expected a decompressor")
	}
}
