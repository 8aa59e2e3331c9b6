package scopedfs

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDiskWritesUnderRoot(t *testing.T) {
	root := t.TempDir()
	d, err := NewDisk(root)
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}

	n, err := d.Open("sub/dir/file.bin", func(w io.Writer) (int64, error) {
		nn, err := w.Write([]byte("hello"))
		return int64(nn), err
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if n != 5 {
		t.Fatalf("got %d bytes written, want 5", n)
	}

	got, err := os.ReadFile(filepath.Join(root, "sub/dir/file.bin"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("got %q", got)
	}
}

func TestDiskPanicsOnPathEscape(t *testing.T) {
	root := t.TempDir()
	d, err := NewDisk(root)
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on path escaping root")
		}
	}()
	_, _ = d.Open("../escape.bin", func(w io.Writer) (int64, error) { return 0, nil })
}

func TestNullDiscardsWrites(t *testing.T) {
	var n Null
	written, err := n.Open("anything", func(w io.Writer) (int64, error) {
		nn, err := w.Write([]byte("discarded"))
		return int64(nn), err
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if written != 9 {
		t.Fatalf("got %d, want 9", written)
	}
}

func TestCallbackReceivesBufferedData(t *testing.T) {
	var got []byte
	var gotPath string
	cb := &Callback{Func: func(relPath string, data []byte) error {
		gotPath = relPath
		got = append([]byte(nil), data...)
		return nil
	}}

	_, err := cb.Open("foo/bar.json", func(w io.Writer) (int64, error) {
		nn, err := w.Write([]byte(`{"a":1}`))
		return int64(nn), err
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if gotPath != "foo/bar.json" {
		t.Fatalf("got path %q", gotPath)
	}
	if string(got) != `{"a":1}` {
		t.Fatalf("got %q", got)
	}
}
