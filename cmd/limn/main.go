// Command limn extracts files from Darktide resource bundles: chunked,
// Oodle-compressed archives addressed by a pair of 64-bit content
// hashes. See internal/bundle, internal/extract, and internal/pool for
// the decoder, format parsers, and parallel driver this wires together.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/qasikfwn/limn/internal/extext"
	"github.com/qasikfwn/limn/internal/extract"
	"github.com/qasikfwn/limn/internal/hash"
	"github.com/qasikfwn/limn/internal/oodle"
	"github.com/qasikfwn/limn/internal/pool"
	"github.com/qasikfwn/limn/internal/scopedfs"
)

func main() {
	a := parseArgs(os.Args[1:])

	dict := loadDictionary("dictionary.txt")

	bundleDir := a.target
	if info, err := os.Stat(a.target); err == nil && !info.IsDir() {
		bundleDir = filepath.Dir(a.target)
	}

	codec, err := loadOodle(bundleDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "oo2core_9_win64.dll could not be loaded")
		fmt.Fprintln(os.Stderr, "copy the dll from the Darktide binaries folder next to limn")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var filterExt *hash.Long
	if a.filterSet {
		h := extext.HashOf(a.filterExt)
		if a.filterExt == "" {
			h = 0
		}
		filterExt = &h
	}

	writer, err := scopedfs.NewDisk("./out")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not create output directory: %v\n", err)
		os.Exit(1)
	}

	opts := &extract.Options{
		Dictionary:  dict,
		SkipUnknown: dict.Loaded(),
		RawOnly:     a.dumpRaw,
		Writer:      writer,
	}

	bundles, err := discoverBundles(a.target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	numWorkers := runtime.NumCPU() - 1
	if numWorkers < 1 {
		numWorkers = 1
	}

	dups := pool.NewDuplicates()
	start := time.Now()
	extracted, err := pool.Run(bundles, numWorkers, codec, opts, filterExt, dups, func(count, total int) {
		fmt.Println(count)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, err)
		fmt.Println("did not finish due to errors")
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("DONE")
	elapsed := time.Since(start).Milliseconds()
	fmt.Printf("took %d.%ds\n", elapsed/1000, elapsed%1000)
	if !a.dumpRaw || filterExt == nil || *filterExt != 0 {
		fmt.Printf("extracted %d files\n", extracted)
	}

	if a.dumpHashes {
		f, err := os.Create("hashes.bin")
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: could not write hashes.bin: %v\n", err)
			os.Exit(1)
		}
		var dumpFilter *hash.Long
		if filterExt != nil && *filterExt != 0 {
			dumpFilter = filterExt
		}
		n, err := dups.DumpHashes(f, dumpFilter)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: could not write hashes.bin: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d file extension and name hashes written to \"hashes.bin\"\n", n)
	}
}

func loadDictionary(path string) *hash.Dictionary {
	f, err := os.Open(path)
	if err != nil {
		return hash.Empty()
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return hash.NewDictionary(lines)
}

// loadOodle tries oo2core_9_win64.dll, then falls back to
// oo2core_8_win64.dll, each resolved via the canonical-name /
// ../binaries / game-install search order (internal/oodle.Resolve).
func loadOodle(bundleDir string) (oodle.Decompressor, error) {
	dec, err9 := oodle.Resolve("oo2core_9_win64.dll", bundleDir, "", oodle.Load)
	if err9 == nil {
		return dec, nil
	}
	dec, err8 := oodle.Resolve("oo2core_8_win64.dll", bundleDir, "", oodle.Load)
	if err8 == nil {
		return dec, nil
	}
	return nil, err9
}

// discoverBundles resolves the target into a list of bundle files:
// every extensionless, hex-named file directly under target if it's a
// directory, or target itself if it's a single bundle file.
func discoverBundles(target string) ([]pool.BundleRef, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("PATH argument was invalid: %w", err)
	}

	if !info.IsDir() {
		h, ok := pool.HashFromFilename(target)
		if !ok {
			h = 0
		}
		return []pool.BundleRef{{Path: target, Hash: h}}, nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, err
	}

	var bundles []pool.BundleRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != "" {
			continue
		}
		if h, ok := pool.HashFromFilename(name); ok {
			bundles = append(bundles, pool.BundleRef{Path: filepath.Join(target, name), Hash: h})
		}
	}
	return bundles, nil
}
