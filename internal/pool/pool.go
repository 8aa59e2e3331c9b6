// Package pool implements the Worker Pool Driver: a fixed goroutine
// pool that pulls bundles off a shared atomic cursor, extracts each
// with its own scratch Pool, and aggregates any per-worker panic into
// a single reported error (§4.7).
package pool

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/qasikfwn/limn/internal/bundle"
	"github.com/qasikfwn/limn/internal/extext"
	"github.com/qasikfwn/limn/internal/extract"
	"github.com/qasikfwn/limn/internal/hash"
	"github.com/qasikfwn/limn/internal/oodle"
)

// Progress is called from a single goroutine as the run advances,
// roughly every 50ms; count is bundles fully processed so far.
type Progress func(count, total int)

// Run extracts every bundle in bundles across a fixed pool of
// numWorkers goroutines (minimum 1), returning the total number of
// files extracted. filter, when non-nil, restricts extraction to a
// single extension hash and enables duplicate tracking via dups; when
// nil every file is extracted and dups is left untouched.
func Run(bundles []BundleRef, numWorkers int, codec oodle.Decompressor, opts *extract.Options, filter *hash.Long, dups *Duplicates, onProgress Progress) (uint32, error) {
	if numWorkers < 1 {
		numWorkers = 1
	}

	var cursor atomic.Int64
	total := int64(len(bundles))

	var panicMu sync.Mutex
	var panics []panicInfo

	counts := make([]uint32, numWorkers)
	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func(widx int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panicMu.Lock()
					first := len(panics) == 0
					panics = append(panics, panicInfo{location: shortStackLocation(), message: fmt.Sprint(r)})
					panicMu.Unlock()
					if first {
						cursor.Store(total + int64(numWorkers))
					}
				}
			}()
			p := extract.NewPool()
			counts[widx] = workerLoop(bundles, &cursor, p, codec, opts, filter, dups)
		}(w)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()

	if onProgress != nil {
		reportProgress(done, &cursor, numWorkers, int(total), onProgress)
	} else {
		<-done
	}

	if len(panics) > 0 {
		return 0, aggregatePanics(panics)
	}

	var extracted uint32
	for _, c := range counts {
		extracted += c
	}
	return extracted, nil
}

func reportProgress(done <-chan struct{}, cursor *atomic.Int64, numWorkers, total int, onProgress Progress) {
	prevCount := -1
	prevTime := time.Now()
loop:
	for {
		select {
		case <-done:
			break loop
		case <-time.After(time.Millisecond):
			if time.Since(prevTime) < 50*time.Millisecond {
				continue
			}
			count := int(cursor.Load()) - numWorkers
			if count < 0 {
				count = 0
			}
			if count == prevCount {
				continue
			}
			prevCount = count
			prevTime = time.Now()
			if count < total {
				onProgress(count, total)
			}
		}
	}
}

func workerLoop(bundles []BundleRef, cursor *atomic.Int64, p *extract.Pool, codec oodle.Decompressor, opts *extract.Options, filter *hash.Long, dups *Duplicates) uint32 {
	var count uint32
	for {
		i := cursor.Add(1) - 1
		if i >= int64(len(bundles)) {
			return count
		}
		ref := bundles[i]
		n, err := extractOneBundle(ref, p, codec, opts, filter, dups)
		if err != nil {
			panic(fmt.Errorf("pool: bundle %016x (%s): %w", uint64(ref.Hash), ref.Path, err))
		}
		count += n
	}
}

func extractOneBundle(ref BundleRef, p *extract.Pool, codec oodle.Decompressor, opts *extract.Options, filter *hash.Long, dups *Duplicates) (uint32, error) {
	f, err := os.Open(ref.Path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec, err := bundle.Open(f, make([]byte, bundle.ChunkSize), codec)
	if err != nil {
		return 0, fmt.Errorf("open index: %w", err)
	}

	var targets []pairKey
	if filter != nil {
		for _, rec := range dec.Index() {
			n := dups.bump(rec.ExtHash, rec.NameHash)
			if n != 1 || rec.ExtHash != *filter {
				continue
			}
			if opts.SkipUnknown {
				_, known := opts.Dictionary.LookupLong(rec.NameHash)
				whitelisted := rec.ExtHash == extext.LuaHash || rec.ExtHash == extext.StringsHash
				if !known && !whitelisted {
					continue
				}
			}
			targets = append(targets, pairKey{rec.ExtHash, rec.NameHash})
		}
		if len(targets) == 0 {
			return 0, nil
		}
	}

	var extracted uint32
	ti := 0
	for {
		rec, entry, err := dec.NextFile()
		if err == io.EOF {
			break
		}
		if err != nil {
			return extracted, err
		}

		if opts.SkipUnknown {
			_, known := opts.Dictionary.LookupLong(rec.NameHash)
			whitelisted := rec.ExtHash == extext.LuaHash || rec.ExtHash == extext.StringsHash
			if !known && !whitelisted {
				continue
			}
		}

		if targets != nil {
			if ti >= len(targets) {
				break
			}
			want := targets[ti]
			if rec.ExtHash != want.Ext || rec.NameHash != want.Name {
				continue
			}
			ti++
		}

		if _, err := extract.Dispatch(rec.ExtHash, opts.RawOnly).Extract(*rec, entry, p, opts); err == nil {
			extracted++
		}

		if targets != nil && ti >= len(targets) {
			break
		}
	}
	return extracted, nil
}

type panicInfo struct {
	location string
	message  string
}

// shortStackLocation returns the first "file.go:line" entry in the
// current goroutine's stack trace below this function, a best-effort
// stand-in for the panic site.
func shortStackLocation() string {
	stack := string(debug.Stack())
	lines := strings.Split(stack, "\n")
	for i := 3; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if strings.HasSuffix(line, ")") || strings.Contains(line, ".go:") {
			if idx := strings.Index(line, ".go:"); idx >= 0 {
				return line
			}
		}
	}
	return ""
}

func aggregatePanics(panics []panicInfo) error {
	if len(panics) == 1 {
		return fmt.Errorf("%s\n%s", panics[0].location, panics[0].message)
	}

	same := true
	first := panics[0].location
	for _, p := range panics[1:] {
		if p.location != first {
			same = false
			break
		}
	}

	var b strings.Builder
	if same {
		fmt.Fprintf(&b, "  %s\n", first)
		for _, p := range panics {
			fmt.Fprintln(&b, p.message)
		}
	} else {
		b.WriteString("  panics:\n")
		for _, p := range panics {
			fmt.Fprintf(&b, "%s\n%s\n", p.location, p.message)
		}
	}
	return errors.New(b.String())
}
