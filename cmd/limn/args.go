package main

import (
	"fmt"
	"os"
)

const helpText = `limn extracts files from resource bundles used in Darktide.

limn uses oo2core_9_win64.dll to decompress bundles. If it fails to load,
copy oo2core_9_win64.dll from the Darktide binaries folder next to limn.

USAGE:
limn [OPTIONS] <FILTER>

ARGS:
    <FILTER>  Extract files with matching extension. Supports "*" as a wildcard.

OPTIONS:
        --dump-hashes         Dump file extension and name hashes.
        --dump-raw            Extract files without converting contents.
    -i, --input <PATH>        Bundle or directory of bundles to extract.
    -f, --filter <FILTER>     Only extract files with matching extension.
        --help                Show this help text.
`

// args holds limn's parsed command-line configuration (original_source/src/main.rs Args).
type args struct {
	dumpHashes bool
	dumpRaw    bool

	target string

	filterSet bool
	filterExt string // raw extension string; "" and filterSet==false means no filter
}

// parseArgs hand-rolls dual short/long flag parsing plus a bare
// positional filter argument, which the standard flag package can't
// express (original_source/src/main.rs parse_args).
func parseArgs(argv []string) args {
	var a args
	var sawAny bool

	i := 0
	next := func(opt string) string {
		i++
		if i >= len(argv) {
			fmt.Fprintf(os.Stderr, "ERROR: missing parameter to %s\n", opt)
			os.Exit(1)
		}
		return argv[i]
	}

	for ; i < len(argv); i++ {
		sawAny = true
		opt := argv[i]
		switch opt {
		case "--dump-hashes":
			a.dumpHashes = true
		case "--dump-raw":
			a.dumpRaw = true
		case "-i", "--input":
			a.target = next(opt)
		case "--help":
			fmt.Print(helpText)
			os.Exit(0)
		case "-f", "--filter":
			ext := next(opt)
			setFilter(&a, ext)
		default:
			if len(opt) > 0 && opt[0] == '-' {
				fmt.Fprintf(os.Stderr, "WARN: unknown option %s\n", opt)
				continue
			}
			setFilter(&a, opt)
		}
	}

	if !sawAny {
		fmt.Print(helpText)
		os.Exit(0)
	}

	if a.dumpHashes && !a.filterSet {
		a.filterSet = true
		a.filterExt = ""
	}

	return a
}

func setFilter(a *args, ext string) {
	if a.filterSet {
		fmt.Fprintf(os.Stderr, "WARN: filter is already set, ignoring %q\n", ext)
		return
	}
	if ext == "*" {
		return
	}
	a.filterSet = true
	a.filterExt = ext
}
