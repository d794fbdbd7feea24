// Command typetrace-verify checks a saved typing recorder log.
//
// It parses the header and every data line, and reports the record
// count and time span. A malformed file fails with a nonzero exit
// status, making the tool usable from scripts.
//
// Usage:
//
//	typetrace-verify [flags] <log.txt>
//
// Examples:
//
//	# Basic check
//	typetrace-verify typing-log.txt
//
//	# Machine-readable output
//	typetrace-verify -format json typing-log.txt
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"typetrace/internal/export"
)

// Version information (set at build time).
var version = "dev"

type report struct {
	File      string `json:"file"`
	Generated string `json:"generated"`
	Records   int    `json:"records"`
	First     string `json:"first,omitempty"`
	Last      string `json:"last,omitempty"`
}

func main() {
	formatStr := flag.String("format", "text", "output format: text, json")
	output := flag.String("output", "", "output file (default: stdout)")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("typetrace-verify %s\n", version)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: typetrace-verify [flags] <log.txt>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	parsed, err := export.ParseFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "typetrace-verify: %s: %v\n", path, err)
		os.Exit(1)
	}

	r := report{
		File:      path,
		Generated: parsed.Generated,
		Records:   len(parsed.Lines),
	}
	if len(parsed.Lines) > 0 {
		r.First = parsed.Lines[0].Timestamp
		r.Last = parsed.Lines[len(parsed.Lines)-1].Timestamp
	}

	var out io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "typetrace-verify: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	switch *formatStr {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			fmt.Fprintf(os.Stderr, "typetrace-verify: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(out, "File:      %s\n", r.File)
		fmt.Fprintf(out, "Generated: %s\n", r.Generated)
		fmt.Fprintf(out, "Records:   %d\n", r.Records)
		if r.Records > 0 {
			fmt.Fprintf(out, "First:     %s\n", r.First)
			fmt.Fprintf(out, "Last:      %s\n", r.Last)
		}
	}
}
