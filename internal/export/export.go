// Package export writes and reads the typing recorder log file format.
//
// The format is plain UTF-8 text: a three-line comment header, a blank
// line, then one tab-separated line per record in capture order:
//
//	# Typing Recorder Log
//	# Generated: <ISO-8601 timestamp>
//	# Columns: timestamp | keysym | char (char empty if non-printable)
//
//	<timestamp>\t<keysym>\t<char>
//
// No escaping is needed inside the char column: it is constrained to a
// single printable character, never a tab or newline.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"typetrace/internal/keyevent"
)

// Header lines, minus the generation timestamp.
const (
	headerTitle   = "# Typing Recorder Log"
	headerColumns = "# Columns: timestamp | keysym | char (char empty if non-printable)"
)

// Save writes the records to path, in order, using generated for the
// header timestamp. The destination file is created or truncated. Any
// I/O failure is returned to the caller; nothing in memory is touched.
func Save(path string, generated time.Time, records []keyevent.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Write(f, generated, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Write emits the log format to w.
func Write(w io.Writer, generated time.Time, records []keyevent.Record) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, headerTitle)
	fmt.Fprintf(bw, "# Generated: %s\n", generated.Format(time.RFC3339))
	fmt.Fprintln(bw, headerColumns)
	fmt.Fprintln(bw)

	for _, r := range records {
		fmt.Fprintf(bw, "%s\t%s\t%s\n", r.Timestamp(), r.Keysym, r.Char)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// Line is one parsed data line of a log file. Fields are kept as the
// raw strings from the file.
type Line struct {
	Timestamp string
	Keysym    string
	Char      string
}

// Log is a parsed log file.
type Log struct {
	Generated string
	Lines     []Line
}

// Parse reads a log file and returns its header metadata and data
// lines in file order. It is strict about the format Save produces.
func Parse(r io.Reader) (*Log, error) {
	sc := bufio.NewScanner(r)
	log := &Log{}

	// Header.
	if !sc.Scan() || sc.Text() != headerTitle {
		return nil, fmt.Errorf("missing title line %q", headerTitle)
	}
	if !sc.Scan() || !strings.HasPrefix(sc.Text(), "# Generated: ") {
		return nil, fmt.Errorf("missing generation line")
	}
	log.Generated = strings.TrimPrefix(sc.Text(), "# Generated: ")
	if !sc.Scan() || sc.Text() != headerColumns {
		return nil, fmt.Errorf("missing columns line")
	}
	if !sc.Scan() || sc.Text() != "" {
		return nil, fmt.Errorf("missing blank separator line")
	}

	lineno := 4
	for sc.Scan() {
		lineno++
		text := sc.Text()
		fields := strings.Split(text, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: want 3 tab-separated fields, got %d", lineno, len(fields))
		}
		if _, err := time.Parse(keyevent.TimeLayout, fields[0]); err != nil {
			return nil, fmt.Errorf("line %d: bad timestamp %q: %w", lineno, fields[0], err)
		}
		log.Lines = append(log.Lines, Line{
			Timestamp: fields[0],
			Keysym:    fields[1],
			Char:      fields[2],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return log, nil
}

// ParseFile opens and parses the log file at path.
func ParseFile(path string) (*Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}
