package walk

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// probeSize is the leading byte sample used to classify a file as binary.
const probeSize = 1024

// decodeStrategy is one step of the ordered decode chain: strict UTF-8
// first, then a permissive single-byte fallback. First success wins.
type decodeStrategy struct {
	warning string // emitted before the content when this fallback is used
	decode  func([]byte) (string, bool)
}

var decodeStrategies = []decodeStrategy{
	{
		warning: "",
		decode: func(b []byte) (string, bool) {
			if utf8.Valid(b) {
				return string(b), true
			}
			return "", false
		},
	},
	{
		warning: "[WARNING: Could not read as UTF-8, read as Latin-1]\n",
		decode: func(b []byte) (string, bool) {
			s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
			if err != nil {
				return "", false
			}
			return string(s), true
		},
	},
}

// render produces the concatenated content blocks for the ordered file
// records. Every per-file failure becomes an inline notice; render never
// returns an error.
func (w *Walker) render(files []FileRecord, c *Counters) string {
	var out strings.Builder
	total := len(files)

	for i, rec := range files {
		c.Processed++
		out.WriteString(fmt.Sprintf("--- BEGIN FILE: %s ---\n", rec.HeaderPath))
		out.WriteString(w.renderFile(rec, c))
		out.WriteString(fmt.Sprintf("\n--- END FILE: %s ---\n\n", rec.HeaderPath))

		if w.Progress != nil {
			w.Progress(i+1, total)
		}
	}

	return out.String()
}

// renderFile returns the body of one content block: the decoded text, or
// a skip/error notice.
func (w *Walker) renderFile(rec FileRecord, c *Counters) string {
	info, err := os.Stat(rec.AbsPath)
	if err != nil {
		c.ReadErrors++
		return fmt.Sprintf("[Error checking file size: %v]\n", err)
	}

	if w.MaxFileSize > 0 && info.Size() > w.MaxFileSize {
		c.SkippedSize++
		return fmt.Sprintf("[File content skipped - size (%.1f KB) exceeds limit (%d KB)]\n",
			float64(info.Size())/1024, w.MaxFileSize/1024)
	}

	binary, err := w.probeBinary(rec.AbsPath)
	if err != nil {
		c.ReadErrors++
		return fmt.Sprintf("[Error checking if file is binary: %v]\n", err)
	}
	if binary {
		c.SkippedBinary++
		return "[Binary file - content skipped]\n"
	}

	content, err := os.ReadFile(rec.AbsPath)
	if err != nil {
		c.ReadErrors++
		return fmt.Sprintf("[Error reading file: %v]\n", err)
	}

	for _, strat := range decodeStrategies {
		if text, ok := strat.decode(content); ok {
			return strat.warning + text
		}
	}

	// Unreachable while the Latin-1 fallback accepts every byte sequence,
	// but a failed chain still degrades to a notice rather than a panic.
	c.ReadErrors++
	return "[Error reading file: no decode strategy succeeded]\n"
}

// probeBinary reads the leading probe and reports whether it contains a
// null byte.
func (w *Walker) probeBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	probe := make([]byte, probeSize)
	n, err := io.ReadFull(f, probe)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}

	return bytes.IndexByte(probe[:n], 0) != -1, nil
}
