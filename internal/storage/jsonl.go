// Package storage handles workspace persistence in JSONL and SQLite formats.
package storage

import (
	"bufio"
	"fmt"
	"os"

	"github.com/segmentio/encoding/json"

	"github.com/matsen/bibx/internal/document"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines.
// Cited-reference lists make single records large, so this is well above
// a typical line.
const MaxJSONLLineCapacity = 16 * 1024 * 1024

// ReadAll reads all records from a JSONL file. A missing file yields no
// records.
func ReadAll(path string) ([]document.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()

	var records []document.Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var r document.Record
		if err := json.Unmarshal(line, &r); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		if r.Fields == nil {
			r.Fields = make(map[string]string)
		}
		records = append(records, r)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}

	return records, nil
}

// WriteAll writes all records to a JSONL file, replacing existing content.
// The file is written next to path and renamed into place.
func WriteAll(path string, records []document.Record) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating corpus file: %w", err)
	}

	w := bufio.NewWriter(f)
	for i, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			f.Close()
			return fmt.Errorf("encoding record %d: %w", i, err)
		}
		w.Write(data)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing corpus file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing corpus file: %w", err)
	}
	return os.Rename(tmp, path)
}

// ReadCorpus reads a corpus file back into a table. The column set is
// rebuilt from the stored records.
func ReadCorpus(path string) (*document.Table, error) {
	records, err := ReadAll(path)
	if err != nil {
		return nil, err
	}
	return document.NewTable(records), nil
}

// WriteCorpus stores every record of t.
func WriteCorpus(path string, t *document.Table) error {
	return WriteAll(path, t.Records())
}
