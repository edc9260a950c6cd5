// Package seed loads sample catalog items and inserts them into an empty store.
//
// Seed files are newline-delimited JSON, one item payload per line, and may be
// gzip-compressed. They are read from the local file system or from S3.
package seed

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"catalog-service/internal/model"
)

// Loader defines the interface for loading seed files.
type Loader interface {
	// Load reads a seed file and returns the item payloads it contains.
	Load(ctx context.Context, path string) ([]model.ItemRequest, error)
}

var gzipMagic = []byte{0x1f, 0x8b}

// decodeItems reads NDJSON item payloads from r, transparently decompressing
// gzip input. Blank lines are skipped.
func decodeItems(ctx context.Context, r io.Reader) ([]model.ItemRequest, error) {
	buffered := bufio.NewReader(r)

	var source io.Reader = buffered
	if header, err := buffered.Peek(len(gzipMagic)); err == nil && bytes.Equal(header, gzipMagic) {
		gzipReader, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzipReader.Close()
		source = gzipReader
	}

	scanner := bufio.NewScanner(source)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var items []model.ItemRequest
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var item model.ItemRequest
		if err := json.Unmarshal(line, &item); err != nil {
			return nil, fmt.Errorf("invalid item on line %d: %w", lineNumber, err)
		}
		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seed data: %w", err)
	}

	return items, nil
}
