// Package corpus reads JSON Lines corpora: one text per line, either raw
// or already tokenized.
package corpus

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/cognicore/frtext/pkg/frtext/ingest"
	"github.com/cognicore/frtext/pkg/frtext/internalerr"
)

// Item is one corpus line.
type Item struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Text   string   `json:"text"`
	Tokens []string `json:"tokens"`
}

// source returns the item id, or path#line when the line has none.
func (it Item) source(path string, line int) string {
	if it.ID != "" {
		return it.ID
	}
	return fmt.Sprintf("%s#%d", path, line)
}

// Doc converts the item for ingestion. Tokenized items are joined with
// spaces.
func (it Item) Doc() ingest.Doc {
	text := it.Text
	if strings.TrimSpace(text) == "" {
		text = strings.Join(it.Tokens, " ")
	}
	return ingest.Doc{Source: it.ID, Title: it.Title, Text: text}
}

// LoadJSONL loads items from a JSONL file. Malformed and empty lines are
// logged and skipped; a file without any valid item is an error.
func LoadJSONL(path string, logger *slog.Logger) ([]Item, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: corpus %q does not exist", internalerr.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()

	var items []Item
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			logger.Warn("skipping malformed corpus line", "path", path, "line", lineNo, "err", err)
			continue
		}
		if strings.TrimSpace(item.Text) == "" && len(item.Tokens) == 0 {
			logger.Warn("skipping empty corpus line", "path", path, "line", lineNo)
			continue
		}
		item.ID = item.source(path, lineNo)
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no valid items found in %s", internalerr.ErrInvalidInput, path)
	}
	return items, nil
}
