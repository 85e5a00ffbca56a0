package walker

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/ziadkadry99/archmap/internal/report"
)

// FileList converts scanned files into report file metadata.
func FileList(files []FileInfo) []report.FileMeta {
	out := make([]report.FileMeta, 0, len(files))
	for _, f := range files {
		out = append(out, report.FileMeta{
			Path:        f.RelPath,
			Size:        float64(f.Size),
			LinesOfCode: float64(f.Lines),
		})
	}
	return out
}

// Enrich adds scanned metadata to payload's stats.fileList for every node
// that has none. Entries already in the report are kept as they are. The
// result is validated like any submission. It returns the new payload and
// the number of entries added; with nothing to add, payload is returned
// unchanged.
func Enrich(payload []byte, files []FileInfo) ([]byte, int, error) {
	r, err := report.Parse(payload)
	if err != nil {
		return nil, 0, err
	}

	have := map[string]bool{}
	if r.Stats != nil {
		for _, fm := range r.Stats.FileList {
			have[fm.Path] = true
		}
	}
	scanned := make(map[string]FileInfo, len(files))
	for _, f := range files {
		scanned[f.RelPath] = f
	}

	var added []FileInfo
	for _, n := range r.Dependencies.Nodes {
		if have[n.ID] {
			continue
		}
		if f, ok := scanned[n.ID]; ok {
			added = append(added, f)
			have[n.ID] = true
		}
	}
	if len(added) == 0 {
		return payload, 0, nil
	}

	// Unknown top-level fields survive the rewrite.
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, 0, fmt.Errorf("decoding report: %w", err)
	}
	var stats map[string]json.RawMessage
	if raw, ok := doc["stats"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &stats); err != nil {
			return nil, 0, fmt.Errorf("decoding stats: %w", err)
		}
	}
	if stats == nil {
		stats = map[string]json.RawMessage{}
	}

	// Existing entries keep their raw form, extra fields included.
	var entries []json.RawMessage
	if raw, ok := stats["fileList"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, 0, fmt.Errorf("decoding fileList: %w", err)
		}
	}
	for _, fm := range FileList(added) {
		b, err := json.Marshal(fm)
		if err != nil {
			return nil, 0, fmt.Errorf("encoding file %s: %w", fm.Path, err)
		}
		entries = append(entries, b)
	}
	if stats["fileList"], err = json.Marshal(entries); err != nil {
		return nil, 0, fmt.Errorf("encoding fileList: %w", err)
	}
	if doc["stats"], err = json.Marshal(stats); err != nil {
		return nil, 0, fmt.Errorf("encoding stats: %w", err)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, 0, fmt.Errorf("encoding report: %w", err)
	}
	if _, err := report.Parse(out); err != nil {
		return nil, 0, err
	}
	return out, len(added), nil
}
