// Package export writes render graphs to a SQLite file for offline
// inspection. Exports are never read back by the server.
package export

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/archmap/internal/db"
	"github.com/ziadkadry99/archmap/internal/graph"
	"github.com/ziadkadry99/archmap/internal/report"
)

// File builds the render graph of r and appends it to the database at
// path, creating the file when needed. progress may be nil.
func File(ctx context.Context, path string, r *report.Report, progress Reporter) (*Snapshot, error) {
	if r == nil {
		return nil, fmt.Errorf("export: no report")
	}
	d, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	s := NewStore(d)
	s.SetReporter(progress)
	return s.Write(ctx, r.ProjectName, graph.Build(r))
}
