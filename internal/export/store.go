package export

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/archmap/internal/db"
	"github.com/ziadkadry99/archmap/internal/graph"
	"github.com/ziadkadry99/archmap/internal/report"
)

// Snapshot describes one exported render graph.
type Snapshot struct {
	ID          string    `json:"id"`
	ProjectName string    `json:"projectName"`
	ExportedAt  time.Time `json:"exportedAt"`
	NodeCount   int       `json:"nodeCount"`
	LinkCount   int       `json:"linkCount"`
}

// NodeRow is a node as stored in an export.
type NodeRow struct {
	Position  int
	ID        string
	Name      string
	Role      graph.Role
	Color     string
	LOC       float64
	FileSize  float64
	InDegree  int
	OutDegree int
}

// LinkRow is a link as stored in an export. Dangling is set when either
// endpoint names no node of the graph.
type LinkRow struct {
	Position int
	Source   string
	Target   string
	Dangling bool
}

// Reporter receives row counts while a snapshot is written.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// Store writes render graphs into an export database.
type Store struct {
	db       *db.DB
	progress Reporter
}

// NewStore creates a new export store.
func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

// SetReporter attaches a progress reporter to subsequent writes.
func (s *Store) SetReporter(r Reporter) {
	s.progress = r
}

func (s *Store) report(current int, message string) {
	if s.progress != nil {
		s.progress.Update(current, message)
	}
}

// Write stores g as a new snapshot in a single transaction.
func (s *Store) Write(ctx context.Context, projectName string, g *graph.Graph) (*Snapshot, error) {
	if g == nil {
		g = &graph.Graph{}
	}
	snap := &Snapshot{
		ID:          uuid.NewString(),
		ProjectName: projectName,
		ExportedAt:  time.Now().UTC(),
		NodeCount:   len(g.Nodes),
		LinkCount:   len(g.Links),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning export: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, project_name, exported_at, node_count, link_count) VALUES (?, ?, ?, ?, ?)`,
		snap.ID, snap.ProjectName, snap.ExportedAt, snap.NodeCount, snap.LinkCount,
	)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot: %w", err)
	}

	nodeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO nodes (snapshot_id, position, id, name, role, color, loc, file_size, in_degree, out_degree)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("preparing node insert: %w", err)
	}
	defer nodeStmt.Close()

	if s.progress != nil {
		s.progress.Start(len(g.Nodes) + len(g.Links))
		defer s.progress.Finish()
	}

	known := make(map[string]struct{}, len(g.Nodes))
	for i, n := range g.Nodes {
		known[n.ID] = struct{}{}
		in, out := graph.Degree(n.ID, g.Links)
		if _, err := nodeStmt.ExecContext(ctx, snap.ID, i, n.ID, n.Name, string(n.Type), n.Color, n.LOC, n.FileSize, in, out); err != nil {
			return nil, fmt.Errorf("inserting node %q: %w", n.ID, err)
		}
		s.report(i+1, "nodes")
	}

	linkStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO links (snapshot_id, position, source, target, dangling) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("preparing link insert: %w", err)
	}
	defer linkStmt.Close()

	for i, l := range g.Links {
		src, dst := report.ResolveID(l.Source), report.ResolveID(l.Target)
		_, okSrc := known[src]
		_, okDst := known[dst]
		if _, err := linkStmt.ExecContext(ctx, snap.ID, i, src, dst, !(okSrc && okDst)); err != nil {
			return nil, fmt.Errorf("inserting link %d: %w", i, err)
		}
		s.report(len(g.Nodes)+i+1, "links")
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing export: %w", err)
	}
	return snap, nil
}

// Snapshots lists exported snapshots, newest first.
func (s *Store) Snapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_name, exported_at, node_count, link_count
		 FROM snapshots ORDER BY exported_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var result []Snapshot
	for rows.Next() {
		var sn Snapshot
		if err := rows.Scan(&sn.ID, &sn.ProjectName, &sn.ExportedAt, &sn.NodeCount, &sn.LinkCount); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		result = append(result, sn)
	}
	return result, rows.Err()
}

// Nodes returns the nodes of a snapshot in their original order.
func (s *Store) Nodes(ctx context.Context, snapshotID string) ([]NodeRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, id, name, role, color, loc, file_size, in_degree, out_degree
		 FROM nodes WHERE snapshot_id = ? ORDER BY position`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("listing nodes: %w", err)
	}
	defer rows.Close()

	var result []NodeRow
	for rows.Next() {
		var n NodeRow
		var role string
		if err := rows.Scan(&n.Position, &n.ID, &n.Name, &role, &n.Color, &n.LOC, &n.FileSize, &n.InDegree, &n.OutDegree); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		n.Role = graph.Role(role)
		result = append(result, n)
	}
	return result, rows.Err()
}

// Links returns the links of a snapshot in their original order.
func (s *Store) Links(ctx context.Context, snapshotID string) ([]LinkRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, source, target, dangling FROM links WHERE snapshot_id = ? ORDER BY position`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}
	defer rows.Close()

	var result []LinkRow
	for rows.Next() {
		var l LinkRow
		if err := rows.Scan(&l.Position, &l.Source, &l.Target, &l.Dangling); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// Delete removes a snapshot and its rows.
func (s *Store) Delete(ctx context.Context, snapshotID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, snapshotID)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("snapshot %q not found", snapshotID)
	}
	return nil
}
