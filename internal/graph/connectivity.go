package graph

import "github.com/ziadkadry99/archmap/internal/report"

// NeighborsOf returns activeID together with every id it shares a link
// with, in either direction. Callers with no active node should skip
// highlighting entirely rather than call this with an empty id.
func NeighborsOf(activeID string, links []RenderLink) map[string]struct{} {
	set := map[string]struct{}{activeID: {}}
	for _, l := range links {
		src, dst := report.ResolveID(l.Source), report.ResolveID(l.Target)
		switch activeID {
		case src:
			set[dst] = struct{}{}
		case dst:
			set[src] = struct{}{}
		}
	}
	return set
}

// Degree counts the links entering and leaving id.
func Degree(id string, links []RenderLink) (in, out int) {
	for _, l := range links {
		if report.ResolveID(l.Source) == id {
			out++
		}
		if report.ResolveID(l.Target) == id {
			in++
		}
	}
	return in, out
}

// Neighbors lists the ids id depends on and the ids depending on it, in
// link order without duplicates.
func Neighbors(id string, links []RenderLink) (dependsOn, dependents []string) {
	seenOut := map[string]bool{}
	seenIn := map[string]bool{}
	for _, l := range links {
		src, dst := report.ResolveID(l.Source), report.ResolveID(l.Target)
		if src == id && !seenOut[dst] {
			seenOut[dst] = true
			dependsOn = append(dependsOn, dst)
		}
		if dst == id && !seenIn[src] {
			seenIn[src] = true
			dependents = append(dependents, src)
		}
	}
	return dependsOn, dependents
}
