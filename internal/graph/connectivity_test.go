package graph

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/ziadkadry99/archmap/internal/report"
)

func link(src, dst string) RenderLink {
	return RenderLink{Source: report.ID(src), Target: report.ID(dst)}
}

func TestNeighborsOf(t *testing.T) {
	links := []RenderLink{
		link("a", "b"),
		{Source: report.Endpoint{ID: "d", Object: true}, Target: report.ID("a")},
		link("b", "c"),
		link("a", "a"),
		link("a", "ghost"),
	}

	got := NeighborsOf("a", links)
	want := []string{"a", "b", "d", "ghost"}
	if len(got) != len(want) {
		t.Fatalf("NeighborsOf(a) = %v, want %v", got, want)
	}
	for _, id := range want {
		if _, ok := got[id]; !ok {
			t.Errorf("expected %q in neighbours", id)
		}
	}
	if _, ok := got["c"]; ok {
		t.Error("c is two hops away")
	}
}

func TestNeighborsOfIsolated(t *testing.T) {
	got := NeighborsOf("c", []RenderLink{link("a", "b")})
	if len(got) != 1 {
		t.Fatalf("expected only self, got %v", got)
	}
	if _, ok := got["c"]; !ok {
		t.Error("expected self in set")
	}
}

func TestActiveNodeDimsUnconnected(t *testing.T) {
	g := Build(&report.Report{ProjectName: "x", Dependencies: &report.Dependencies{
		Nodes: []report.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Links: []report.Link{{Source: report.ID("a"), Target: report.ID("b")}},
	}})
	set := NeighborsOf("a", g.Links)
	if _, ok := set["a"]; !ok {
		t.Error("a missing")
	}
	if _, ok := set["b"]; !ok {
		t.Error("b missing")
	}
	if _, ok := set["c"]; ok {
		t.Error("c should be dimmed")
	}
}

func TestDegreeAndNeighbors(t *testing.T) {
	links := []RenderLink{
		link("a", "b"),
		link("a", "c"),
		link("c", "a"),
		{Source: report.ID("d"), Target: report.Endpoint{ID: "a", Object: true}},
		link("a", "b"),
	}
	in, out := Degree("a", links)
	if in != 2 || out != 3 {
		t.Errorf("Degree(a) = (%d, %d), want (2, 3)", in, out)
	}

	dependsOn, dependents := Neighbors("a", links)
	if len(dependsOn) != 2 || dependsOn[0] != "b" || dependsOn[1] != "c" {
		t.Errorf("dependsOn = %v", dependsOn)
	}
	if len(dependents) != 2 || dependents[0] != "c" || dependents[1] != "d" {
		t.Errorf("dependents = %v", dependents)
	}
}

func TestNeighborsOfSymmetric(t *testing.T) {
	ids := rapid.SampledFrom([]string{"a", "b", "c", "d", "e"})
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(t, "n")
		links := make([]RenderLink, n)
		for i := range links {
			src, dst := ids.Draw(t, "src"), ids.Draw(t, "dst")
			links[i] = RenderLink{
				Source: report.Endpoint{ID: src, Object: rapid.Bool().Draw(t, "srcObj")},
				Target: report.Endpoint{ID: dst, Object: rapid.Bool().Draw(t, "dstObj")},
			}
		}

		for _, l := range links {
			a, b := report.ResolveID(l.Source), report.ResolveID(l.Target)
			na, nb := NeighborsOf(a, links), NeighborsOf(b, links)
			if _, ok := na[a]; !ok {
				t.Fatalf("%q not in its own neighbourhood", a)
			}
			if _, ok := na[b]; !ok {
				t.Fatalf("%q missing from NeighborsOf(%q)", b, a)
			}
			if _, ok := nb[a]; !ok {
				t.Fatalf("%q missing from NeighborsOf(%q)", a, b)
			}
		}
	})
}
