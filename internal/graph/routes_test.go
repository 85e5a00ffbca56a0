package graph

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/ziadkadry99/archmap/internal/report"
)

type staticSource struct{ r *report.Report }

func (s staticSource) Current() *report.Report { return s.r }

const demoReport = `{
	"projectName": "demo",
	"dependencies": {
		"nodes": [{"id": "app/page.tsx"}, {"id": "src/api/client.ts"}, {"id": "README.md"}],
		"links": [{"source": "app/page.tsx", "target": "src/api/client.ts"}]
	},
	"stats": {"fileList": [{"path": "app/page.tsx", "size": 10, "linesOfCode": 300}]}
}`

func setupRouter(t *testing.T, payload string) chi.Router {
	t.Helper()
	var src staticSource
	if payload != "" {
		src.r = mustParse(t, payload)
	}
	r := chi.NewRouter()
	r.Route("/api/graph", func(r chi.Router) {
		RegisterRoutes(r, src)
	})
	return r
}

func get(t *testing.T, h http.Handler, path string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding %s: %v (%s)", path, err, w.Body.String())
	}
	return w.Code
}

func TestGraphEndpointEmpty(t *testing.T) {
	r := setupRouter(t, "")
	var body struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if code := get(t, r, "/api/graph", &body); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if !body.Success || string(body.Data) != "null" {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestGraphEndpoint(t *testing.T) {
	r := setupRouter(t, demoReport)
	var body struct {
		Data Graph `json:"data"`
	}
	get(t, r, "/api/graph", &body)
	if len(body.Data.Nodes) != 3 || len(body.Data.Links) != 1 {
		t.Fatalf("unexpected graph %+v", body.Data)
	}
	if body.Data.Nodes[0].Type != RoleEntry || body.Data.Nodes[0].LOC != 300 {
		t.Errorf("first node = %+v", body.Data.Nodes[0])
	}
}

func TestNodeEndpoint(t *testing.T) {
	r := setupRouter(t, demoReport)

	for _, path := range []string{"/api/graph/nodes/src/api/client.ts", "/api/graph/nodes/src%2Fapi%2Fclient.ts"} {
		var body struct {
			Success bool       `json:"success"`
			Data    NodeDetail `json:"data"`
		}
		if code := get(t, r, path, &body); code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, code)
		}
		if body.Data.Node.ID != "src/api/client.ts" || body.Data.In != 1 || body.Data.Out != 0 {
			t.Errorf("%s: detail = %+v", path, body.Data)
		}
		if len(body.Data.Dependents) != 1 || body.Data.Dependents[0] != "app/page.tsx" {
			t.Errorf("%s: dependents = %v", path, body.Data.Dependents)
		}
	}

	var missing struct {
		Success bool `json:"success"`
	}
	if code := get(t, r, "/api/graph/nodes/nope.ts", &missing); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}

func TestSummaryAndLegendEndpoints(t *testing.T) {
	r := setupRouter(t, demoReport)

	var summary struct {
		Data Summary `json:"data"`
	}
	get(t, r, "/api/graph/summary", &summary)
	if summary.Data.ProjectName != "demo" || summary.Data.Nodes != 3 || summary.Data.Links != 1 {
		t.Errorf("summary = %+v", summary.Data)
	}
	if summary.Data.Roles[RoleLogic] != 1 || summary.Data.Roles[RoleUnknown] != 1 {
		t.Errorf("roles = %v", summary.Data.Roles)
	}

	var legend struct {
		Data []LegendEntry `json:"data"`
	}
	get(t, r, "/api/graph/legend", &legend)
	if len(legend.Data) != 6 {
		t.Errorf("legend has %d entries", len(legend.Data))
	}
}
