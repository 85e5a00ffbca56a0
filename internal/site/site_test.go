package site

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/archmap/internal/diagrams"
	"github.com/ziadkadry99/archmap/internal/report"
)

const sample = `{
  "projectName": "demo_app",
  "dependencies": {
    "nodes": [
      {"id": "src/index.ts"},
      {"id": "src/lib/util.ts"},
      {"id": "src/ui/Button.tsx"}
    ],
    "links": [
      {"source": "src/index.ts", "target": "src/lib/util.ts"},
      {"source": "src/ui/Button.tsx", "target": "src/lib/util.ts"},
      {"source": "src/index.ts", "target": "src/ui/Button.tsx"},
      {"source": "src/index.ts", "target": "react"}
    ]
  },
  "stats": {"fileList": [{"path": "src/lib/util.ts", "size": 100, "linesOfCode": 12}]}
}`

func mustParse(t *testing.T) *report.Report {
	t.Helper()
	r, err := report.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return r
}

func TestMarkdown(t *testing.T) {
	md := Markdown(mustParse(t), diagrams.TopDown)

	for _, want := range []string{
		"# demo\\_app\n",
		"3 modules, 4 dependencies, 12 lines of code.",
		"| Entry | 1 | 0 |",
		"| Logic | 1 | 12 |",
		"| `src/lib/util.ts` | logic | 2 | 0 |",
		"- `react`",
		"```mermaid\ngraph TD\n",
		"```json\n",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	// util.ts has the most dependents and is listed first.
	util := strings.Index(md, "| `src/lib/util.ts`")
	button := strings.Index(md, "| `src/ui/Button.tsx`")
	if util < 0 || button < 0 || util > button {
		t.Errorf("hub order wrong:\n%s", md)
	}
}

func TestMarkdownEmpty(t *testing.T) {
	md := Markdown(nil, diagrams.TopDown)
	if !strings.HasPrefix(md, "# Untitled project\n") {
		t.Errorf("unexpected heading:\n%s", md)
	}
	if strings.Contains(md, "Most depended-on") || strings.Contains(md, "Unresolved") {
		t.Errorf("empty graph should have no hub or dangling sections:\n%s", md)
	}
}

func TestHTML(t *testing.T) {
	page, err := HTML("demo <app>", Markdown(mustParse(t), diagrams.LeftRight))
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}
	s := string(page)
	if !strings.Contains(s, "<title>demo &lt;app&gt; | archmap</title>") {
		t.Error("title not escaped")
	}
	if !strings.Contains(s, "<table>") {
		t.Error("GFM tables not rendered")
	}
	if !strings.Contains(s, `id="roles"`) {
		t.Error("heading ids not generated")
	}
	if !strings.Contains(s, "graph LR") {
		t.Error("flowchart missing")
	}
}

func TestPostProcessMermaid(t *testing.T) {
	in := `<p>a</p><pre><code class="language-mermaid">graph TD
</code></pre><pre><code class="language-mermaid">graph LR
</code></pre>`
	got := postProcessMermaid(in)
	want := `<p>a</p><div class="mermaid">graph TD
</div><div class="mermaid">graph LR
</div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if postProcessMermaid("<p>plain</p>") != "<p>plain</p>" {
		t.Error("plain html changed")
	}
}

type staticSource struct{ r *report.Report }

func (s staticSource) Current() *report.Report { return s.r }

func TestOverviewRoute(t *testing.T) {
	serve := func(src staticSource, target string) *httptest.ResponseRecorder {
		r := chi.NewRouter()
		r.Route("/api/graph", func(r chi.Router) { RegisterRoutes(r, src) })
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}

	if rec := serve(staticSource{}, "/api/graph/overview"); rec.Code != http.StatusNotFound {
		t.Errorf("empty store: status = %d, want 404", rec.Code)
	}

	rec := serve(staticSource{mustParse(t)}, "/api/graph/overview")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("html: status %d, type %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec = serve(staticSource{mustParse(t)}, "/api/graph/overview?format=md")
	if !strings.HasPrefix(rec.Body.String(), "# demo\\_app") {
		t.Errorf("markdown body = %q", rec.Body.String())
	}
}
