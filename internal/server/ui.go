package server

import (
	"html/template"
	"log/slog"
	"net/http"
	"sort"
)

// indexTemplate renders the job gallery at /. Kept deliberately small; the
// page is a monitoring aid, not the product.
var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<title>mosaicforge</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; }
.state-completed { color: #2a7; }
.state-failed { color: #c33; }
.state-running { color: #27c; }
img.preview { max-width: 160px; max-height: 120px; }
</style>
</head>
<body>
<h1>Mosaic jobs</h1>
{{if not .}}
<p>No jobs yet. POST to /api/v1/jobs to start one.</p>
{{else}}
<table>
<tr><th>ID</th><th>State</th><th>Target</th><th>Grid</th><th>Progress</th><th>Result</th></tr>
{{range .}}
<tr>
<td><a href="/api/v1/jobs/{{.ID}}/status">{{printf "%.12s" .ID}}</a></td>
<td class="state-{{.State}}">{{.State}}</td>
<td>{{.Request.TargetImagePath}}</td>
<td>{{if .Cols}}{{.Cols}}&times;{{.Rows}}{{end}}</td>
<td>{{.CellsDone}}/{{.TotalCells}}</td>
<td>{{if eq (printf "%s" .State) "completed"}}<a href="/api/v1/jobs/{{.ID}}/mosaic.png"><img class="preview" src="/api/v1/jobs/{{.ID}}/mosaic.png"></a>{{end}}</td>
</tr>
{{end}}
</table>
{{end}}
</body>
</html>
`))

// handleIndex handles GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// Only handle exact root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	jobs := s.jobManager.ListJobs()
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].StartTime.After(jobs[j].StartTime)
	})

	if err := indexTemplate.Execute(w, jobs); err != nil {
		slog.Error("Failed to render index page", "error", err)
	}
}
