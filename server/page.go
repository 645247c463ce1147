package server

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"skyline/charts"
	"skyline/models"
)

type cityOption struct {
	Name     string
	Selected bool
}

type pageChart struct {
	Kind string
	SVG  template.HTML
}

type pageData struct {
	Title  string
	Cities []cityOption
	Query  models.Query
	Bounds models.SliderBounds
	View   *models.DashboardView
	Charts []pageChart
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; }
aside { width: 280px; padding: 1em; background: #f0f2f6; min-height: 100vh; }
main { flex: 1; padding: 1em 2em; }
select { width: 100%; }
table { border-collapse: collapse; margin-bottom: 2em; }
td, th { border-bottom: 1px solid #ddd; padding: 4px 12px; text-align: left; }
.notice { color: #b00; }
.chart { margin-bottom: 2em; }
</style>
</head>
<body>
<aside>
<form method="get" action="/">
<input type="hidden" name="submitted" value="1">
<label for="city">Cities</label>
<select id="city" name="city" multiple size="12">
{{range .Cities}}<option value="{{.Name}}"{{if .Selected}} selected{{end}}>{{.Name}}</option>
{{end}}</select>
<p><label for="min_height">Minimum height (ft): {{printf "%.0f" .Query.MinHeight}}</label><br>
<input type="range" id="min_height" name="min_height" min="0" max="{{.Bounds.MaxHeight}}" value="{{printf "%.0f" .Query.MinHeight}}"></p>
<p><label for="min_year">Completed after: {{.Query.MinYear}}</label><br>
<input type="range" id="min_year" name="min_year" min="{{.Bounds.MinYear}}" max="{{.Bounds.MaxYear}}" value="{{.Query.MinYear}}"></p>
<button type="submit">Apply</button>
</form>
</aside>
<main>
<h1>{{.Title}}</h1>
{{if .View.NoData}}<p class="notice">{{.View.Notice}}</p>{{else}}
{{range .Charts}}<div class="chart" id="chart-{{.Kind}}">{{.SVG}}</div>
{{end}}
<h2>Skyscrapers in Selected Cities</h2>
<table>
<tr><th>Name</th><th>City</th><th>Year</th></tr>
{{range .View.Table}}<tr><td>{{.Name}}</td><td>{{.City}}</td><td>{{.Year}}</td></tr>
{{end}}</table>
{{end}}
<h2>Top {{len .View.AllTimeTallest}} Tallest Skyscrapers of All Time</h2>
<table>
<tr><th>Name</th><th>City</th><th>Height (ft)</th></tr>
{{range .View.AllTimeTallest}}<tr><td>{{.Name}}</td><td>{{.City}}</td><td>{{printf "%.0f" .Height}}</td></tr>
{{end}}</table>
</main>
</body>
</html>
`))

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	q, err := s.query(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v := s.dash.Build(q)

	data := pageData{
		Title:  "Skyscrapers Dashboard",
		Query:  q,
		Bounds: v.Bounds,
		View:   v,
	}
	selected := make(map[string]bool, len(q.Cities))
	for _, c := range q.Cities {
		selected[c] = true
	}
	for _, c := range s.dash.Cities() {
		data.Cities = append(data.Cities, cityOption{Name: c, Selected: selected[c]})
	}

	if !v.NoData {
		set := charts.FromView(v)
		for _, kind := range charts.Kinds {
			var buf bytes.Buffer
			if err := charts.Render(&buf, kind, set); err != nil {
				s.logger.Error("[server] Render %s chart: %v", kind, err)
				continue
			}
			data.Charts = append(data.Charts, pageChart{Kind: kind, SVG: inlineSVG(buf.String())})
		}
	}

	var out bytes.Buffer
	if err := pageTmpl.Execute(&out, data); err != nil {
		s.logger.Error("[server] Render page: %v", err)
		http.Error(w, "page rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(out.Bytes())
}

// inlineSVG drops anything before the root element so the document can be
// embedded in HTML.
func inlineSVG(doc string) template.HTML {
	if i := strings.Index(doc, "<svg"); i > 0 {
		doc = doc[i:]
	}
	return template.HTML(doc)
}
