package charts

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
)

var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// errWriter remembers the first write error so svgo output can be checked.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// WriteNoticeSVG writes a placeholder image carrying msg.
func WriteNoticeSVG(w io.Writer, msg string, width, height int) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#f5f5f5")
	canvas.Text(width/2, height/2, msg, "text-anchor:middle;font-family:sans-serif;font-size:16px;fill:#666")
	canvas.End()
	return ew.err
}

// WriteShareSVG draws the share chart as a pie. Slices run counter-clockwise
// from the positive x axis; the exploded slice is offset along its middle
// angle.
func WriteShareSVG(w io.Writer, c ShareChart, width, height int) error {
	if c.Empty() {
		return WriteNoticeSVG(w, c.Notice, width, height)
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Title(c.Title)
	canvas.Text(width/2, 24, c.Title, "text-anchor:middle;font-family:sans-serif;font-size:16px")

	cx, cy := float64(width)/2, float64(height)/2+12
	r := math.Min(float64(width), float64(height)-24) * 0.32

	total := 0
	for _, s := range c.Slices {
		total += s.Count
	}

	start := 0.0
	for i, s := range c.Slices {
		sweep := 2 * math.Pi * float64(s.Count) / float64(total)
		if sweep == 0 {
			continue
		}
		mid := start + sweep/2
		ox, oy := cx, cy
		if s.Exploded {
			ox += ExplodeOffset * r * math.Cos(mid)
			oy -= ExplodeOffset * r * math.Sin(mid)
		}
		style := "fill:" + palette[i%len(palette)] + ";stroke:#fff;stroke-width:1"

		if s.Count == total {
			canvas.Circle(int(ox), int(oy), int(r), style)
		} else {
			canvas.Path(slicePath(ox, oy, r, start, start+sweep), style)
		}

		lx, ly := ox+0.6*r*math.Cos(mid), oy-0.6*r*math.Sin(mid)
		canvas.Text(int(lx), int(ly), s.Label, "text-anchor:middle;font-family:sans-serif;font-size:12px;fill:#fff")
		tx, ty := ox+1.15*r*math.Cos(mid), oy-1.15*r*math.Sin(mid)
		anchor := "start"
		if math.Cos(mid) < 0 {
			anchor = "end"
		}
		canvas.Text(int(tx), int(ty), s.City, "text-anchor:"+anchor+";font-family:sans-serif;font-size:13px")

		start += sweep
	}
	canvas.End()
	return ew.err
}

func slicePath(cx, cy, r, from, to float64) string {
	x1, y1 := cx+r*math.Cos(from), cy-r*math.Sin(from)
	x2, y2 := cx+r*math.Cos(to), cy-r*math.Sin(to)
	large := 0
	if to-from > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M%.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 0 %.2f %.2f Z",
		cx, cy, x1, y1, r, r, large, x2, y2)
}

// WriteBarSVG draws a vertical bar chart, one stem per bar.
func WriteBarSVG(w io.Writer, c BarChart, width, height int) error {
	if c.Empty() {
		return WriteNoticeSVG(w, c.Notice, width, height)
	}
	return writePlot(w, width, height, func() *gg.Plot {
		tab := stemTable(c)
		plot := gg.NewPlot(tab)
		plot.SetScale("y", gg.NewLinearScaler().Include(0))
		plot.Add(gg.LayerPaths{X: "label", Y: "value", Color: "label"})
		addStemHeads(plot, gg.LayerPoints{X: "label", Y: "value", Color: "label"})
		plot.Add(gg.Title(c.Title), gg.AxisLabel("x", c.XLabel), gg.AxisLabel("y", c.YLabel))
		return plot
	})
}

// WriteComparisonSVG draws the tallest and shortest panels stacked, as
// horizontal bars with names on the y axis.
func WriteComparisonSVG(w io.Writer, c ComparisonChart, width, height int) error {
	if c.Empty() {
		return WriteNoticeSVG(w, c.Notice, width, height)
	}
	return writePlot(w, width, height, func() *gg.Plot {
		var panels, labels, ends []string
		var values []float64
		for _, panel := range []BarChart{c.Tallest, c.Shortest} {
			for _, b := range panel.Bars {
				for _, end := range []string{"base", "head"} {
					panels = append(panels, panel.Title)
					labels = append(labels, b.Label)
					ends = append(ends, end)
					if end == "base" {
						values = append(values, 0)
					} else {
						values = append(values, b.Value)
					}
				}
			}
		}
		tab := new(table.Builder).
			Add("panel", panels).
			Add("label", labels).
			Add("value", values).
			Add("end", ends).
			Done()

		plot := gg.NewPlot(tab)
		plot.SetScale("x", gg.NewLinearScaler().Include(0))
		plot.Add(gg.FacetY{Col: "panel", SplitYScales: true})
		plot.Add(gg.LayerPaths{X: "value", Y: "label", Color: "label"})
		addStemHeads(plot, gg.LayerPoints{X: "value", Y: "label", Color: "label"})
		plot.Add(gg.Title("Compare the Tallest and Shortest Skyscrapers in "+c.City),
			gg.AxisLabel("x", c.Tallest.XLabel), gg.AxisLabel("y", c.Tallest.YLabel))
		return plot
	})
}

// WriteMapSVG plots skyscraper positions by longitude and latitude with a
// hover tooltip per point.
func WriteMapSVG(w io.Writer, m MapLayer, width, height int) error {
	if m.Empty() {
		return WriteNoticeSVG(w, m.Notice, width, height)
	}
	return writePlot(w, width, height, func() *gg.Plot {
		names := make([]string, len(m.Points))
		cities := make([]string, len(m.Points))
		lats := make([]float64, len(m.Points))
		lons := make([]float64, len(m.Points))
		for i, p := range m.Points {
			names[i], cities[i], lats[i], lons[i] = p.Name, p.City, p.Latitude, p.Longitude
		}
		tab := new(table.Builder).
			Add("longitude", lons).
			Add("latitude", lats).
			Add("city", cities).
			Add("name", names).
			Done()

		plot := gg.NewPlot(tab)
		plot.Add(gg.LayerPoints{X: "longitude", Y: "latitude", Color: "city"})
		plot.Add(gg.LayerTooltips{X: "longitude", Y: "latitude", Label: "name"})
		plot.Add(gg.Title(fmt.Sprintf("Skyscrapers around %.3f, %.3f", m.CenterLat, m.CenterLon)))
		return plot
	})
}

// stemTable lays out each bar as a base point at zero and a head point at
// its value so LayerPaths draws one stem per label.
func stemTable(c BarChart) *table.Table {
	labels := make([]string, 0, 2*len(c.Bars))
	values := make([]float64, 0, 2*len(c.Bars))
	ends := make([]string, 0, 2*len(c.Bars))
	for _, bar := range c.Bars {
		labels = append(labels, bar.Label, bar.Label)
		values = append(values, 0, bar.Value)
		ends = append(ends, "base", "head")
	}
	return new(table.Builder).Add("label", labels).Add("value", values).Add("end", ends).Done()
}

// addStemHeads applies layer to the head rows only.
func addStemHeads(plot *gg.Plot, layer gg.Plotter) {
	plot.Save()
	plot.SetData(table.Filter(plot.Data(), func(end string) bool { return end == "head" }, "end"))
	plot.Add(layer)
	plot.Restore()
}

// writePlot renders the plot built by build, turning rendering panics into
// errors.
func writePlot(w io.Writer, width, height int, build func() *gg.Plot) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("charts: render: %v", r)
		}
	}()
	return build().WriteSVG(w, width, height)
}
