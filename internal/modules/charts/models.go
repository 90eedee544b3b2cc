package charts

// The chart types mirror the Plotly figure JSON consumed by the frontend:
// a figure is a list of traces plus a layout, rendered client side.

// Figure is a renderable chart
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one data series within a figure. Only the fields relevant to
// the trace type are set.
type Trace struct {
	Type       string      `json:"type"`
	Name       string      `json:"name,omitempty"`
	Mode       string      `json:"mode,omitempty"`
	X          []string    `json:"x,omitempty"`
	Y          interface{} `json:"y,omitempty"`
	Z          [][]float64 `json:"z,omitempty"`
	Labels     []string    `json:"labels,omitempty"`
	Values     []float64   `json:"values,omitempty"`
	Hole       float64     `json:"hole,omitempty"`
	Line       *Line       `json:"line,omitempty"`
	Marker     *Marker     `json:"marker,omitempty"`
	Fill       string      `json:"fill,omitempty"`
	FillColor  string      `json:"fillcolor,omitempty"`
	Colorscale []ColorStop `json:"colorscale,omitempty"`
}

// ColorStop maps a normalized position to a color
type ColorStop [2]interface{}

// Line styles a scatter trace
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// Marker styles bar and pie traces
type Marker struct {
	Color  string   `json:"color,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

// Layout describes titles, axes and sizing
type Layout struct {
	Title       string       `json:"title,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	HoverMode   string       `json:"hovermode,omitempty"`
	Template    string       `json:"template,omitempty"`
	Height      int          `json:"height,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Axis labels one chart axis
type Axis struct {
	Title     string `json:"title,omitempty"`
	AutoRange string `json:"autorange,omitempty"`
}

// Annotation places free text on a figure, used for empty states
type Annotation struct {
	Text      string `json:"text"`
	XRef      string `json:"xref"`
	YRef      string `json:"yref"`
	ShowArrow bool   `json:"showarrow"`
	Font      Font   `json:"font"`
}

// Font sizes annotation text
type Font struct {
	Size int `json:"size"`
}

// AllocationSlice is one labeled share of the portfolio pie
type AllocationSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
