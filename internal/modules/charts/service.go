// Package charts builds Plotly figure JSON for the frontend renderer.
package charts

import (
	"fmt"
	"strings"

	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"

	"github.com/etfolio/etfolio/internal/clients/yahoo"
)

// Moving average windows overlaid on price charts
const (
	shortSMAWindow = 20
	longSMAWindow  = 60
)

var heatmapColorscale = []ColorStop{
	{0.0, "#1e3a8a"},
	{0.25, "#3b82f6"},
	{0.5, "#fbbf24"},
	{0.75, "#f97316"},
	{1.0, "#dc2626"},
}

var pieColors = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
	"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
}

// Service builds chart figures
type Service struct {
	log zerolog.Logger
}

// NewService creates a new chart service
func NewService(log zerolog.Logger) *Service {
	return &Service{log: log.With().Str("component", "charts").Logger()}
}

// PriceChart renders the close price as an area line with 20 and 60 day
// moving average overlays when enough history is available
func (s *Service) PriceChart(prices []yahoo.PricePoint, ticker string) *Figure {
	dates := dateLabels(prices)
	closes := yahoo.Closes(prices)

	fig := &Figure{
		Data: []Trace{{
			Type:      "scatter",
			Mode:      "lines",
			Name:      "Close",
			X:         dates,
			Y:         closes,
			Line:      &Line{Color: "#2E86DE", Width: 2},
			Fill:      "tozeroy",
			FillColor: "rgba(46, 134, 222, 0.1)",
		}},
		Layout: Layout{
			Title:     fmt.Sprintf("%s Price History", ticker),
			XAxis:     &Axis{Title: "Date"},
			YAxis:     &Axis{Title: "Price"},
			HoverMode: "x unified",
			Template:  "plotly_white",
			Height:    400,
		},
	}

	for _, overlay := range []struct {
		window int
		name   string
		color  string
	}{
		{shortSMAWindow, "SMA 20", "#F5A623"},
		{longSMAWindow, "SMA 60", "#9B59B6"},
	} {
		if len(closes) < overlay.window {
			continue
		}
		sma := talib.Sma(closes, overlay.window)
		// The first window-1 slots carry no value
		fig.Data = append(fig.Data, Trace{
			Type: "scatter",
			Mode: "lines",
			Name: overlay.name,
			X:    dates[overlay.window-1:],
			Y:    sma[overlay.window-1:],
			Line: &Line{Color: overlay.color, Width: 1},
		})
	}

	return fig
}

// DividendChart renders dividend payouts as bars, or an empty-state
// annotation when the fund pays none
func (s *Service) DividendChart(dividends []yahoo.Dividend, ticker string) *Figure {
	title := fmt.Sprintf("%s Dividend History", ticker)

	if len(dividends) == 0 {
		return emptyFigure(title, "No dividend data available")
	}

	dates := make([]string, len(dividends))
	amounts := make([]float64, len(dividends))
	for i, d := range dividends {
		dates[i] = d.Date.Format("2006-01-02")
		amounts[i] = d.Amount
	}

	return &Figure{
		Data: []Trace{{
			Type:   "bar",
			Name:   "Dividend",
			X:      dates,
			Y:      amounts,
			Marker: &Marker{Color: "#26DE81"},
		}},
		Layout: Layout{
			Title:     title,
			XAxis:     &Axis{Title: "Date"},
			YAxis:     &Axis{Title: "Dividend"},
			HoverMode: "x unified",
			Template:  "plotly_white",
			Height:    400,
		},
	}
}

// CumulativeReturnChart renders the percentage gain over the first close
func (s *Service) CumulativeReturnChart(prices []yahoo.PricePoint, ticker string) *Figure {
	dates := dateLabels(prices)
	closes := yahoo.Closes(prices)

	returns := make([]float64, len(closes))
	if len(closes) > 0 && closes[0] != 0 {
		initial := closes[0]
		for i, close := range closes {
			returns[i] = (close - initial) / initial * 100
		}
	}

	return &Figure{
		Data: []Trace{{
			Type: "scatter",
			Mode: "lines",
			Name: "Cumulative Return",
			X:    dates,
			Y:    returns,
			Line: &Line{Color: "#10AC84", Width: 2},
		}},
		Layout: Layout{
			Title:     fmt.Sprintf("%s Cumulative Return", ticker),
			XAxis:     &Axis{Title: "Date"},
			YAxis:     &Axis{Title: "Return (%)"},
			HoverMode: "x unified",
			Template:  "plotly_white",
			Height:    400,
		},
	}
}

// AllocationPie renders the portfolio composition as a donut chart
func (s *Service) AllocationPie(slices []AllocationSlice) *Figure {
	if len(slices) == 0 {
		return emptyFigure("Portfolio Composition", "No portfolio data available")
	}

	labels := make([]string, len(slices))
	values := make([]float64, len(slices))
	for i, slice := range slices {
		labels[i] = slice.Name
		values[i] = slice.Value
	}

	return &Figure{
		Data: []Trace{{
			Type:   "pie",
			Labels: labels,
			Values: values,
			Hole:   0.3,
			Marker: &Marker{Colors: pieColors},
		}},
		Layout: Layout{
			Title:    "Portfolio Composition",
			Template: "plotly_white",
			Height:   400,
		},
	}
}

// CorrelationHeatmap renders a ticker-by-ticker correlation matrix.
// Exchange suffixes are stripped from the labels to keep them short.
func (s *Service) CorrelationHeatmap(values [][]float64, tickers []string, title string) *Figure {
	labels := make([]string, len(tickers))
	for i, ticker := range tickers {
		labels[i] = strings.TrimSuffix(strings.TrimSuffix(ticker, ".KS"), ".KQ")
	}

	return &Figure{
		Data: []Trace{{
			Type:       "heatmap",
			X:          labels,
			Y:          labels,
			Z:          values,
			Colorscale: heatmapColorscale,
		}},
		Layout: Layout{
			Title:    title,
			YAxis:    &Axis{AutoRange: "reversed"},
			Height:   600,
			Template: "plotly_white",
		},
	}
}

func dateLabels(prices []yahoo.PricePoint) []string {
	dates := make([]string, len(prices))
	for i, p := range prices {
		dates[i] = p.Date.Format("2006-01-02")
	}
	return dates
}

func emptyFigure(title, message string) *Figure {
	return &Figure{
		Data: []Trace{},
		Layout: Layout{
			Title: title,
			Annotations: []Annotation{{
				Text:      message,
				XRef:      "paper",
				YRef:      "paper",
				ShowArrow: false,
				Font:      Font{Size: 16},
			}},
		},
	}
}
