package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"datachat/dataset"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	BarColor         = "#00CC96"
	NoNumericWarning = "No numerical data found for charting."
)

// Axes lists the selectable columns: any column on x, numeric columns only on y.
type Axes struct {
	X        []string `json:"x"`
	Y        []string `json:"y"`
	DefaultX string   `json:"default_x,omitempty"`
	DefaultY string   `json:"default_y,omitempty"`
	Warning  string   `json:"warning,omitempty"`
}

func (a Axes) CanChart() bool {
	return len(a.Y) > 0
}

func AxesFor(f *dataset.Frame) Axes {
	a := Axes{X: f.ColumnNames(), Y: f.NumericColumns()}
	if len(a.Y) == 0 {
		a.Warning = NoNumericWarning
		return a
	}
	a.DefaultX = a.X[0]
	a.DefaultY = a.Y[0]
	return a
}

// Resolve fills empty selections with the defaults and checks them against the axes.
func (a Axes) Resolve(x, y string) (string, string, error) {
	if !a.CanChart() {
		return "", "", errors.New(NoNumericWarning)
	}
	if x == "" {
		x = a.DefaultX
	}
	if y == "" {
		y = a.DefaultY
	}
	if !contains(a.X, x) {
		return "", "", fmt.Errorf("unknown x-axis column %q", x)
	}
	if !contains(a.Y, y) {
		return "", "", fmt.Errorf("y-axis column %q is not numeric", y)
	}
	return x, y, nil
}

func Title(x, y string) string {
	return fmt.Sprintf("%s by %s", y, x)
}

// Bar renders a standalone HTML page holding a bar chart of y against x, one bar per row.
func Bar(f *dataset.Frame, x, y string) ([]byte, error) {
	x, y, err := AxesFor(f).Resolve(x, y)
	if err != nil {
		return nil, err
	}

	labels := f.Column(x)
	values, ok := f.NumericValues(y)
	data := make([]opts.BarData, len(values))
	for i := range values {
		// JSON has no infinities
		if ok[i] && !math.IsInf(values[i], 0) {
			data[i] = opts.BarData{Value: values[i]}
		} else {
			data[i] = opts.BarData{Value: "-"}
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: Title(x, y)}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: Title(x, y), Width: "100%", Height: "420px"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: x}),
		charts.WithYAxisOpts(opts.YAxis{Name: y}),
	)
	bar.SetXAxis(labels).AddSeries(y, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: BarColor}))

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
