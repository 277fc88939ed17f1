package report

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/pkarpov/verbscope/internal/model"
)

const (
	chartWidth  = 1280
	chartHeight = 720
)

// writeChart renders a bar chart of the top lemma frequencies as PNG
func (w *Writer) writeChart(r *model.Report, path string) error {
	rows := r.Statistics.TopN(w.topN)
	if len(rows) == 0 {
		return fmt.Errorf("no verbs to chart")
	}

	var max float64
	bars := make([]chart.Value, 0, len(rows))
	for _, row := range rows {
		if float64(row.Count) > max {
			max = float64(row.Count)
		}
		bars = append(bars, chart.Value{
			Label: row.Lemma,
			Value: float64(row.Count),
		})
	}

	ticks := []chart.Tick{}
	for i := 0; i <= int(max); i++ {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: fmt.Sprintf("%d", i)})
	}

	graph := chart.BarChart{
		Title:    "Top verbs by frequency",
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: chartWidth / (2 * len(bars)),
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
		YAxis: chart.YAxis{
			Name: "Occurrences",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: max,
			},
			Ticks: ticks,
		},
		Bars: bars,
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return graph.Render(chart.PNG, f)
}
