package bench

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/anisomesh/anisomesh/evaluate"
)

// barWidth and barMaxHeight size each bucket's bar in the histogram strip.
const (
	barWidth     = 16
	barMaxHeight = 120
	barGap       = 2
)

// DumpHistogramSVG renders hist as a strip of vertical bars, one per
// bucket, scaled to the tallest bucket — a quick local-inspection aid,
// not a report-document layout (SPEC_FULL.md §B, §C Non-goals).
func DumpHistogramSVG(w io.Writer, hist evaluate.QualityHistogram) {
	width := len(hist.Buckets)*(barWidth+barGap) + barGap
	height := barMaxHeight + 20

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title("quality histogram")

	maxCount := 0
	for _, c := range hist.Buckets {
		if c > maxCount {
			maxCount = c
		}
	}

	for i, count := range hist.Buckets {
		x := barGap + i*(barWidth+barGap)
		barHeight := 0
		if maxCount > 0 {
			barHeight = count * barMaxHeight / maxCount
		}
		y := barMaxHeight - barHeight
		canvas.Rect(x, y, barWidth, barHeight, "fill:steelblue")
	}

	canvas.End()
}
