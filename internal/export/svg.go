package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/ginevracianci/gnc-autonomous-system/internal/harness"
)

const (
	svgWidth  = 640
	svgHeight = 480
)

// WriteSVG renders the run's orbital-plane track as an SVG path. Bounds fit
// the trajectory with the target origin always in frame.
func WriteSVG(w io.Writer, res *harness.Result) error {
	recs := res.Records
	if len(recs) < 2 {
		return fmt.Errorf("not enough records to draw a track")
	}

	minX, maxX, minY, maxY := 0.0, 0.0, 0.0, 0.0
	for _, rec := range recs {
		minX = math.Min(minX, rec.Position.X)
		maxX = math.Max(maxX, rec.Position.X)
		minY = math.Min(minY, rec.Position.Y)
		maxY = math.Max(maxY, rec.Position.Y)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX, rangeY = maxX-minX, maxY-minY

	px := func(x float64) float64 { return (x - minX) / rangeX * svgWidth }
	py := func(y float64) float64 { return svgHeight - (y-minY)/rangeY*svgHeight }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, svgWidth, svgHeight, svgWidth, svgHeight)

	// target crosshair at the origin
	ox, oy := px(0), py(0)
	fmt.Fprintf(&sb, `<path stroke="#555555" stroke-width="1" d="M%.1f,%.1f L%.1f,%.1f M%.1f,%.1f L%.1f,%.1f"/>
`, ox-8, oy, ox+8, oy, ox, oy-8, ox, oy+8)

	sb.WriteString(`<path fill="none" stroke="#00ff00" stroke-width="1.5" d="M`)
	for i, rec := range recs {
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", px(rec.Position.X), py(rec.Position.Y))
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", px(rec.Position.X), py(rec.Position.Y))
		}
	}
	sb.WriteString("\"/>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// SVGFile writes the track as SVG to path.
func SVGFile(path string, res *harness.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteSVG(f, res)
}
