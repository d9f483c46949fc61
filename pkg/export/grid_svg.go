package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	svg "github.com/ajstarks/svgo"

	"github.com/drillworks/bithub/pkg/model"
)

// Grid snapshot geometry. The bit face is drawn as a top-down disc with
// one spoke per blade and a dot per cutter, scaled so the gauge-most
// cutter sits just inside the rim.
const (
	gridCanvasSize = 640
	gridMargin     = 40
	minCutterDot   = 3
)

// bladePalette cycles per blade index.
var bladePalette = []string{
	"#2684FF", "#36B37E", "#FF5555", "#BD93F9", "#FFB86C", "#8BE9FD",
	"#F1FA8C", "#FF79C6",
}

// RenderGridSVG draws a design's cutter layout grid as a standalone SVG
// document. Designs without layout data get an empty face with a note,
// which mirrors the hub's tolerance for missing data.
func RenderGridSVG(d model.Design, w io.Writer) error {
	canvas := svg.New(w)
	canvas.Start(gridCanvasSize, gridCanvasSize)
	defer canvas.End()

	cx, cy := gridCanvasSize/2, gridCanvasSize/2
	faceR := gridCanvasSize/2 - gridMargin

	canvas.Circle(cx, cy, faceR, `fill="#1E1F29"`, `stroke="#6272A4"`, `stroke-width="2"`)
	canvas.Text(cx, gridMargin/2+8, fmt.Sprintf("%s — %s", d.ID, d.Name),
		`text-anchor="middle"`, `font-family="sans-serif"`, `font-size="16"`, `fill="#F8F8F2"`)

	if len(d.Cutters) == 0 {
		canvas.Text(cx, cy, "no cutter layout data",
			`text-anchor="middle"`, `font-family="sans-serif"`, `font-size="14"`, `fill="#BFBFBF"`)
		return nil
	}

	maxRadius := 0.0
	for _, c := range d.Cutters {
		if c.Radius > maxRadius {
			maxRadius = c.Radius
		}
	}
	if maxRadius == 0 {
		maxRadius = 1
	}
	scale := float64(faceR-gridMargin/2) / maxRadius

	// Blade spokes first so cutter dots draw on top.
	for _, blade := range bladesOf(d.Cutters) {
		angle := bladeAngle(d.Cutters, blade)
		x := cx + int(math.Cos(angle)*float64(faceR))
		y := cy - int(math.Sin(angle)*float64(faceR))
		canvas.Line(cx, cy, x, y, `stroke="#363949"`, `stroke-width="1"`)
	}

	for _, c := range d.Cutters {
		angle := c.Angle * math.Pi / 180
		r := c.Radius * scale
		x := cx + int(math.Cos(angle)*r)
		y := cy - int(math.Sin(angle)*r)

		dot := int(c.SizeMM * scale / 2)
		if dot < minCutterDot {
			dot = minCutterDot
		}
		fill := bladePalette[paletteIndex(c.Blade)]
		canvas.Circle(x, y, dot, fmt.Sprintf(`fill="%s"`, fill), `stroke="#282A36"`, `stroke-width="1"`)
	}

	canvas.Text(cx, gridCanvasSize-gridMargin/2, fmt.Sprintf("%d blades, %d cutters", d.BladeCount, len(d.Cutters)),
		`text-anchor="middle"`, `font-family="sans-serif"`, `font-size="12"`, `fill="#BFBFBF"`)

	return nil
}

// WriteGridSVG renders the grid snapshot to "<id>-grid.svg" in dir and
// returns the path.
func WriteGridSVG(d model.Design, dir string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s-grid.svg", d.ID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating grid snapshot: %w", err)
	}
	defer f.Close()
	if err := RenderGridSVG(d, f); err != nil {
		return "", err
	}
	return path, nil
}

// paletteIndex maps any blade number, including the negative ones seen
// in imported layouts, onto the palette.
func paletteIndex(blade int) int {
	i := (blade - 1) % len(bladePalette)
	if i < 0 {
		i += len(bladePalette)
	}
	return i
}

func bladesOf(cutters []model.CutterPos) []int {
	seen := make(map[int]bool)
	var blades []int
	for _, c := range cutters {
		if !seen[c.Blade] {
			seen[c.Blade] = true
			blades = append(blades, c.Blade)
		}
	}
	sort.Ints(blades)
	return blades
}

// bladeAngle picks the innermost cutter's angle as the spoke direction.
func bladeAngle(cutters []model.CutterPos, blade int) float64 {
	best := math.MaxFloat64
	angle := 0.0
	for _, c := range cutters {
		if c.Blade == blade && c.Radius < best {
			best = c.Radius
			angle = c.Angle
		}
	}
	return angle * math.Pi / 180
}
