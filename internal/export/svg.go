package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/fibersim/internal/graph"
	"github.com/san-kum/fibersim/internal/muscle"
)

// NetworkToSVG renders one frame of the network: a circle per fiber at its
// layout position, sized by force and colored by ATP and calcium. Dead
// fibers render grey.
func NetworkToSVG(g *graph.Graph, snaps []muscle.Snapshot, scale float64) string {
	if g == nil || scale <= 0 {
		return ""
	}

	maxX, maxY := 0.0, 0.0
	for _, id := range g.Order() {
		if p, ok := g.Position(id); ok {
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}

	width := (maxX + 1.5) * scale
	height := (maxY + 1.5) * scale

	var sb strings.Builder

	// SVG header
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// Edges first so circles draw over them
	sb.WriteString(`<g stroke="#333333" stroke-width="1">` + "\n")
	for _, id := range g.Order() {
		from, ok := g.Position(id)
		if !ok {
			continue
		}
		for _, nb := range g.Neighbors(id) {
			if nb < id {
				continue
			}
			to, ok := g.Position(nb)
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`,
				(from.X+0.75)*scale, (from.Y+0.75)*scale,
				(to.X+0.75)*scale, (to.Y+0.75)*scale))
		}
	}
	sb.WriteString("</g>\n")

	for i, id := range g.Order() {
		p, ok := g.Position(id)
		if !ok || i >= len(snaps) {
			continue
		}
		snap := snaps[i]

		cx := (p.X + 0.75) * scale
		cy := (p.Y + 0.75) * scale
		radius := scale * (0.2 + 0.2*clamp01(snap.Force))

		fill := fmt.Sprintf("rgb(%d,%d,150)",
			int(clamp01(snap.ATP)*255), int(clamp01(snap.Calcium)*255))
		if !snap.Alive {
			fill = "rgb(80,80,80)"
		}

		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, radius, fill))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" fill="#ffffff" font-family="monospace" font-size="%.0f">%c</text>
`, cx, cy, scale*0.3, id))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots a force series as a single polyline.
func SeriesToSVG(series []float64, width, height int, strokeColor string) string {
	if len(series) < 2 {
		return ""
	}

	minY, maxY := series[0], series[0]
	for _, v := range series {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range series {
		x := float64(i) / float64(len(series)-1) * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
