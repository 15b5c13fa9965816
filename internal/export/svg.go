// Package export writes mechanism states and trajectories as SVG.
package export

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/juxley/linksim/internal/geom"
	"github.com/juxley/linksim/internal/mech"
)

const (
	barColor    = "#00ccff"
	jointColor  = "#ffffff"
	trajColors  = "#00ff88;#ffaa00;#ff44aa;#8888ff"
	background  = "#0a0a14"
	strokeWidth = 2.0
)

// SVG renders a snapshot (bars and joints) plus trajectories as a
// standalone SVG document. Any of snap, segments or trajectories may be
// empty. World y grows upward; SVG y grows downward.
func SVG(width, height int, snap mech.Snapshot, segments []mech.Segment, trajectories map[string]mech.Trajectory) string {
	var pts []geom.Point
	for _, p := range snap {
		pts = append(pts, p)
	}
	for _, traj := range trajectories {
		pts = append(pts, traj...)
	}

	tr := fitTransform(width, height, pts)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	colors := strings.Split(trajColors, ";")
	names := sortedNames(trajectories)
	for i, name := range names {
		traj := trajectories[name]
		if len(traj) < 2 {
			continue
		}
		color := colors[i%len(colors)]
		sb.WriteString(`<polyline fill="none" stroke="` + color + `" stroke-width="1" points="`)
		for _, p := range traj {
			x, y := tr.apply(p)
			fmt.Fprintf(&sb, "%.1f,%.1f ", x, y)
		}
		sb.WriteString("\"/>\n")
	}

	for _, seg := range segments {
		pa, oka := snap[seg.A]
		pb, okb := snap[seg.B]
		if !oka || !okb {
			continue
		}
		x1, y1 := tr.apply(pa)
		x2, y2 := tr.apply(pb)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
			x1, y1, x2, y2, barColor, strokeWidth)
	}

	for _, name := range sortedNames(snap) {
		x, y := tr.apply(snap[name])
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", x, y, jointColor)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="%s" font-size="10" font-family="monospace">%s</text>`+"\n",
			x+5, y-5, jointColor, name)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

type transform struct {
	minX, maxY float64
	scale      float64
	pad        float64
}

func fitTransform(width, height int, pts []geom.Point) transform {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	if len(pts) == 0 || minX > maxX {
		minX, minY, maxX, maxY = 0, 0, 1, 1
	}

	spanX := math.Max(maxX-minX, 1e-9)
	spanY := math.Max(maxY-minY, 1e-9)
	pad := 0.08 * math.Min(float64(width), float64(height))
	scale := math.Min((float64(width)-2*pad)/spanX, (float64(height)-2*pad)/spanY)

	return transform{minX: minX, maxY: maxY, scale: scale, pad: pad}
}

func (t transform) apply(p geom.Point) (x, y float64) {
	return t.pad + (p.X-t.minX)*t.scale, t.pad + (t.maxY-p.Y)*t.scale
}

// sortedNames keeps renders deterministic and diffable.
func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
