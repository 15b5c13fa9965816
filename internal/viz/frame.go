package viz

import (
	"math"

	"github.com/juxley/linksim/internal/geom"
	"github.com/juxley/linksim/internal/mech"
)

// Viewport maps world coordinates to canvas sub-pixels, preserving
// aspect ratio (one character cell is 2x4 dots, so the dot grid is
// roughly square on typical terminals).
type Viewport struct {
	minX, minY float64
	scale      float64
	dotsW      int
	dotsH      int
}

// FitViewport sizes a viewport so that all points fit a w x h character
// canvas with a small margin.
func FitViewport(w, h int, pts []geom.Point) Viewport {
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

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}
	// 5% margins on each side.
	minX -= spanX * 0.05
	minY -= spanY * 0.05
	spanX *= 1.1
	spanY *= 1.1

	dotsW := w * 2
	dotsH := h * 4
	scale := math.Min(float64(dotsW-1)/spanX, float64(dotsH-1)/spanY)

	return Viewport{minX: minX, minY: minY, scale: scale, dotsW: dotsW, dotsH: dotsH}
}

// Dot converts a world point to sub-pixel coordinates. Y grows upward in
// the world and downward on the canvas.
func (v Viewport) Dot(p geom.Point) (x, y int) {
	x = int(math.Round((p.X - v.minX) * v.scale))
	y = v.dotsH - 1 - int(math.Round((p.Y-v.minY)*v.scale))
	return x, y
}

// Frame renders one mechanism state: bars as lines, joints and driver
// anchors as markers, trajectories as dotted polylines.
func Frame(w, h int, snap mech.Snapshot, segments []mech.Segment, anchors []geom.Point, trajectories map[string]mech.Trajectory) string {
	pts := make([]geom.Point, 0, len(snap)+len(anchors))
	for _, p := range snap {
		pts = append(pts, p)
	}
	pts = append(pts, anchors...)
	for _, traj := range trajectories {
		pts = append(pts, traj...)
	}

	vp := FitViewport(w, h, pts)
	c := NewCanvas(w, h)

	for _, traj := range trajectories {
		for _, p := range traj {
			x, y := vp.Dot(p)
			c.Set(x, y)
		}
	}

	for _, seg := range segments {
		pa, oka := snap[seg.A]
		pb, okb := snap[seg.B]
		if !oka || !okb {
			continue
		}
		x0, y0 := vp.Dot(pa)
		x1, y1 := vp.Dot(pb)
		c.Line(x0, y0, x1, y1)
	}

	for _, p := range snap {
		x, y := vp.Dot(p)
		c.Marker(x, y)
	}
	for _, a := range anchors {
		x, y := vp.Dot(a)
		c.Marker(x, y)
	}

	return c.String()
}
