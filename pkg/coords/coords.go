/*
Copyright 2024 topo-configgen contributors
*/

// Package coords remaps canvas device coordinates into the external
// simulator's coordinate space, per spec.md §4.7: centroid, translate,
// scale, clamp. Grounded on the teacher's small constants-driven helper
// style (pkg/networking/network.go's Default* constant blocks).
package coords

// Simulator coordinate bounds and target center, per spec.md §4.7.
const (
	MinX = -7500.0
	MaxX = 11500.0
	MinY = -1600.0
	MaxY = 5600.0

	TargetCX = 2000.0
	TargetCY = 2000.0

	// DefaultScale is applied when the caller does not select one.
	DefaultScale = 1.0
)

// Point is one device position in canvas or simulator space.
type Point struct {
	X, Y float64
}

// Remap computes the bounding-box centroid of points, translates every
// point so that centroid lands on (TargetCX, TargetCY), applies scale
// around that target center, and clamps each result to the simulator's
// valid range. If points is empty, Remap returns nil.
//
// A single input point (zero-size bounding box) is its own centroid, so it
// translates exactly onto the target center regardless of scale.
func Remap(points []Point, scale float64) []Point {
	if len(points) == 0 {
		return nil
	}
	if scale == 0 {
		scale = DefaultScale
	}

	cx, cy := centroid(points)

	out := make([]Point, len(points))
	for i, p := range points {
		x := TargetCX + (p.X-cx)*scale
		y := TargetCY + (p.Y-cy)*scale
		out[i] = Point{X: clamp(x, MinX, MaxX), Y: clamp(y, MinY, MaxY)}
	}
	return out
}

// DevicePosition pairs a device identifier with its canvas position and
// whether the submitted topology actually supplied coordinates for it.
type DevicePosition struct {
	ID       string
	Point    Point
	Supplied bool
}

// RemapDevices runs Remap over every device that supplied coordinates and
// places the rest at the target center, per spec.md §4.7: "If no
// coordinates are supplied, place every device at the target center."
// Returns a map from device id to its final simulator-space point.
func RemapDevices(devices []DevicePosition, scale float64) map[string]Point {
	out := make(map[string]Point, len(devices))

	var supplied []Point
	var suppliedIDs []string
	for _, d := range devices {
		if d.Supplied {
			supplied = append(supplied, d.Point)
			suppliedIDs = append(suppliedIDs, d.ID)
		} else {
			out[d.ID] = Point{X: TargetCX, Y: TargetCY}
		}
	}

	if len(supplied) == 0 {
		for _, d := range devices {
			out[d.ID] = Point{X: TargetCX, Y: TargetCY}
		}
		return out
	}

	remapped := Remap(supplied, scale)
	for i, id := range suppliedIDs {
		out[id] = remapped[i]
	}
	return out
}

// centroid returns the midpoint of the bounding box enclosing points, not
// their arithmetic mean, per spec.md §4.7 ("centroid of their bounding
// box").
func centroid(points []Point) (cx, cy float64) {
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return (minX + maxX) / 2, (minY + maxY) / 2
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
