package cluster

import (
	"fmt"
	"math"
)

// unvisited marks points not yet reached by the scan. It never escapes
// Cluster: every point ends up with a cluster index or Noise.
const unvisited = -2

// DBSCAN is a plain density scan: a point with at least MinPoints neighbors
// within Eps (itself included) seeds a cluster, density-reachable points
// join it, everything else is labeled Noise. Deterministic for fixed input
// order.
type DBSCAN struct {
	Eps       float64
	MinPoints int
}

func (d DBSCAN) Cluster(points [][]float64) ([]int, error) {
	if d.Eps <= 0 {
		return nil, fmt.Errorf("dbscan: eps must be positive, got %g", d.Eps)
	}
	if d.MinPoints < 1 {
		return nil, fmt.Errorf("dbscan: min_points must be positive, got %d", d.MinPoints)
	}

	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = unvisited
	}

	next := 0
	for i := range points {
		if labels[i] != unvisited {
			continue
		}
		neighbors := d.regionQuery(points, i)
		if len(neighbors) < d.MinPoints {
			labels[i] = Noise
			continue
		}
		labels[i] = next
		queue := append([]int(nil), neighbors...)
		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]
			if labels[j] == Noise {
				// border point reached from a core point
				labels[j] = next
			}
			if labels[j] != unvisited {
				continue
			}
			labels[j] = next
			nn := d.regionQuery(points, j)
			if len(nn) >= d.MinPoints {
				queue = append(queue, nn...)
			}
		}
		next++
	}
	return labels, nil
}

func (d DBSCAN) regionQuery(points [][]float64, i int) []int {
	var out []int
	for j := range points {
		if euclidean(points[i], points[j]) <= d.Eps {
			out = append(out, j)
		}
	}
	return out
}

func euclidean(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return math.Sqrt(s)
}
