package cluster

import (
	"fmt"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// KMeans partitions points into K clusters. Every point gets a label; the
// noise marker never appears.
type KMeans struct {
	K int
}

func (k KMeans) Cluster(points [][]float64) ([]int, error) {
	if k.K < 1 {
		return nil, fmt.Errorf("kmeans: k must be positive, got %d", k.K)
	}
	if len(points) < k.K {
		return nil, fmt.Errorf("kmeans: %d points for k=%d", len(points), k.K)
	}

	obs := make(clusters.Observations, len(points))
	for i, p := range points {
		obs[i] = clusters.Coordinates(p)
	}
	km := kmeans.New()
	partition, err := km.Partition(obs, k.K)
	if err != nil {
		return nil, fmt.Errorf("kmeans: %w", err)
	}

	labels := make([]int, len(points))
	for i, o := range obs {
		labels[i] = partition.Nearest(o)
	}
	return labels, nil
}
