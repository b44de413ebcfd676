package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/frtext/pkg/frtext/internalerr"
)

// KMeans groups the rows of a matrix into K clusters using k-means++
// seeding followed by Lloyd iterations.
type KMeans struct {
	K       int
	Seed    int64
	MaxIter int
}

// Fit returns one label in [0, K) per row of data. K is capped at the
// number of rows. The same seed and data always give the same labels.
func (km KMeans) Fit(data mat.Matrix) ([]int, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: no data to cluster", internalerr.ErrInvalidInput)
	}
	n, cols := data.Dims()
	if km.K <= 0 {
		return nil, fmt.Errorf("%w: cluster count must be positive, got %d", internalerr.ErrInvalidInput, km.K)
	}
	k := km.K
	if k > n {
		k = n
	}
	maxIter := km.MaxIter
	if maxIter <= 0 {
		maxIter = 100
	}

	rows := make([]*mat.VecDense, n)
	for i := range rows {
		rows[i] = mat.NewVecDense(cols, mat.Row(nil, i, data))
	}

	centroids := seedPlusPlus(rows, k, rand.New(rand.NewSource(km.Seed)))
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, r := range rows {
			best := nearest(r, centroids)
			if best != labels[i] {
				labels[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}
		updateCentroids(rows, labels, centroids)
	}
	return labels, nil
}

// seedPlusPlus picks the first centroid uniformly, then each next one
// with probability proportional to its squared distance to the closest
// centroid already chosen.
func seedPlusPlus(rows []*mat.VecDense, k int, rng *rand.Rand) []*mat.VecDense {
	chosen := make([]bool, len(rows))
	first := rng.Intn(len(rows))
	chosen[first] = true
	centroids := []*mat.VecDense{mat.VecDenseCopyOf(rows[first])}

	dist := make([]float64, len(rows))
	for len(centroids) < k {
		var sum float64
		for i, r := range rows {
			dist[i] = sqDist(r, centroids[nearest(r, centroids)])
			sum += dist[i]
		}

		next := -1
		if sum > 0 {
			target := rng.Float64() * sum
			for i, d := range dist {
				if d == 0 {
					continue
				}
				target -= d
				if target <= 0 {
					next = i
					break
				}
			}
			if next < 0 {
				// rounding left target just above zero: take the last candidate
				for i := len(dist) - 1; i >= 0; i-- {
					if dist[i] > 0 {
						next = i
						break
					}
				}
			}
		} else {
			// every row sits on a centroid
			for i := range rows {
				if !chosen[i] {
					next = i
					break
				}
			}
		}
		chosen[next] = true
		centroids = append(centroids, mat.VecDenseCopyOf(rows[next]))
	}
	return centroids
}

func updateCentroids(rows []*mat.VecDense, labels []int, centroids []*mat.VecDense) {
	dim := rows[0].Len()
	sums := make([]*mat.VecDense, len(centroids))
	sizes := make([]int, len(centroids))
	for c := range sums {
		sums[c] = mat.NewVecDense(dim, nil)
	}
	for i, r := range rows {
		sums[labels[i]].AddVec(sums[labels[i]], r)
		sizes[labels[i]]++
	}
	for c := range centroids {
		if sizes[c] == 0 {
			continue // empty cluster keeps its centroid
		}
		sums[c].ScaleVec(1/float64(sizes[c]), sums[c])
		centroids[c] = sums[c]
	}
}

// nearest returns the index of the closest centroid; ties go to the
// lowest index.
func nearest(r *mat.VecDense, centroids []*mat.VecDense) int {
	best, bestDist := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := sqDist(r, centroid); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func sqDist(a, b *mat.VecDense) float64 {
	var diff mat.VecDense
	diff.SubVec(a, b)
	return mat.Dot(&diff, &diff)
}
