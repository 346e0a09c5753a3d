package services

// maxKMeansIterations caps the assign/update loop. Small batches
// converge far earlier; the cap only guards pathological inputs.
const maxKMeansIterations = 25

// kmeans clusters dense vectors into k groups and returns the
// per-vector assignments alongside the final centroids.
//
// Everything about it is deterministic: the first k input vectors seed
// the centroids (padded with zero vectors if the clamp ever lets k
// exceed the input, which it should not), nearest-centroid ties go to
// the lowest index via strict less-than, and empty centroids keep
// their previous position for the round. The loop stops early once no
// assignment changes.
func kmeans(vectors [][]float64, k int) (assignments []int, centroids [][]float64) {
	if len(vectors) == 0 || k <= 0 {
		return nil, nil
	}
	dims := len(vectors[0])
	if dims == 0 {
		return nil, nil
	}

	centroids = make([][]float64, 0, k)
	for i := 0; i < k && i < len(vectors); i++ {
		centroid := make([]float64, dims)
		copy(centroid, vectors[i])
		centroids = append(centroids, centroid)
	}
	for len(centroids) < k {
		centroids = append(centroids, make([]float64, dims))
	}

	assignments = make([]int, len(vectors))
	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for idx, vector := range vectors {
			best := 0
			bestDist := squaredDistance(vector, centroids[0])
			for centroidIdx := 1; centroidIdx < len(centroids); centroidIdx++ {
				if dist := squaredDistance(vector, centroids[centroidIdx]); dist < bestDist {
					bestDist = dist
					best = centroidIdx
				}
			}
			if assignments[idx] != best {
				assignments[idx] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		accum := make([][]float64, k)
		for i := range accum {
			accum[i] = make([]float64, dims)
		}
		counts := make([]int, k)
		for idx, vector := range vectors {
			clusterID := assignments[idx]
			counts[clusterID]++
			for dim, value := range vector {
				accum[clusterID][dim] += value
			}
		}
		for i := range centroids {
			if counts[i] == 0 {
				continue
			}
			for dim := 0; dim < dims; dim++ {
				centroids[i][dim] = accum[i][dim] / float64(counts[i])
			}
		}
	}
	return assignments, centroids
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
