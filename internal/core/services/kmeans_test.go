package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKMeansSeparatesObviousGroups clusters two well-separated point
// groups and expects a clean split.
func TestKMeansSeparatesObviousGroups(t *testing.T) {
	vectors := [][]float64{
		{0.0, 0.1},
		{0.1, 0.0},
		{10.0, 10.1},
		{10.1, 10.0},
	}

	assignments, centroids := kmeans(vectors, 2)
	require.Len(t, assignments, 4)
	require.Len(t, centroids, 2)

	assert.Equal(t, assignments[0], assignments[1])
	assert.Equal(t, assignments[2], assignments[3])
	assert.NotEqual(t, assignments[0], assignments[2])
}

// TestKMeansDeterministic runs the same input twice and expects
// identical assignments and centroids.
func TestKMeansDeterministic(t *testing.T) {
	vectors := [][]float64{
		{1, 2, 3}, {4, 5, 6}, {1.5, 2.5, 3.5}, {7, 8, 9}, {4.2, 5.1, 6.3},
	}

	a1, c1 := kmeans(vectors, 3)
	a2, c2 := kmeans(vectors, 3)
	assert.Equal(t, a1, a2)
	assert.Equal(t, c1, c2)
}

// TestKMeansSingleCluster checks k=1 assigns every vector to cluster 0
// with the centroid at the mean.
func TestKMeansSingleCluster(t *testing.T) {
	vectors := [][]float64{{0, 0}, {2, 2}, {4, 4}}

	assignments, centroids := kmeans(vectors, 1)
	require.Len(t, centroids, 1)
	for _, a := range assignments {
		assert.Equal(t, 0, a)
	}
	assert.InDelta(t, 2.0, centroids[0][0], 1e-9)
	assert.InDelta(t, 2.0, centroids[0][1], 1e-9)
}

// TestKMeansTieGoesToLowestIndex seeds two identical centroids and
// expects every vector to land on the first.
func TestKMeansTieGoesToLowestIndex(t *testing.T) {
	vectors := [][]float64{{1, 1}, {1, 1}, {1, 1}}

	assignments, _ := kmeans(vectors, 2)
	for _, a := range assignments {
		assert.Equal(t, 0, a)
	}
}

// TestKMeansMoreClustersThanVectors pads missing centroids with zero
// vectors and leaves them empty.
func TestKMeansMoreClustersThanVectors(t *testing.T) {
	vectors := [][]float64{{5, 5}, {6, 6}}

	assignments, centroids := kmeans(vectors, 4)
	require.Len(t, assignments, 2)
	require.Len(t, centroids, 4)
	for _, a := range assignments {
		assert.Less(t, a, 2)
	}
	assert.Equal(t, []float64{0, 0}, centroids[3])
}

func TestKMeansDegenerateInputs(t *testing.T) {
	tests := []struct {
		name    string
		vectors [][]float64
		k       int
	}{
		{name: "no vectors", vectors: nil, k: 2},
		{name: "zero k", vectors: [][]float64{{1}}, k: 0},
		{name: "zero dims", vectors: [][]float64{{}}, k: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assignments, centroids := kmeans(tt.vectors, tt.k)
			assert.Nil(t, assignments)
			assert.Nil(t, centroids)
		})
	}
}

func TestSquaredDistance(t *testing.T) {
	assert.Equal(t, 0.0, squaredDistance([]float64{1, 2}, []float64{1, 2}))
	assert.Equal(t, 25.0, squaredDistance([]float64{0, 0}, []float64{3, 4}))
}
