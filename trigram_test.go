package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Trigrams(t *testing.T) {
	assert.Equal(t, trigramSet{"riv": {}, "ive": {}, "ver": {}, "ers": {}}, trigrams("Rivers"))
	assert.Equal(t, trigramSet{"ab": {}}, trigrams("ab"))
	assert.Equal(t, trigramSet{"a": {}}, trigrams("A"))
	assert.Empty(t, trigrams(""))
}

func Test_SimilarityIsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"rivers", "rivers_europe"},
		{"dem", "dem_2023.tif"},
		{"a", "abc"},
		{"", "whatever"},
	}

	for _, p := range pairs {
		assert.Equal(t, similarity(p[0], p[1]), similarity(p[1], p[0]), "pair %v", p)
	}
}

func Test_SimilarityIdentity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("rivers", "rivers"))
	assert.Equal(t, 1.0, similarity("RIVERS", "rivers"))
	assert.Equal(t, 0.0, similarity("", ""))
}

func Test_SimilarityRange(t *testing.T) {
	s := similarity("river", "rivers_of_europe")
	assert.Greater(t, s, 0.0)
	assert.Less(t, s, 1.0)

	assert.Equal(t, 0.0, similarity("xyz", "abc"))
	assert.Equal(t, 0.0, similarity("", "abc"))
}

func Test_SimilarityOrdersByCloseness(t *testing.T) {
	query := "rivers"
	near := similarity(query, "rivers_fr.gpkg")
	far := similarity(query, "elevation_model.tif")
	assert.Greater(t, near, far)
}
