package service_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/macrotrack/backend/internal/service"
)

func distance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

func TestGenerateEmbedding(t *testing.T) {
	a := service.GenerateEmbedding("Apple, raw").Slice()
	assert.Len(t, a, service.EmbeddingDims)
	assert.Equal(t, a, service.GenerateEmbedding("apple RAW").Slice(), "case and punctuation are ignored")

	var norm float64
	for _, v := range a {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1, norm, 1e-5)
}

func TestGenerateEmbeddingSimilarity(t *testing.T) {
	apple := service.GenerateEmbedding("apple raw").Slice()
	appleJuice := service.GenerateEmbedding("apple juice raw").Slice()
	salmon := service.GenerateEmbedding("smoked salmon fillet").Slice()

	assert.Less(t, distance(apple, appleJuice), distance(apple, salmon))
}

func TestGenerateEmbeddingEmptyText(t *testing.T) {
	v := service.GenerateEmbedding("  ,, ").Slice()
	assert.Len(t, v, service.EmbeddingDims)
	assert.Equal(t, float32(1), v[0])
}
