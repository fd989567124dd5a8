package service

import (
	"hash/fnv"
	"math"
	"strings"

	pgvector "github.com/pgvector/pgvector-go"
)

// EmbeddingDims must match the vector column of food_log_entries.
const EmbeddingDims = 16

// GenerateEmbedding returns a deterministic embedding for a food description.
// Character trigrams of every word are hashed into EmbeddingDims buckets and
// the result is L2-normalized, so descriptions sharing words land close
// together. Empty text yields a unit vector on the first axis; the vector
// column never holds an empty value.
func GenerateEmbedding(text string) pgvector.Vector {
	vec := make([]float32, EmbeddingDims)
	for _, word := range strings.FieldsFunc(strings.ToLower(text), isSeparator) {
		padded := " " + word + " "
		for i := 0; i+3 <= len(padded); i++ {
			h := fnv.New32a()
			h.Write([]byte(padded[i : i+3]))
			vec[h.Sum32()%EmbeddingDims]++
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		vec[0] = 1
		return pgvector.NewVector(vec)
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return pgvector.NewVector(vec)
}

func isSeparator(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
}
