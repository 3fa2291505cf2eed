package hash

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

func TestHash_KnownValues(t *testing.T) {
	tests := []struct {
		in   string
		want int32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 3105},
		{"hello", 99162322},
		{"hello world", 1794106052},
		{"Hello World", -862545276},
		// Surrogate pairs hash as two UTF-16 code units.
		{"😀", 1772899},
		{"como configurar o sistema", -578504973},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Hash(tt.in))
		})
	}
}

func TestVector_KnownComponents(t *testing.T) {
	v := Vector("hello", domain.EmbeddingDimensions)

	require.Len(t, v, domain.EmbeddingDimensions)
	assert.InDelta(t, -0.0713982209, float64(v[0]), 1e-6)
	assert.InDelta(t, 0.0115187652, float64(v[1]), 1e-6)
	// abs(Hash("hello")) % 384 == 82 carries the word bump.
	assert.InDelta(t, 0.1370568573, float64(v[82]), 1e-6)
}

func TestVector_Deterministic(t *testing.T) {
	texts := []string{
		"Para configurar o sistema, primeiro abra o painel.",
		"The quick brown fox jumps over the lazy dog",
		"   leading and trailing   ",
		"ação rápida às 10h30",
	}

	for _, text := range texts {
		a := Vector(text, domain.EmbeddingDimensions)
		b := Vector(text, domain.EmbeddingDimensions)
		assert.Equal(t, a, b, "vectors must be bit-identical for %q", text)
	}
}

func TestVector_UnitNorm(t *testing.T) {
	texts := []string{
		"hello",
		"A much longer passage of text that contains many different words and repeats words words words.",
		"1. Abrir o aplicativo 2. Configurar a conta",
	}

	for _, text := range texts {
		v := Vector(text, domain.EmbeddingDimensions)
		assert.InDelta(t, 1.0, v.Norm(), 1e-5, text)
	}
}

func TestVector_EmptyTextBumpsFirstComponent(t *testing.T) {
	v := Vector("", domain.EmbeddingDimensions)

	assert.False(t, v.IsZero())
	assert.InDelta(t, 1.0, float64(v[0]), 1e-9)
	assert.InDelta(t, 1.0, v.Norm(), 1e-6)
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{""}},
		{"hello", []string{"hello"}},
		{"a  b", []string{"a", "b"}},
		{" a", []string{"", "a"}},
		{"a\t", []string{"a", ""}},
		{"  a b\n", []string{"", "a", "b", ""}},
		{"x\u00a0y", []string{"x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, splitWords(tt.in))
		})
	}
}

func TestEmbeddingService(t *testing.T) {
	ctx := context.Background()
	svc := NewEmbeddingService()

	assert.Equal(t, domain.EmbeddingDimensions, svc.Dimensions())
	assert.Equal(t, ModelName, svc.ModelName())
	assert.NoError(t, svc.Ping(ctx))
	assert.NoError(t, svc.Close())

	single, err := svc.Embed(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, Vector("hello", domain.EmbeddingDimensions), single)

	batch, err := svc.EmbedBatch(ctx, []string{"first text", "hello", "third"})
	require.NoError(t, err)
	require.Len(t, batch, 3)
	assert.Equal(t, single, batch[1])
}

func TestEmbeddingService_EmbedBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEmbeddingService().EmbedBatch(ctx, []string{"a", "b"})
	assert.ErrorIs(t, err, context.Canceled)
}
