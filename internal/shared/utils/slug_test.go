package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"vietnamese diacritics", "Tin Tức Hôm Nay", "tin-tuc-hom-nay"},
		{"special characters collapse", "Go 1.24 -- What's New?", "go-1-24-what-s-new"},
		{"leading trailing junk", "  ***Breaking News***  ", "breaking-news"},
		{"empty input", "", ""},
		{"only symbols", "!!!", ""},
		{"already a slug", "hello-world", "hello-world"},
		{"uppercase vietnamese D", "Đà Nẵng", "da-nang"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	once := Slugify("Bài Viết Mới Nhất!")
	assert.Equal(t, once, Slugify(once))
}

func TestUniqueSlug(t *testing.T) {
	ctx := context.Background()

	t.Run("base slug free", func(t *testing.T) {
		slug, err := UniqueSlug(ctx, "Hello World", func(ctx context.Context, s string) (bool, error) {
			return false, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "hello-world", slug)
	})

	t.Run("first suffix free", func(t *testing.T) {
		slug, err := UniqueSlug(ctx, "Hello World", func(ctx context.Context, s string) (bool, error) {
			return s == "hello-world", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "hello-world-1", slug)
	})

	t.Run("suffix appended to original base not compounded", func(t *testing.T) {
		// hello-world, hello-world-1, hello-world-2 taken → hello-world-3
		taken := map[string]bool{
			"hello-world":   true,
			"hello-world-1": true,
			"hello-world-2": true,
		}

		var probes []string
		slug, err := UniqueSlug(ctx, "Hello World", func(ctx context.Context, s string) (bool, error) {
			probes = append(probes, s)
			return taken[s], nil
		})
		require.NoError(t, err)
		assert.Equal(t, "hello-world-3", slug)
		assert.Equal(t, []string{"hello-world", "hello-world-1", "hello-world-2", "hello-world-3"}, probes)
	})

	t.Run("predicate error propagates", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := UniqueSlug(ctx, "Hello", func(ctx context.Context, s string) (bool, error) {
			return false, boom
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})
}
