package chart_test

import (
	"bytes"
	"testing"

	"github.com/msousa/jango"
	"github.com/msousa/jango/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is the PNG file signature.
var pngHeader = []byte{0x89, 0x50, 0x4e, 0x47}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("renders year series as PNG", func(t *testing.T) {
		t.Parallel()

		series := &jango.Series{
			Title: "Produção de petróleo",
			Unit:  "bpd",
			Points: []jango.Point{
				{Label: "2021", Value: 1.12},
				{Label: "2022", Value: 1.14},
				{Label: "2023", Value: 1.10},
			},
		}

		png, err := chart.NewRenderer().Render(series)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, pngHeader))
	})

	t.Run("renders labeled series as PNG", func(t *testing.T) {
		t.Parallel()

		series := &jango.Series{
			Title: "Participação por bloco",
			Unit:  "%",
			Points: []jango.Point{
				{Label: "Bloco 15", Value: 36},
				{Label: "Bloco 17", Value: 41},
				{Label: "Bloco 32", Value: 23},
			},
		}

		png, err := chart.NewRenderer().Render(series)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, pngHeader))
	})

	t.Run("rejects series below the point minimum", func(t *testing.T) {
		t.Parallel()

		series := &jango.Series{
			Title:  "Produção",
			Points: []jango.Point{{Label: "2023", Value: 1.1}},
		}

		_, err := chart.NewRenderer().Render(series)
		require.Error(t, err)
		assert.Equal(t, jango.EINVALID, jango.ErrorCode(err))
	})

	t.Run("rejects nil series", func(t *testing.T) {
		t.Parallel()

		_, err := chart.NewRenderer().Render(nil)
		require.Error(t, err)
		assert.Equal(t, jango.EINVALID, jango.ErrorCode(err))
	})
}
