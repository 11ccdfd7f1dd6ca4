package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNewTrackPlot(t *testing.T) {
	assert := assert.New(t)

	truth := mat.NewDense(3, 2, []float64{0, 0, 1, 1, 2, 2})
	measure := mat.NewDense(3, 2, nil)
	filter := mat.NewDense(3, 2, nil)

	plt, err := NewTrackPlot("x", truth, measure, filter)
	assert.NotNil(plt)
	assert.NoError(err)
	assert.Equal("x", plt.Title.Text)

	path := filepath.Join(t.TempDir(), "x.png")
	assert.NoError(SavePlot(plt, path))
	info, err := os.Stat(path)
	assert.NoError(err)
	assert.Greater(info.Size(), int64(0))

	plt, err = NewTrackPlot("x", nil, nil, nil)
	assert.Nil(plt)
	assert.Error(err)

	plt, err = NewTrackPlot("x", truth, mat.NewDense(3, 1, nil), filter)
	assert.Nil(plt)
	assert.Error(err)
}
