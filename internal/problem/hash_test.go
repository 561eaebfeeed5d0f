package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	fromYAML, err := Load("testdata/wingbox.yaml")
	require.NoError(t, err)
	fromCUE, err := Load("testdata/wingbox.cue")
	require.NoError(t, err)

	h1, err := fromYAML.Hash()
	require.NoError(t, err)
	h2, err := fromCUE.Hash()
	require.NoError(t, err)
	assert.Len(t, h1, 64)
	assert.Equal(t, h1, h2)

	// Thread count is an execution setting, not structure.
	fromYAML.Threads = 8
	h3, err := fromYAML.Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h3)
	assert.Equal(t, 8, fromYAML.Threads)

	fromYAML.Panels[2].Thickness = 0.014
	h4, err := fromYAML.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, h1, h4)
}

func TestHashWithDomain_Separator(t *testing.T) {
	assert.NotEqual(t,
		hashWithDomain("ab", []byte("c")),
		hashWithDomain("a", []byte("bc")))
}
