package prof

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionWritesProfiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s, err := Start(fsys, Paths{CPU: "/out/cpu.pprof", Heap: "/out/heap.pprof"})
	require.NoError(t, err)
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())

	for _, path := range []string{"/out/cpu.pprof", "/out/heap.pprof"} {
		info, err := fsys.Stat(path)
		require.NoError(t, err, path)
		assert.Positive(t, info.Size(), path)
	}
}

func TestNilSessionStop(t *testing.T) {
	var s *Session
	assert.NoError(t, s.Stop())
}
