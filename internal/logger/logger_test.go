package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	for _, debug := range []bool{false, true} {
		log, err := New(debug)
		require.NoError(t, err)
		require.NotNil(t, log)

		want := zap.InfoLevel
		if debug {
			want = zap.DebugLevel
		}
		require.True(t, log.Core().Enabled(want))
		if !debug {
			require.False(t, log.Core().Enabled(zap.DebugLevel))
		}
	}
}
