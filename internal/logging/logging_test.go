package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLevels(t *testing.T) {
	l, err := New(false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.DebugLevel))
	assert.True(t, l.Core().Enabled(zap.InfoLevel))

	l, err = New(true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}

func TestNewCLILevels(t *testing.T) {
	assert.False(t, NewCLI(false).Core().Enabled(zap.InfoLevel))
	assert.True(t, NewCLI(false).Core().Enabled(zap.WarnLevel))
	assert.True(t, NewCLI(true).Core().Enabled(zap.DebugLevel))
}
