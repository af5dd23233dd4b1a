package cli

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/lens/errors"
)

func TestNewStandardCommandFlags(t *testing.T) {
	cmd := NewStandardCommand("lens", "test command")

	require.NoError(t, cmd.PersistentFlags().Set("verbose", "true"))
	require.NoError(t, cmd.PersistentFlags().Set("config", "custom.yml"))

	opts := GetOptions(cmd)
	assert.True(t, opts.Verbose)
	assert.False(t, opts.JSONOutput)
	assert.Equal(t, "custom.yml", opts.ConfigFile)
}

func TestGetLoggerVerbose(t *testing.T) {
	cmd := NewStandardCommand("lens", "test command")
	require.NoError(t, cmd.PersistentFlags().Set("verbose", "true"))

	logger := GetLogger(cmd)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestInitConfigExplicitPathWins(t *testing.T) {
	path, err := InitConfig("explicit.yml")
	require.NoError(t, err)
	assert.Equal(t, "explicit.yml", path)
}

func TestErrorHandlerPassesErrorThrough(t *testing.T) {
	h := NewErrorHandler(false)

	err := errors.DocumentNotFound("missing.json", nil)
	assert.Same(t, error(err), h.Handle(err))

	plain := assert.AnError
	assert.Equal(t, plain, h.Handle(plain))
}
