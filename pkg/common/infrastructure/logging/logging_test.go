package logging

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() {
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.TextFormatter{})
	})

	require.NoError(t, Configure("debug", FormatText))
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	_, ok := log.StandardLogger().Formatter.(*log.TextFormatter)
	assert.True(t, ok)

	require.NoError(t, Configure("warn", FormatJSON))
	_, ok = log.StandardLogger().Formatter.(*log.JSONFormatter)
	assert.True(t, ok)

	assert.Error(t, Configure("loud", FormatJSON))
	assert.Error(t, Configure("info", "xml"))
}
