package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	l := GetProjectLogger()
	defer l.SetLevel(logrus.InfoLevel)

	require.NoError(t, SetLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.Same(t, l, GetProjectLogger())

	require.Error(t, SetLevel("loud"))
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
}
