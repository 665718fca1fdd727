package logging

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"":        logrus.WarnLevel,
		"debug":   logrus.DebugLevel,
		" INFO ":  logrus.InfoLevel,
		"error":   logrus.ErrorLevel,
		"warning": logrus.WarnLevel,
		"bogus":   logrus.WarnLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestComponentLoggersShareOutput(t *testing.T) {
	old, oldLevel := Log.Out, Log.GetLevel()
	t.Cleanup(func() {
		Log.SetOutput(old)
		Log.SetLevel(oldLevel)
	})

	var buf bytes.Buffer
	SetOutput(&buf)
	Log.SetLevel(logrus.InfoLevel)

	Scanner.WithField("path", "/docs").Info("reading")
	Enum.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "component=scanner")
	assert.Contains(t, out, "path=/docs")
	assert.NotContains(t, out, "hidden")
}

func TestSetVerbose(t *testing.T) {
	oldLevel := Log.GetLevel()
	t.Cleanup(func() { Log.SetLevel(oldLevel) })

	Log.SetLevel(logrus.WarnLevel)
	SetVerbose(false)
	assert.Equal(t, logrus.WarnLevel, Log.GetLevel())

	SetVerbose(true)
	if !Enabled {
		assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	}
}

func TestQuiet(t *testing.T) {
	old := Log.Out
	t.Cleanup(func() { Log.SetOutput(old) })

	Log.SetOutput(os.Stderr)
	Quiet()
	assert.Equal(t, io.Discard, Log.Out)
}
