package root

import (
	"testing"

	"fjacquet/docfields/internal/config"
	"fjacquet/docfields/internal/container"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "docfields", Cmd.Use)
	assert.Contains(t, Cmd.Short, "extract structured fields")
	assert.Contains(t, Cmd.Long, "delivery")
	assert.NotNil(t, Cmd.Run)
	assert.NotNil(t, Cmd.PersistentPreRunE)
	assert.NotNil(t, Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	flags := Cmd.PersistentFlags()

	require.NotNil(t, flags.Lookup("input"))
	assert.Equal(t, "i", flags.Lookup("input").Shorthand)
	require.NotNil(t, flags.Lookup("output"))
	assert.Equal(t, "o", flags.Lookup("output").Shorthand)

	for _, name := range []string{"config", "log-level", "log-format", "no-ocr"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	defer func() {
		logLevel, logFormat, noOCR = "", "", false
	}()

	cfg := config.Default()
	applyFlagOverrides(cfg)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.OCR.Enabled)

	logLevel, logFormat, noOCR = "debug", "json", true
	applyFlagOverrides(cfg)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.OCR.Enabled)
}

func TestInitContainer(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	defer SetContainer(nil)

	require.NoError(t, initContainer(Cmd))
	require.NotNil(t, GetContainer())
	assert.Same(t, GetContainer().GetLogger(), Log)
}

func TestInitContainer_BadConfigFile(t *testing.T) {
	defer func() { configFile = "" }()
	configFile = "/nonexistent/config.yaml"

	err := initContainer(Cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestSetContainer(t *testing.T) {
	defer SetContainer(nil)

	c, err := container.NewContainer(config.Default())
	require.NoError(t, err)
	SetContainer(c)
	assert.Same(t, c, GetContainer())
}
