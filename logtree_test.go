package logtree

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetDefault clears the process manager so each test observes a fresh
// environment-driven construction.
func resetDefault() {
	defaultMu.Lock()
	defaultManager = nil
	defaultConfig = nil
	defaultMu.Unlock()
}

func TestDefaultProductionRejectsInstall(t *testing.T) {
	resetDefault()
	t.Cleanup(resetDefault)

	m := Default()
	require.NotNil(t, m)

	err := InstallManager(NewDevelopmentManager(NewRecordingSink(), InfoLevel, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Same(t, m, Default(), "active manager must be untouched")
}

func TestInstallManagerInDevelopment(t *testing.T) {
	resetDefault()
	t.Cleanup(resetDefault)
	t.Setenv("LOGTREE_MODE", "development")
	t.Setenv("LOGTREE_PRETTY", "false")
	t.Setenv("LOGTREE_NAMESPACE", "false")

	sink := NewRecordingSink()
	custom := NewDevelopmentManager(sink, DebugLevel, nil)
	require.NoError(t, InstallManager(custom))

	lg := Create("probe")
	lg.Debug("through the custom manager")

	recs := sink.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, "through the custom manager", recs[0].Message)

	AddLevelMapping("probe", ErrorLevel)
	assert.Equal(t, ErrorLevel, lg.Level())
	assert.Equal(t, 0, SetChildrenLevel("nothing", WarnLevel))
	SetLevel("probe", WarnLevel)
	assert.Equal(t, WarnLevel, lg.Level())
	require.NoError(t, Flush())
}

func TestDefaultFallsBackOnBadEnvironment(t *testing.T) {
	resetDefault()
	t.Cleanup(resetDefault)
	t.Setenv("LOGTREE_LEVEL", "loud")

	m := Default()
	require.NotNil(t, m, "invalid environment must not leave the process without logging")

	// Fallback is production defaults.
	err := InstallManager(NewProductionManager(NewRecordingSink(), InfoLevel))
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewManagerVariantSelection(t *testing.T) {
	dev := NewDefaultConfig()
	dev.Mode = ModeDevelopment
	dev.Pretty = false
	dev.Output = filepath.Join(t.TempDir(), "dev.log")
	m, err := NewManager(dev)
	require.NoError(t, err)
	assert.NotEqual(t, -1, m.SetChildrenLevel("svc", WarnLevel))

	prod := NewDefaultConfig()
	prod.Output = filepath.Join(t.TempDir(), "prod.log")
	p, err := NewManager(prod)
	require.NoError(t, err)
	assert.Equal(t, -1, p.SetChildrenLevel("svc", WarnLevel))
}

func TestNewManagerInvalidConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Level = "loud"
	_, err := NewManager(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
}
