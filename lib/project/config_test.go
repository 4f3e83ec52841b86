package project

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vyPal/provsniff/util"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	conf := Default()
	conf.Jobs = 3
	conf.Providers.BindingMethods = []string{"bind"}
	written, err := conf.Save(path, false, nil)
	require.NoError(t, err)
	assert.True(t, written)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Jobs)
	assert.Equal(t, []string{"bind"}, loaded.Providers.BindingMethods)
	assert.Equal(t, conf.Fingerprint(), loaded.Fingerprint())
}

func TestSaveDoesNotOverwriteSilently(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("jobs: 1\n"), 0644))

	conf := Default()
	written, err := conf.Save(path, false, nil)
	require.NoError(t, err)
	assert.False(t, written)

	written, err = conf.Save(path, false, util.NewPrompter(strings.NewReader("n\n"), &bytes.Buffer{}))
	require.NoError(t, err)
	assert.False(t, written)

	written, err = conf.Save(path, false, util.NewPrompter(strings.NewReader("y\n"), &bytes.Buffer{}))
	require.NoError(t, err)
	assert.True(t, written)

	written, err = conf.Save(path, true, nil)
	require.NoError(t, err)
	assert.True(t, written)
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("providers:\n  baseClass: BaseProvider\n"), 0644))

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "BaseProvider", conf.Providers.BaseClass)
	assert.Equal(t, "DeferrableProvider", conf.Providers.DeferrableInterface)
	assert.Equal(t, []string{"*.php"}, conf.Include)
	assert.True(t, conf.Cache.Enabled)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"unknown field":    "colour: red\n",
		"negative jobs":    "jobs: -1\n",
		"bad severity":     "rules:\n  deferred-providers:\n    severity: fatal\n",
		"empty base class": "providers:\n  baseClass: \"\"\n",
		"bad requires":     "requires: ^one\n",
		"not yaml":         "jobs: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))

			_, err := Load(path)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.True(t, os.IsNotExist(err))
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "app", "Providers")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("{}\n"), 0644))

	path, ok := Find(nested)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, FileName), path)
}

func TestCheckRequires(t *testing.T) {
	conf := Default()
	assert.NoError(t, conf.CheckRequires("0.1.0"))

	conf.Requires = "^1.2.0"
	assert.NoError(t, conf.CheckRequires("1.3.0"))
	assert.ErrorIs(t, conf.CheckRequires("2.0.0"), ErrInvalidConfig)
}

func TestFingerprintTracksRuleSettings(t *testing.T) {
	a, b := Default(), Default()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Jobs = 8
	b.Include = []string{"app/**/*.php"}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "discovery settings do not change results")

	b.Providers.ProvidesMethod = "contracts"
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestRuleConfigEnabled(t *testing.T) {
	off := false
	assert.True(t, RuleConfig{}.IsEnabled())
	assert.False(t, RuleConfig{Enabled: &off}.IsEnabled())
}
