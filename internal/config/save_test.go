package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveOptions_PatchesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	err := SaveOptions(path, Options{
		Locales:         []string{"de", "en"},
		Style:           Ptr("short"),
		HideSeconds:     Ptr(false),
		HideSecondsText: HideSecondsText{Past: Ptr("gerade eben")},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	require.Contains(t, content, "# reltime configuration")
	require.Contains(t, content, "locales: [de, en]")
	require.Contains(t, content, "style: short")

	v := NewViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	o, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, []string{"de", "en"}, o.Locales)
	require.Equal(t, "short", *o.Style)
	require.Equal(t, "always", *o.Numeric, "untouched keys keep their values")
	require.False(t, *o.HideSeconds)
	require.Equal(t, "gerade eben", *o.HideSecondsText.Past)
}

func TestSaveOptions_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new", "config.yaml")
	require.NoError(t, SaveOptions(path, Options{RoundStrategy: Ptr("floor")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "round_strategy: floor\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file is cleaned up")
}

func TestSaveOptions_ReplacesNestedValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hide_seconds_text:\n  past: old\n  future: later\n"), 0o600))

	require.NoError(t, SaveOptions(path, Options{HideSecondsText: HideSecondsText{Past: Ptr("new")}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hide_seconds_text:\n  past: new\n  future: later\n", string(data))
}

func TestSaveOptions_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.ErrorIs(t, SaveOptions(path, Options{Numeric: Ptr("never")}), ErrInvalidOption)
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestSaveOptions_RejectsNonMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o600))
	require.Error(t, SaveOptions(path, Options{Style: Ptr("long")}))
}
