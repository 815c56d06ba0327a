package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGetFormatting checks key lookup with and without format arguments.
func TestGetFormatting(t *testing.T) {
	t.Parallel()

	tr := New()
	require.NoError(t, tr.SetLanguage("en"))

	require.Equal(t, "Docker not installed.", tr.Get("docker_not_installed"))
	require.Equal(t, "/tmp/x: no such directory", tr.Get("no_such_directory", "/tmp/x"))
}

// TestUnknownKeyFallsBackToKey ensures a missing key never hides a message.
func TestUnknownKeyFallsBackToKey(t *testing.T) {
	t.Parallel()

	tr := New()
	require.Equal(t, "totally_unknown_key", tr.Get("totally_unknown_key"))
}

// TestSetLanguage covers switching catalogs and rejecting unknown tags.
func TestSetLanguage(t *testing.T) {
	t.Parallel()

	tr := New()
	require.NoError(t, tr.SetLanguage("es"))
	require.Equal(t, "es", tr.Language())
	require.Equal(t, "Docker no está instalado.", tr.Get("docker_not_installed"))

	require.Error(t, tr.SetLanguage("tlh"))
}

// TestLanguagesOrder ensures the default language leads the list.
func TestLanguagesOrder(t *testing.T) {
	t.Parallel()

	langs := New().Languages()
	require.NotEmpty(t, langs)
	require.Equal(t, DefaultLanguage, langs[0])
	require.Contains(t, langs, "es")
}

// TestCatalogsCoverEnglishKeys ensures every non-default catalog only uses
// keys that exist in the English reference catalog.
func TestCatalogsCoverEnglishKeys(t *testing.T) {
	t.Parallel()

	catalogs := loadCatalogs()
	english, ok := catalogs[DefaultLanguage]
	require.True(t, ok)

	for lang, strs := range catalogs {
		for key := range strs {
			require.Contains(t, english, key, "catalog %s has key %s missing from English", lang, key)
		}
	}
}
