package i18n

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/cloudfoundry/jibber_jabber"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLanguage is the catalog every key must exist in.
const DefaultLanguage = "en"

//go:embed catalogs/*.yaml
var catalogFS embed.FS

var errUnknownLanguage = errors.New("unknown language")

// Translator resolves message keys against per-language YAML catalogs.
type Translator struct {
	language string
	catalogs map[string]map[string]string
}

// New returns a Translator with all embedded catalogs loaded and the
// language set from the environment locale, falling back to English.
func New() *Translator {
	t := &Translator{
		catalogs: loadCatalogs(),
	}

	if err := t.SetLanguage(detectLanguage(t.Languages())); err != nil {
		t.language = DefaultLanguage
	}

	return t
}

// loadCatalogs parses every embedded catalog, keyed by the file's base name.
// A malformed catalog is skipped rather than failing the whole tool.
func loadCatalogs() map[string]map[string]string {
	entries, err := catalogFS.ReadDir("catalogs")
	if err != nil {
		return map[string]map[string]string{}
	}

	catalogs := make(map[string]map[string]string, len(entries))

	for _, entry := range entries {
		name := entry.Name()

		contents, err := catalogFS.ReadFile(path.Join("catalogs", name))
		if err != nil {
			continue
		}

		strs := make(map[string]string)
		if err := yaml.Unmarshal(contents, strs); err != nil {
			continue
		}

		catalogs[strings.TrimSuffix(name, ".yaml")] = strs
	}

	return catalogs
}

// detectLanguage matches the environment locale against the available
// catalogs and returns the best language identifier.
func detectLanguage(available []string) string {
	tags := make([]language.Tag, 0, len(available))
	for _, lang := range available {
		tags = append(tags, language.Raw.Make(lang))
	}

	if len(tags) == 0 {
		return DefaultLanguage
	}

	locale, err := jibber_jabber.DetectIETF()
	if err != nil {
		return DefaultLanguage
	}

	_, index, confidence := language.NewMatcher(tags).Match(language.Make(locale))
	if confidence == language.No {
		return DefaultLanguage
	}

	return available[index]
}

// SetLanguage switches the current language; the catalog must exist.
func (t *Translator) SetLanguage(lang string) error {
	if _, ok := t.catalogs[lang]; !ok {
		return fmt.Errorf("%w: %s", errUnknownLanguage, lang)
	}

	t.language = lang

	return nil
}

// Language returns the identifier (e.g. "en") for the current language.
func (t *Translator) Language() string {
	return t.language
}

// Languages returns identifiers for all available languages, the default
// language first and the rest sorted alphabetically.
func (t *Translator) Languages() []string {
	var languages []string

	hasDefault := false

	for lang := range t.catalogs {
		if lang == DefaultLanguage {
			hasDefault = true
			continue
		}

		languages = append(languages, lang)
	}

	sort.Strings(languages)

	if hasDefault {
		languages = append([]string{DefaultLanguage}, languages...)
	}

	return languages
}

// Get returns the localized string for a key, formatted with args.
// Missing keys fall back to the default language and then to the key
// itself, so a gap in a catalog never hides a message entirely.
func (t *Translator) Get(key string, args ...any) string {
	str, ok := t.catalogs[t.language][key]
	if !ok {
		str, ok = t.catalogs[DefaultLanguage][key]
	}

	if !ok {
		str = key
	}

	if len(args) == 0 {
		return str
	}

	return fmt.Sprintf(str, args...)
}

//nolint:gochecknoglobals // One process-wide translator mirrors the process-wide locale.
var defaultTranslator = New()

// T resolves a key through the default translator.
func T(key string, args ...any) string {
	return defaultTranslator.Get(key, args...)
}
