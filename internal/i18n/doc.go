// Package i18n localizes user-facing strings.
//
// Message catalogs are YAML files embedded per language tag. The language
// is detected from the environment locale and matched against the available
// catalogs; English is both the fallback language and the reference catalog
// every key must exist in.
package i18n
