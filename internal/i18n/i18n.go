// Package i18n holds the user-facing texts of hotelmgr.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when the configured locale matches nothing
const DefaultLocale = "pt-BR"

//go:embed locales/*.yaml
var localesFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle is every locale's catalog
type Bundle struct {
	builder *catalog.Builder
	tags    []language.Tag
	matcher language.Matcher
}

// Load parses the embedded catalogs
func Load() (*Bundle, error) {
	return LoadFS(localesFS)
}

// LoadFS parses locales/*.yaml from fsys
func LoadFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	def := language.Make(DefaultLocale)
	b := &Bundle{builder: catalog.NewBuilder(catalog.Fallback(def))}

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
		}

		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
		}

		tag, err := language.Parse(strings.TrimSpace(file.Locale))
		if err != nil {
			return nil, fmt.Errorf("catalog %s: invalid locale %q: %w", path, file.Locale, err)
		}

		for key, msg := range file.Messages {
			if err := b.builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s: key %q: %w", path, key, err)
			}
		}
		b.tags = append(b.tags, tag)
	}

	// The default locale goes first so unmatched requests resolve to it
	sort.SliceStable(b.tags, func(i, j int) bool { return b.tags[i] == def })
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Translator renders catalog keys for one locale
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// Translator returns the translator for the supported locale closest to locale
func (b *Bundle) Translator(locale string) *Translator {
	_, idx, _ := b.matcher.Match(language.Make(locale))
	tag := b.tags[idx]
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b.builder)),
	}
}

// Locale returns the resolved locale
func (t *Translator) Locale() string {
	return t.tag.String()
}

// T formats the message registered under key
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// MustLoad loads the embedded catalogs and returns the translator for locale
func MustLoad(locale string) *Translator {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b.Translator(locale)
}
