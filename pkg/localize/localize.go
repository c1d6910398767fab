// Package localize adapts go-i18n bundles to the commando Localizer.
package localize

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/bradykim7/commando/pkg/commando"
)

//go:embed locales/*.toml
var builtinLocales embed.FS

// NewBundle returns a bundle for defaultLocale that reads TOML and JSON
// message files, preloaded with the default English messages and the
// bundled translations.
func NewBundle(defaultLocale string) (*i18n.Bundle, error) {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("parse default locale %q: %w", defaultLocale, err)
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	messages := make([]*i18n.Message, 0, len(commando.DefaultMessages))
	for id, text := range commando.DefaultMessages {
		messages = append(messages, &i18n.Message{ID: id, Other: text})
	}
	tags := []language.Tag{language.English}
	if base, _ := tag.Base(); base.String() == "en" && tag != language.English {
		tags = append(tags, tag)
	}
	for _, t := range tags {
		if err := bundle.AddMessages(t, messages...); err != nil {
			return nil, fmt.Errorf("add default messages: %w", err)
		}
	}

	entries, err := builtinLocales.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read bundled locales: %w", err)
	}
	for _, entry := range entries {
		if _, err := bundle.LoadMessageFileFS(builtinLocales, "locales/"+entry.Name()); err != nil {
			return nil, fmt.Errorf("load bundled locale %s: %w", entry.Name(), err)
		}
	}
	return bundle, nil
}

// LoadDir loads every .toml and .json message file in dir. Files are named
// after their language, e.g. "active.fr.toml".
func LoadDir(bundle *i18n.Bundle, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read locales dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".toml", ".json":
		default:
			continue
		}
		if _, err := bundle.LoadMessageFile(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("load %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// Localizer formats messages in the caller's locale. Keys the bundle does
// not know are handed to the fallback, so plain text passes through.
type Localizer struct {
	bundle        *i18n.Bundle
	defaultLocale string
	fallback      commando.Localizer

	mu    sync.Mutex
	cache map[string]*i18n.Localizer
}

// New returns a Localizer over bundle.
func New(bundle *i18n.Bundle, defaultLocale string) *Localizer {
	return &Localizer{
		bundle:        bundle,
		defaultLocale: defaultLocale,
		fallback:      commando.DefaultLocalizer{},
		cache:         make(map[string]*i18n.Localizer),
	}
}

func (l *Localizer) Format(key string, inv *commando.Invocation, args ...any) string {
	locale := l.defaultLocale
	if inv != nil && inv.Source != nil && inv.Origin().Locale != "" {
		locale = inv.Origin().Locale
	}

	text, err := l.localizer(locale).Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil || text == "" {
		return l.fallback.Format(key, inv, args...)
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}

func (l *Localizer) localizer(locale string) *i18n.Localizer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if loc, ok := l.cache[locale]; ok {
		return loc
	}
	loc := i18n.NewLocalizer(l.bundle, locale, l.defaultLocale)
	l.cache[locale] = loc
	return loc
}
