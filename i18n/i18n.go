// Package i18n localizes menu strings from go-i18n message files.
//
// Message IDs are the untranslated menu strings themselves, so a TOML file
// for Spanish might read:
//
//	"New Game" = "Nueva partida"
//	Quit = "Salir"
//
// Strings without a translation are shown unchanged.
package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/phanxgames/marquee"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Message is a go-i18n message with plural forms.
type Message = i18n.Message

// Catalog holds loaded messages and the active language.
type Catalog struct {
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	langs     []string
	missing   map[string]bool
	// Logger receives one debug record per missing message ID.
	Logger *slog.Logger
}

// New creates a catalog whose fallback and initial language is base.
func New(base language.Tag) *Catalog {
	b := i18n.NewBundle(base)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	c := &Catalog{bundle: b, missing: map[string]bool{}, Logger: marquee.Logger()}
	c.langs = []string{base.String()}
	c.localizer = i18n.NewLocalizer(b, c.langs...)
	return c
}

// LoadFiles loads message files from disk. The language is taken from the
// file name, as in "menu.es.toml".
func (c *Catalog) LoadFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := c.bundle.LoadMessageFile(p); err != nil {
			return fmt.Errorf("i18n: load %s: %w", p, err)
		}
	}
	return nil
}

// LoadFS loads message files from fsys.
func (c *Catalog) LoadFS(fsys fs.FS, paths ...string) error {
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("i18n: load %s: %w", p, err)
		}
		if err := c.Parse(data, p); err != nil {
			return err
		}
	}
	return nil
}

// Parse loads one message file held in memory. name supplies the language
// and format.
func (c *Catalog) Parse(data []byte, name string) error {
	if _, err := c.bundle.ParseMessageFileBytes(data, name); err != nil {
		return fmt.Errorf("i18n: parse %s: %w", name, err)
	}
	return nil
}

// Languages returns the languages with loaded messages.
func (c *Catalog) Languages() []language.Tag {
	return c.bundle.LanguageTags()
}

// SetLanguage selects the preferred languages as BCP 47 tags, most
// preferred first.
func (c *Catalog) SetLanguage(codes ...string) error {
	for _, code := range codes {
		if _, err := language.Parse(code); err != nil {
			return fmt.Errorf("i18n: language %q: %w", code, err)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.langs = append([]string(nil), codes...)
	c.localizer = i18n.NewLocalizer(c.bundle, c.langs...)
	return nil
}

// Language returns the preferred language codes.
func (c *Catalog) Language() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.langs...)
}

// Translate returns the localized form of s, or s when there is none.
func (c *Catalog) Translate(s string) string {
	if s == "" {
		return s
	}
	return c.localize(&i18n.LocalizeConfig{MessageID: s}, s)
}

// Format localizes id with template data.
func (c *Catalog) Format(id string, data map[string]any) string {
	return c.localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data}, id)
}

// Plural localizes id choosing the plural form for count. The count is
// available to templates as .Count.
func (c *Catalog) Plural(id string, count int) string {
	return c.localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	}, id)
}

// Localize renders a message that carries its own default text.
func (c *Catalog) Localize(m *Message, data map[string]any) string {
	if m == nil {
		return ""
	}
	return c.localize(&i18n.LocalizeConfig{DefaultMessage: m, TemplateData: data}, m.Other)
}

// Translator returns c.Translate as a menu translator.
func (c *Catalog) Translator() marquee.Translator {
	return c.Translate
}

func (c *Catalog) localize(cfg *i18n.LocalizeConfig, fallback string) string {
	c.mu.RLock()
	l := c.localizer
	c.mu.RUnlock()
	msg, err := l.Localize(cfg)
	if err == nil || msg != "" {
		return msg
	}
	c.mu.Lock()
	first := !c.missing[fallback]
	c.missing[fallback] = true
	c.mu.Unlock()
	if first && c.Logger != nil {
		c.Logger.Debug("i18n: no translation", "id", fallback, "err", err)
	}
	return fallback
}
