// Package locale supplies every user-facing string by key.
//
// Messages are templates with {placeholder} slots filled from the
// replacements passed to T. Missing keys fall back to the default locale
// and finally to the key itself, so a typo is visible but never fatal.
package locale

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Translator resolves a message key for one locale.
type Translator interface {
	T(key string, replacements map[string]any) string
	Locale() string
}

// Catalog holds messages for every supported locale.
type Catalog struct {
	fallback string
	messages map[string]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
}

// NewCatalog builds a catalog from per-locale message tables. The fallback
// locale must be present.
func NewCatalog(fallback string, tables map[string]map[string]string) (*Catalog, error) {
	if _, ok := tables[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %q has no messages", fallback)
	}
	codes := make([]string, 0, len(tables))
	for code := range tables {
		if code != fallback {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	// The matcher prefers the first tag when nothing matches.
	codes = append([]string{fallback}, codes...)

	tags := make([]language.Tag, 0, len(codes))
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", code, err)
		}
		tags = append(tags, tag)
	}
	return &Catalog{
		fallback: fallback,
		messages: tables,
		tags:     tags,
		matcher:  language.NewMatcher(tags),
	}, nil
}

// Default returns the built-in catalog with the bundled message tables.
func Default() *Catalog {
	c, err := Bundled("en")
	if err != nil {
		panic(err)
	}
	return c
}

// Bundled returns the bundled message tables with fallback as the
// default locale.
func Bundled(fallback string) (*Catalog, error) {
	return NewCatalog(fallback, map[string]map[string]string{
		"en": english,
		"nl": dutch,
	})
}

// Supported lists the locale codes in matcher preference order.
func (c *Catalog) Supported() []string {
	out := make([]string, len(c.tags))
	for i, t := range c.tags {
		out[i] = t.String()
	}
	return out
}

// Negotiate picks the best supported locale for an Accept-Language header
// (or any list of BCP 47 strings).
func (c *Catalog) Negotiate(accept ...string) string {
	_, idx := language.MatchStrings(c.matcher, accept...)
	if idx < 0 || idx >= len(c.tags) {
		return c.fallback
	}
	return c.tags[idx].String()
}

// For returns a translator bound to locale code. Unknown codes use the
// fallback locale.
func (c *Catalog) For(code string) Translator {
	if _, ok := c.messages[code]; !ok {
		code = c.fallback
	}
	return translator{catalog: c, code: code}
}

type translator struct {
	catalog *Catalog
	code    string
}

func (t translator) Locale() string { return t.code }

func (t translator) T(key string, replacements map[string]any) string {
	msg, ok := t.catalog.messages[t.code][key]
	if !ok {
		msg, ok = t.catalog.messages[t.catalog.fallback][key]
	}
	if !ok {
		msg = key
	}
	return Format(msg, replacements)
}

// Format fills {name} placeholders in msg.
func Format(msg string, replacements map[string]any) string {
	if len(replacements) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(replacements)*2)
	for k, v := range replacements {
		pairs = append(pairs, "{"+k+"}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
