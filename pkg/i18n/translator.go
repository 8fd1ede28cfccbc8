package i18n

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/finauth/pkg/logger"
)

// DefaultLanguage is the product's language.
var DefaultLanguage = language.MustParse("pt-BR")

// Translator resolves message keys against per-language catalogs.
// It is read-only after construction and safe for concurrent use.
type Translator struct {
	catalogs map[language.Tag]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
	fallback language.Tag
	log      *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithLogger logs missing keys at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.log = l
		}
	}
}

// WithFallback overrides the language used when nothing else matches.
func WithFallback(tag language.Tag) Option {
	return func(t *Translator) { t.fallback = tag }
}

// New loads every catalog in fsys. Files are named by BCP 47 tag, e.g. pt-BR.yaml.
func New(fsys fs.FS, opts ...Option) (*Translator, error) {
	catalogs, err := loadCatalogs(fsys)
	if err != nil {
		return nil, err
	}

	t := &Translator{
		catalogs: catalogs,
		fallback: DefaultLanguage,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	// The fallback goes first so the matcher prefers it on ties.
	t.tags = append(t.tags, t.fallback)
	for tag := range catalogs {
		if tag != t.fallback {
			t.tags = append(t.tags, tag)
		}
	}
	slices.SortStableFunc(t.tags[1:], func(a, b language.Tag) int {
		return strings.Compare(a.String(), b.String())
	})
	t.matcher = language.NewMatcher(t.tags)
	return t, nil
}

// MustNew is New that panics on error.
func MustNew(fsys fs.FS, opts ...Option) *Translator {
	t, err := New(fsys, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Languages returns the loaded languages, fallback first.
func (t *Translator) Languages() []language.Tag {
	return slices.Clone(t.tags)
}

// Match picks the best supported language for the given preferences, which
// may be raw Accept-Language headers or tag strings.
func (t *Translator) Match(prefs ...string) language.Tag {
	var wanted []language.Tag
	for _, p := range prefs {
		tags, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		wanted = append(wanted, tags...)
	}
	if len(wanted) == 0 {
		return t.fallback
	}
	_, idx, conf := t.matcher.Match(wanted...)
	if conf == language.No {
		return t.fallback
	}
	return t.tags[idx]
}

// T translates key into lang. Args are name/value pairs substituted into
// %{name} placeholders. A missing key falls back to the default language and
// finally to the key itself.
func (t *Translator) T(lang language.Tag, key string, args ...any) string {
	values := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		values[fmt.Sprint(args[i])] = args[i+1]
	}
	return t.Tv(lang, key, values)
}

// Tv is T with placeholder values given as a map.
func (t *Translator) Tv(lang language.Tag, key string, values map[string]any) string {
	msg, ok := t.lookup(lang, key)
	if !ok {
		t.log.Debug("missing translation", slog.String("lang", lang.String()), slog.String("key", key))
		return key
	}
	if len(values) == 0 {
		return msg
	}
	return placeholder.ReplaceAllStringFunc(msg, func(m string) string {
		name := m[2 : len(m)-1]
		if v, ok := values[name]; ok {
			return fmt.Sprint(v)
		}
		return m
	})
}

// Tc translates using the language stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...any) string {
	return t.T(Locale(ctx), key, args...)
}

// Has reports whether key exists for lang without falling back.
func (t *Translator) Has(lang language.Tag, key string) bool {
	_, ok := t.catalogs[lang][key]
	return ok
}

func (t *Translator) lookup(lang language.Tag, key string) (string, bool) {
	if msg, ok := t.catalogs[lang][key]; ok {
		return msg, true
	}
	if base, _ := lang.Base(); base.String() != lang.String() {
		if msg, ok := t.catalogs[language.Make(base.String())][key]; ok {
			return msg, true
		}
	}
	msg, ok := t.catalogs[t.fallback][key]
	return msg, ok
}

var placeholder = regexp.MustCompile(`%\{[a-zA-Z0-9_]+\}`)
