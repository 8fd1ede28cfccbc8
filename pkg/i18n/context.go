package i18n

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

type localeKey struct{}

// WithLocale stores lang in ctx.
func WithLocale(ctx context.Context, lang language.Tag) context.Context {
	return context.WithValue(ctx, localeKey{}, lang)
}

// Locale returns the language stored in ctx, or DefaultLanguage.
func Locale(ctx context.Context) language.Tag {
	if lang, ok := ctx.Value(localeKey{}).(language.Tag); ok {
		return lang
	}
	return DefaultLanguage
}

// Middleware negotiates the request language from the "lang" query parameter
// and the Accept-Language header, and stores it in the request context.
func (t *Translator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := t.Match(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Language", lang.String())
		next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), lang)))
	})
}
