// Package i18n loads YAML message catalogs and translates keys with %{name}
// placeholders. Languages are negotiated with golang.org/x/text/language.
//
//	tr := i18n.MustNew(i18n.Builtin())
//	tr.T(i18n.DefaultLanguage, "auth.success.signup")
//	tr.T(language.English, "validation.password_too_short", "min_length", 8)
package i18n
