package i18n

import "errors"

var (
	ErrNoCatalogs      = errors.New("i18n: no catalogs loaded")
	ErrInvalidCatalog  = errors.New("i18n: invalid catalog")
	ErrInvalidLanguage = errors.New("i18n: invalid language tag")
)
