package catalog

import (
	"errors"
	"fmt"
)

type CatalogErrorKind string

const (
	FileError        CatalogErrorKind = "file"
	ParseError       CatalogErrorKind = "parse"
	FormatError      CatalogErrorKind = "format"
	ConsistencyError CatalogErrorKind = "consistency"
)

var (
	ErrUnknownFormat      = errors.New("unknown catalog format")
	ErrNoTranslations     = errors.New("catalog has no translations")
	ErrInvalidCatalog     = errors.New("invalid catalog")
	ErrUnsupportedXZ      = errors.New("xz compression is not supported for this format")
	ErrUnknownTranslation = errors.New("unknown translation")
)

type CatalogError struct {
	Kind    CatalogErrorKind
	Message *string
	Err     error
	Cause   error
}

func (e *CatalogError) Error() string {
	if e.Message != nil {
		return fmt.Sprintf("catalog %s error: %s - %v (cause: %v)", e.Kind, *e.Message, e.Err, e.Cause)
	}
	return fmt.Sprintf("catalog %s error: %v (cause: %v)", e.Kind, e.Err, e.Cause)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

func newError(kind CatalogErrorKind, err, cause error, format string, args ...any) *CatalogError {
	ce := &CatalogError{Kind: kind, Err: err, Cause: cause}
	if format != "" {
		msg := fmt.Sprintf(format, args...)
		ce.Message = &msg
	}
	return ce
}
