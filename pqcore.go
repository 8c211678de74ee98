// Package pqcore provides a Go implementation of Power Query language
// services.
//
// Power Query (the "M" language) underlies Excel's and Power BI's Get &
// Transform experience. This package provides the core interfaces and
// types for embedding Power Query language tooling — lexing, parsing,
// and position-driven inspection — in a Go editor or linting service.
//
// To use this package, implement the ExternalTypeResolver interface to
// provide type information for identifiers and invocations that aren't
// declared in the document being inspected (the standard library surface
// every real query partially references).
package pqcore

import (
	"golang.org/x/text/language"

	"github.com/pqls/pqcore/inspect"
	"github.com/pqls/pqcore/syntax"
)

// Settings carries the caller-supplied collaborators threaded through
// every stage of the pipeline: the lexer/parser's locale and cancellation
// token, plus the external type resolver that scope/type inspection
// consult for names the document itself never defines.
//
// Locale is a language.Tag rather than a bare string so a caller can pass
// anything BCP 47 accepts ("fr-FR", "pt-BR") and have it parsed and
// validated once, up front, instead of every place an error message gets
// formatted. The zero value is language.Und, matching the teacher's
// untagged-by-default behavior. The lower-level syntax package only ever
// sees the tag's canonical string form — it has no reason to depend on
// x/text itself.
type Settings struct {
	Locale            language.Tag
	CancellationToken syntax.CancellationToken
	Resolver          ExternalTypeResolver
}

func (s Settings) syntaxSettings() syntax.Settings {
	return syntax.Settings{Locale: s.Locale.String(), CancellationToken: s.CancellationToken}
}

// ExternalTypeResolver is re-exported from inspect so callers implement
// just one interface regardless of which package name they reach for.
type ExternalTypeResolver = inspect.ExternalTypeResolver

// Keyword is a suggested reserved word from keyword autocomplete.
type Keyword = inspect.Keyword

// ScopeItem is one name visible at a position (see Scope).
type ScopeItem = inspect.ScopeItem

// ScopeItemKind classifies how a name entered scope.
type ScopeItemKind = inspect.ScopeItemKind

// Type is the result of type inspection.
type Type = inspect.Type

// PrimitiveKind is the base type lattice Type.Kind draws from.
type PrimitiveKind = inspect.PrimitiveKind
