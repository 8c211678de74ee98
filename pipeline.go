// This file implements the library surface listed in the specification's
// external interfaces: Lex -> Snapshot -> Parse -> ActiveNode, and the
// three inspection operations (Scope, Type, AutocompleteKeyword) that
// consume a Parse's node-id map directly.

package pqcore

import (
	"github.com/pqls/pqcore/inspect"
	"github.com/pqls/pqcore/syntax"
)

// Lex tokenizes text from scratch, producing the lexer's line-by-line
// state (external interface 1).
func Lex(settings Settings, text string) *syntax.State {
	return syntax.Lex(settings.syntaxSettings(), text)
}

// Snapshot flattens a lexer State into a single absolute-position token
// stream (external interface 2).
func Snapshot(state *syntax.State) *syntax.Snapshot {
	return syntax.TakeSnapshot(state)
}

// ParseResult is what Parse returns: the node-id map built so far
// (complete or partial), the document root, and the first error
// encountered, if any.
type ParseResult struct {
	IDMap *syntax.NodeIdMap
	Root  syntax.NodeId
	Err   error
}

// Parse parses a Snapshot as a Power Query document (external interface
// 3). On error IDMap still holds the partial context tree built before
// the failure, so inspection can run on it.
func Parse(settings Settings, snap *syntax.Snapshot) ParseResult {
	result := syntax.ParseDocument(settings.syntaxSettings(), snap)
	return ParseResult{IDMap: result.IDMap, Root: result.Root, Err: result.Err}
}

// ActiveNodeAt resolves a cursor position against a parse's node-id map
// (external interface 4).
func ActiveNodeAt(idMap *syntax.NodeIdMap, snap *syntax.Snapshot, pos syntax.Position) syntax.ActiveNode {
	return syntax.ComputeActiveNode(idMap, snap, pos)
}

// Scope computes the set of names visible at targetNodeId (external
// interface 5). settings.Resolver plays no part here — scope never needs
// type information, only the binding structure already in idMap — but
// settings.CancellationToken still gates the ancestry walk.
func Scope(settings Settings, idMap *syntax.NodeIdMap, targetNodeId syntax.NodeId) []ScopeItem {
	return inspect.ComputeScopeForNode(idMap, targetNodeId, settings.CancellationToken).Items()
}

// TypeOf computes the type of targetNodeId (external interface 6),
// consulting settings.Resolver for identifiers and invocations the
// document doesn't itself declare, and settings.CancellationToken at
// every node visit.
func TypeOf(settings Settings, idMap *syntax.NodeIdMap, targetNodeId syntax.NodeId) Type {
	return inspect.TypeOf(idMap, settings.Resolver, targetNodeId, settings.CancellationToken)
}

// AutocompleteKeyword computes keyword candidates at an active node,
// optionally narrowed by a trailing partial token's text (external
// interface 7).
func AutocompleteKeyword(idMap *syntax.NodeIdMap, active syntax.ActiveNode, trailingToken string) []Keyword {
	return inspect.AutocompleteKeyword(idMap, active, trailingToken)
}
