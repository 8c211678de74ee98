// Package syntax provides the lexer and parser for Power Query: a
// line-aware, incremental lexer; a recursive-descent parser that retains
// partial context on failure; and the node-id map and active-node lookup
// that let the inspect package walk both finished and unfinished syntax.
package syntax
