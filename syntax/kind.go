// Package syntax: Kind is the single enumeration covering both lexical
// token kinds and AST/context node kinds, the way rowan-style trees (and
// the teacher's SyntaxKind) store leaves and branches under one
// discriminator. A token leaf's Kind is one of the token kinds (those
// declared before Document; see IsToken); a branch XOR node's Kind is
// one of the node kinds declared from Document on.
package syntax

// Kind is the type of a token, or of an AST/context node.
type Kind uint8

const (
	// End marks end of input. Error marks a lexical or structural failure
	// recorded in place of a well-formed token or node.
	End Kind = iota
	Error

	// --- Literals and names ---
	Identifier
	QuotedIdentifierStart   // `#"`, folded into Identifier at snapshot time
	QuotedIdentifierContent // folded into Identifier at snapshot time
	QuotedIdentifierEnd     // closing `"`, folded into Identifier at snapshot time
	NumericLiteral
	HexLiteral
	TextLiteral
	TextLiteralStart   // opening `"`, folded into TextLiteral at snapshot time
	TextLiteralContent // folded into TextLiteral at snapshot time
	TextLiteralEnd     // closing `"`, folded into TextLiteral at snapshot time

	// --- Comments (attached, never part of the token stream) ---
	LineComment
	MultilineComment
	MultilineCommentStart   // `/*`, folded into MultilineComment at snapshot time
	MultilineCommentContent // folded into MultilineComment at snapshot time
	MultilineCommentEnd     // `*/`, folded into MultilineComment at snapshot time

	// --- Keywords ---
	KeywordAnd
	KeywordOr
	KeywordNot
	KeywordAs
	KeywordIs
	KeywordMeta
	KeywordEach
	KeywordLet
	KeywordIn
	KeywordIf
	KeywordThen
	KeywordElse
	KeywordTry
	KeywordOtherwise
	KeywordError
	KeywordType
	KeywordNullable
	KeywordOptional
	KeywordSection
	KeywordShared
	KeywordTrue
	KeywordFalse
	KeywordNull

	// --- Primitive type names (keyword-like, contextual) ---
	KeywordAny
	KeywordAnyNonNull
	KeywordNone
	KeywordLogical
	KeywordNumber
	KeywordText
	KeywordDate
	KeywordDateTime
	KeywordDateTimeZone
	KeywordDuration
	KeywordTime
	KeywordBinary
	KeywordList
	KeywordRecord
	KeywordTable
	KeywordFunction
	KeywordAction

	// --- Punctuation ---
	LeftParen
	RightParen
	LeftBracket
	RightBracket
	LeftBrace
	RightBrace
	Comma
	Semicolon
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	Plus
	Minus
	Star
	Slash
	Ampersand
	NullCoalesce
	FatArrow
	Ellipsis
	At
	Question

	// --- AST / context node kinds ---

	Document
	Section
	SectionMember
	ArrayWrapper
	Csv
	KeyValuePair
	GeneralizedIdentifier
	ParameterList
	Parameter

	RecordExpression
	RecordLiteral
	ListExpression
	LetExpression
	IfExpression
	EachExpression
	ErrorHandlingExpression
	OtherwiseExpression
	ErrorRaisingExpression
	FunctionExpression
	InvokeExpression
	ItemAccessExpression
	FieldSelector
	FieldProjection
	RecursivePrimaryExpression
	ParenthesizedExpression
	NotImplementedExpression
	IdentifierExpression
	LiteralExpression

	UnaryExpression
	BinOpExpression
	NullCoalescingExpression
	AsExpression
	IsExpression
	MetadataExpression

	PrimitiveType
	ListType
	NullableType
	RecordType
	TableType
	FunctionType
	TypePrimaryType

	kindSentinel // must stay last; used to size bitsets
)

// IsToken reports whether k denotes a lexical token kind rather than an
// AST/context node kind.
func (k Kind) IsToken() bool {
	return k < Document
}

// String returns a human-readable name, primarily for diagnostics and
// test failure messages.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

var kindNames = map[Kind]string{
	End:                        "End",
	Error:                      "Error",
	Identifier:                 "Identifier",
	QuotedIdentifierStart:      "QuotedIdentifierStart",
	QuotedIdentifierContent:    "QuotedIdentifierContent",
	QuotedIdentifierEnd:        "QuotedIdentifierEnd",
	NumericLiteral:             "NumericLiteral",
	HexLiteral:                 "HexLiteral",
	TextLiteral:                "TextLiteral",
	TextLiteralStart:           "TextLiteralStart",
	TextLiteralContent:         "TextLiteralContent",
	TextLiteralEnd:             "TextLiteralEnd",
	LineComment:                "LineComment",
	MultilineComment:           "MultilineComment",
	MultilineCommentStart:      "MultilineCommentStart",
	MultilineCommentContent:    "MultilineCommentContent",
	MultilineCommentEnd:        "MultilineCommentEnd",
	KeywordAnd:                 "and",
	KeywordOr:                  "or",
	KeywordNot:                 "not",
	KeywordAs:                  "as",
	KeywordIs:                  "is",
	KeywordMeta:                "meta",
	KeywordEach:                "each",
	KeywordLet:                 "let",
	KeywordIn:                  "in",
	KeywordIf:                  "if",
	KeywordThen:                "then",
	KeywordElse:                "else",
	KeywordTry:                 "try",
	KeywordOtherwise:           "otherwise",
	KeywordError:               "error",
	KeywordType:                "type",
	KeywordNullable:            "nullable",
	KeywordOptional:            "optional",
	KeywordSection:             "section",
	KeywordShared:              "shared",
	KeywordTrue:                "true",
	KeywordFalse:               "false",
	KeywordNull:                "null",
	KeywordAny:                 "any",
	KeywordAnyNonNull:          "anynonnull",
	KeywordNone:                "none",
	KeywordLogical:             "logical",
	KeywordNumber:              "number",
	KeywordText:                "text",
	KeywordDate:                "date",
	KeywordDateTime:            "datetime",
	KeywordDateTimeZone:        "datetimezone",
	KeywordDuration:            "duration",
	KeywordTime:                "time",
	KeywordBinary:              "binary",
	KeywordList:                "list",
	KeywordRecord:              "record",
	KeywordTable:               "table",
	KeywordFunction:            "function",
	KeywordAction:              "action",
	LeftParen:                  "(",
	RightParen:                 ")",
	LeftBracket:                "[",
	RightBracket:               "]",
	LeftBrace:                  "{",
	RightBrace:                 "}",
	Comma:                      ",",
	Semicolon:                  ";",
	Equal:                      "=",
	NotEqual:                   "<>",
	Less:                       "<",
	LessEqual:                  "<=",
	Greater:                    ">",
	GreaterEqual:               ">=",
	Plus:                       "+",
	Minus:                      "-",
	Star:                       "*",
	Slash:                      "/",
	Ampersand:                  "&",
	NullCoalesce:               "??",
	FatArrow:                   "=>",
	Ellipsis:                   "...",
	At:                         "@",
	Question:                   "?",
	Document:                   "Document",
	Section:                    "Section",
	SectionMember:              "SectionMember",
	ArrayWrapper:               "ArrayWrapper",
	Csv:                        "Csv",
	KeyValuePair:               "KeyValuePair",
	GeneralizedIdentifier:      "GeneralizedIdentifier",
	ParameterList:              "ParameterList",
	Parameter:                  "Parameter",
	RecordExpression:           "RecordExpression",
	RecordLiteral:              "RecordLiteral",
	ListExpression:             "ListExpression",
	LetExpression:              "LetExpression",
	IfExpression:               "IfExpression",
	EachExpression:             "EachExpression",
	ErrorHandlingExpression:    "ErrorHandlingExpression",
	OtherwiseExpression:        "OtherwiseExpression",
	ErrorRaisingExpression:     "ErrorRaisingExpression",
	FunctionExpression:         "FunctionExpression",
	InvokeExpression:           "InvokeExpression",
	ItemAccessExpression:       "ItemAccessExpression",
	FieldSelector:              "FieldSelector",
	FieldProjection:            "FieldProjection",
	RecursivePrimaryExpression: "RecursivePrimaryExpression",
	ParenthesizedExpression:    "ParenthesizedExpression",
	NotImplementedExpression:   "NotImplementedExpression",
	IdentifierExpression:       "IdentifierExpression",
	LiteralExpression:          "LiteralExpression",
	UnaryExpression:            "UnaryExpression",
	BinOpExpression:            "BinOpExpression",
	NullCoalescingExpression:   "NullCoalescingExpression",
	AsExpression:               "AsExpression",
	IsExpression:               "IsExpression",
	MetadataExpression:         "MetadataExpression",
	PrimitiveType:              "PrimitiveType",
	ListType:                   "ListType",
	NullableType:               "NullableType",
	RecordType:                 "RecordType",
	TableType:                  "TableType",
	FunctionType:               "FunctionType",
	TypePrimaryType:            "TypePrimaryType",
}

// KeywordByWord maps reserved words to their keyword Kind. It is a map
// literal of its own, kept separately from kindNames above.
var KeywordByWord = map[string]Kind{
	"and": KeywordAnd, "or": KeywordOr, "not": KeywordNot,
	"as": KeywordAs, "is": KeywordIs, "meta": KeywordMeta,
	"each": KeywordEach, "let": KeywordLet, "in": KeywordIn,
	"if": KeywordIf, "then": KeywordThen, "else": KeywordElse,
	"try": KeywordTry, "otherwise": KeywordOtherwise, "error": KeywordError,
	"type": KeywordType, "nullable": KeywordNullable, "optional": KeywordOptional,
	"section": KeywordSection, "shared": KeywordShared,
	"true": KeywordTrue, "false": KeywordFalse, "null": KeywordNull,
	"any": KeywordAny, "anynonnull": KeywordAnyNonNull, "none": KeywordNone,
	"logical": KeywordLogical, "number": KeywordNumber, "text": KeywordText,
	"date": KeywordDate, "datetime": KeywordDateTime, "datetimezone": KeywordDateTimeZone,
	"duration": KeywordDuration, "time": KeywordTime, "binary": KeywordBinary,
	"list": KeywordList, "record": KeywordRecord, "table": KeywordTable,
	"function": KeywordFunction, "action": KeywordAction,
}

// PrimitiveTypeKeywords is the set of keyword kinds that name a primitive
// type in the type sub-language (spec section 4.3's nullable-primitive RHS
// grammar for `as`/`is`, and the `type` prefix form).
var PrimitiveTypeKeywords = KindSetOf(
	KeywordAny, KeywordAnyNonNull, KeywordNone, KeywordNull,
	KeywordLogical, KeywordNumber, KeywordText, KeywordDate, KeywordDateTime,
	KeywordDateTimeZone, KeywordDuration, KeywordTime, KeywordBinary,
	KeywordList, KeywordRecord, KeywordTable, KeywordFunction, KeywordAction,
	KeywordType,
)
