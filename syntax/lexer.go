package syntax

import "strings"

// Settings carries the caller-supplied collaborators threaded through the
// lexer and parser entry points (spec section 6, "Settings"). The type
// resolver used by scope/type inspection lives on pqcore.Settings instead,
// since syntax never needs it.
type Settings struct {
	Locale            string
	CancellationToken CancellationToken
}

// Lex tokenizes a whole blob of text from scratch (spec section 4.1,
// "Public contract"). Every line starts life as LineUntouched and is
// tokenized against ModeDefault, except a line following one that left a
// mode open, which inherits that mode.
func Lex(settings Settings, text string) *State {
	parts := splitLines(text)
	state := &State{Lines: make([]*Line, len(parts))}

	mode := ModeDefault
	for i, part := range parts {
		if isCancelled(settings.CancellationToken) {
			break
		}
		line := &Line{Text: part.Text, Terminator: part.Term, LexModeStart: mode}
		tokenizeLineInto(line)
		state.Lines[i] = line
		mode = line.LexModeEnd
	}
	return state
}

// AppendLine tokenizes a new line and appends it to state, inheriting the
// previous last line's LexModeEnd as its start mode.
func AppendLine(state *State, text string, term LineTerminator) {
	mode := ModeDefault
	if n := len(state.Lines); n > 0 {
		mode = state.Lines[n-1].LexModeEnd
	}
	line := &Line{Text: text, Terminator: term, LexModeStart: mode}
	tokenizeLineInto(line)
	state.Lines = append(state.Lines, line)
	retokenizeFollowing(state, len(state.Lines)-1)
}

// DeleteLine removes the line at index i and retokenizes whatever follows,
// since the predecessor's LexModeEnd feeding into it may have changed.
func DeleteLine(state *State, i int) *LexError {
	if i < 0 || i >= len(state.Lines) {
		return &LexError{Kind: LexErrorBadLineNumber, Line: i}
	}
	state.Lines = append(state.Lines[:i], state.Lines[i+1:]...)
	if i < len(state.Lines) {
		retokenizeFrom(state, i)
	}
	return nil
}

// UpdateLine replaces the text of the line at index i and retokenizes it
// and, if its end mode changed, every line after it (spec section 4.1,
// "Incremental updates"). Retokenizing a Touched line with the exact same
// text is almost certainly a caller mistake (nothing to update) and
// yields EndOfStream rather than silently doing the work again; a line
// that was already TouchedWithError refuses the edit and repropagates its
// existing error wrapped in BadState instead of compounding it with a new
// one (spec section 4.1, "Line states").
func UpdateLine(state *State, i int, text string) *LexError {
	if i < 0 || i >= len(state.Lines) {
		return &LexError{Kind: LexErrorBadLineNumber, Line: i}
	}
	line := state.Lines[i]
	if line.Kind == LineTouchedWithError {
		return &LexError{Kind: LexErrorBadState, Line: i, Wrapped: line.Err}
	}
	if line.Kind == LineTouched && line.Text == text {
		return &LexError{Kind: LexErrorEndOfStream, Line: i}
	}
	line.Text = text
	retokenizeFrom(state, i)
	return nil
}

// UpdateRange replaces the lines in [start, end) with newTexts and
// retokenizes from start onward (spec section 4.1, "Incremental updates").
func UpdateRange(state *State, start, end int, newTexts []string, terms []LineTerminator) *LexError {
	if start < 0 || end < start || end > len(state.Lines) {
		return &LexError{Kind: LexErrorBadRange, Line: start}
	}
	replacement := make([]*Line, len(newTexts))
	mode := ModeDefault
	if start > 0 {
		mode = state.Lines[start-1].LexModeEnd
	}
	for i, text := range newTexts {
		term := TerminatorNone
		if i < len(terms) {
			term = terms[i]
		}
		replacement[i] = &Line{Text: text, Terminator: term, LexModeStart: mode}
		tokenizeLineInto(replacement[i])
		mode = replacement[i].LexModeEnd
	}
	tail := append([]*Line{}, state.Lines[end:]...)
	state.Lines = append(append(state.Lines[:start], replacement...), tail...)
	retokenizeFrom(state, start+len(replacement))
	return nil
}

func tokenizeLineInto(line *Line) {
	tokens, endMode, err := tokenizeLine(line.LexModeStart, line.Text)
	line.Tokens = tokens
	line.LexModeEnd = endMode
	line.Err = err
	switch {
	case err != nil && len(tokens) == 0:
		line.Kind = LineError
	case err != nil:
		line.Kind = LineTouchedWithError
	default:
		line.Kind = LineTouched
	}
}

// retokenizeFrom re-tokenizes state.Lines[i] and propagates forward while
// each line's resulting LexModeEnd differs from what the next line already
// assumed as its LexModeStart — the shortcut that keeps incremental edits
// from ever being O(n) in the common case (spec section 4.1, "Incremental
// updates").
func retokenizeFrom(state *State, i int) {
	if i < 0 || i >= len(state.Lines) {
		return
	}
	mode := ModeDefault
	if i > 0 {
		mode = state.Lines[i-1].LexModeEnd
	}
	state.Lines[i].LexModeStart = mode
	tokenizeLineInto(state.Lines[i])
	retokenizeFollowing(state, i)
}

func retokenizeFollowing(state *State, i int) {
	for j := i + 1; j < len(state.Lines); j++ {
		prevEnd := state.Lines[j-1].LexModeEnd
		if state.Lines[j].LexModeStart == prevEnd {
			return
		}
		state.Lines[j].LexModeStart = prevEnd
		tokenizeLineInto(state.Lines[j])
	}
}

// lineCursor scans a single line's text rune-by-rune, tracking both a byte
// cursor (for substring extraction) and a UTF-16 code-unit cursor (for the
// Position values the spec requires, section 6 "Source text").
type lineCursor struct {
	text      string
	byteStart int
	bytePos   int
	cuStart   int
	cuPos     int
}

func newLineCursor(text string) *lineCursor {
	return &lineCursor{text: text}
}

func codeUnitWidth(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// RuneEOF is the sentinel lineCursor returns at end of line.
const RuneEOF rune = -1

func (c *lineCursor) done() bool {
	return c.bytePos >= len(c.text)
}

func (c *lineCursor) peek() rune {
	return c.peekAt(0)
}

func (c *lineCursor) peekAt(n int) rune {
	rest := []rune(c.text[c.bytePos:])
	if n >= len(rest) {
		return RuneEOF
	}
	return rest[n]
}

func (c *lineCursor) advance() rune {
	if c.done() {
		return RuneEOF
	}
	r := c.peek()
	c.bytePos += len(string(r))
	c.cuPos += codeUnitWidth(r)
	return r
}

func (c *lineCursor) startToken() {
	c.byteStart = c.bytePos
	c.cuStart = c.cuPos
}

func (c *lineCursor) tokenText() string {
	return c.text[c.byteStart:c.bytePos]
}

func (c *lineCursor) emit(kind Kind) LineToken {
	return LineToken{Kind: kind, Data: c.tokenText(), PositionStart: c.cuStart, PositionEnd: c.cuPos}
}

// tokenizeLine runs the per-line tokenizer described in spec section 4.1.
func tokenizeLine(startMode LexMode, text string) ([]LineToken, LexMode, *LexError) {
	c := newLineCursor(text)
	var tokens []LineToken
	mode := startMode

	switch mode {
	case ModeComment:
		toks, nextMode, err := continueRun(c, '*', '/', MultilineCommentContent, MultilineCommentEnd, ModeComment)
		tokens = append(tokens, toks...)
		mode = nextMode
		if err != nil || mode != ModeDefault {
			return tokens, mode, err
		}
	case ModeText:
		toks, nextMode, err := continueQuoted(c, TextLiteralContent, TextLiteralEnd)
		tokens = append(tokens, toks...)
		mode = nextMode
		if err != nil || mode != ModeDefault {
			return tokens, mode, err
		}
	case ModeQuotedIdentifier:
		toks, nextMode, err := continueQuoted(c, QuotedIdentifierContent, QuotedIdentifierEnd)
		tokens = append(tokens, toks...)
		mode = nextMode
		if err != nil || mode != ModeDefault {
			return tokens, mode, err
		}
	}

	for {
		skipLineSpace(c)
		if c.done() {
			break
		}

		toks, nextMode, err := lexDefaultToken(c)
		tokens = append(tokens, toks...)
		mode = nextMode
		if err != nil {
			return tokens, mode, err
		}
		if mode != ModeDefault {
			break
		}
	}

	return tokens, mode, nil
}

func skipLineSpace(c *lineCursor) {
	for !c.done() && IsLineSpace(c.peek()) {
		c.advance()
	}
}

// lexDefaultToken reads one lexical unit from Default mode. Most cases
// produce exactly one token; entering a multi-line mode (comment, text,
// quoted identifier) may produce the Start token plus whatever content/end
// the rest of this line already contains.
func lexDefaultToken(c *lineCursor) ([]LineToken, LexMode, *LexError) {
	c.startToken()
	r := c.peek()

	switch {
	case r == '"':
		c.advance()
		start := c.emit(TextLiteralStart)
		rest, mode, err := continueQuoted(c, TextLiteralContent, TextLiteralEnd)
		return append([]LineToken{start}, rest...), mode, err

	case r == '#' && c.peekAt(1) == '"':
		c.advance()
		c.advance()
		start := c.emit(QuotedIdentifierStart)
		rest, mode, err := continueQuoted(c, QuotedIdentifierContent, QuotedIdentifierEnd)
		return append([]LineToken{start}, rest...), mode, err

	case r == '/' && c.peekAt(1) == '*':
		c.advance()
		c.advance()
		start := c.emit(MultilineCommentStart)
		rest, mode, err := continueRun(c, '*', '/', MultilineCommentContent, MultilineCommentEnd, ModeComment)
		return append([]LineToken{start}, rest...), mode, err

	case r == '/' && c.peekAt(1) == '/':
		for !c.done() {
			c.advance()
		}
		return []LineToken{c.emit(LineComment)}, ModeDefault, nil

	case IsDigit(r), r == '.' && IsDigit(c.peekAt(1)):
		tok, mode, err := lexNumber(c)
		return []LineToken{tok}, mode, err

	case IsIDStart(r):
		tok, mode, err := lexIdentifierOrKeyword(c)
		return []LineToken{tok}, mode, err

	default:
		tok, mode, err := lexSymbol(c)
		return []LineToken{tok}, mode, err
	}
}

func lexNumber(c *lineCursor) (LineToken, LexMode, *LexError) {
	if c.peek() == '0' && (c.peekAt(1) == 'x' || c.peekAt(1) == 'X') {
		c.advance()
		c.advance()
		digitsStart := c.bytePos
		for !c.done() && IsHexDigit(c.peek()) {
			c.advance()
		}
		if c.bytePos == digitsStart {
			if c.done() {
				return c.emit(Error), ModeDefault, &LexError{Kind: LexErrorUnexpectedEof, Column: c.cuStart}
			}
			return c.emit(Error), ModeDefault, &LexError{Kind: LexErrorExpected, Column: c.cuStart, Expected: ExpectedHexLiteral}
		}
		return c.emit(HexLiteral), ModeDefault, nil
	}

	for !c.done() && IsDigit(c.peek()) {
		c.advance()
	}
	if c.peek() == '.' && IsDigit(c.peekAt(1)) {
		c.advance()
		for !c.done() && IsDigit(c.peek()) {
			c.advance()
		}
	}
	if c.peek() == 'e' || c.peek() == 'E' {
		la, off := c.peekAt(1), 1
		if la == '+' || la == '-' {
			off, la = 2, c.peekAt(2)
		}
		if IsDigit(la) {
			for i := 0; i < off; i++ {
				c.advance()
			}
			for !c.done() && IsDigit(c.peek()) {
				c.advance()
			}
		}
	}
	return c.emit(NumericLiteral), ModeDefault, nil
}

func lexIdentifierOrKeyword(c *lineCursor) (LineToken, LexMode, *LexError) {
	c.advance()
	for !c.done() && IsIDContinue(c.peek()) {
		c.advance()
	}
	if kind, ok := KeywordByWord[c.tokenText()]; ok {
		return c.emit(kind), ModeDefault, nil
	}
	return c.emit(Identifier), ModeDefault, nil
}

var twoCharSymbols = map[string]Kind{
	"??": NullCoalesce, "<=": LessEqual, ">=": GreaterEqual,
	"<>": NotEqual, "=>": FatArrow,
}

var oneCharSymbols = map[rune]Kind{
	'(': LeftParen, ')': RightParen,
	'[': LeftBracket, ']': RightBracket,
	'{': LeftBrace, '}': RightBrace,
	',': Comma, ';': Semicolon,
	'=': Equal, '<': Less, '>': Greater,
	'+': Plus, '-': Minus, '*': Star, '/': Slash,
	'&': Ampersand, '@': At, '?': Question,
}

func lexSymbol(c *lineCursor) (LineToken, LexMode, *LexError) {
	if strings.HasPrefix(c.text[c.bytePos:], "...") {
		c.advance()
		c.advance()
		c.advance()
		return c.emit(Ellipsis), ModeDefault, nil
	}

	r := c.peek()
	two := string(r) + string(c.peekAt(1))
	if kind, ok := twoCharSymbols[two]; ok {
		c.advance()
		c.advance()
		return c.emit(kind), ModeDefault, nil
	}
	if kind, ok := oneCharSymbols[r]; ok {
		c.advance()
		return c.emit(kind), ModeDefault, nil
	}

	c.advance()
	return c.emit(Error), ModeDefault, &LexError{
		Kind:    LexErrorUnexpectedRead,
		Column:  c.cuStart,
		Message: "unexpected character " + DescribeRune(r),
	}
}

// continueRun scans until the two-rune close sequence (e.g. `*/`) or end of
// line, used for multiline comments. It returns both the Content token (if
// any text preceded the closer) and the End token (if the closer was found
// on this line) so a closer is never left unconsumed behind a Content run.
func continueRun(c *lineCursor, close1, close2 rune, contentKind, endKind Kind, openMode LexMode) ([]LineToken, LexMode, *LexError) {
	c.startToken()
	for !c.done() {
		if c.peek() == close1 && c.peekAt(1) == close2 {
			var toks []LineToken
			if c.bytePos > c.byteStart {
				toks = append(toks, c.emit(contentKind))
				c.startToken()
			}
			c.advance()
			c.advance()
			return append(toks, c.emit(endKind)), ModeDefault, nil
		}
		c.advance()
	}
	if c.bytePos > c.byteStart {
		return []LineToken{c.emit(contentKind)}, openMode, nil
	}
	return nil, openMode, nil
}

// continueQuoted scans Text/QuotedIdentifier content until an unescaped
// closing `"`, honoring the `""` escape sequence (spec section 4.1,
// "Comment / Text / QuotedIdentifier modes"). Like continueRun it returns
// both the Content and End tokens when the closer is found on this line.
func continueQuoted(c *lineCursor, contentKind, endKind Kind) ([]LineToken, LexMode, *LexError) {
	c.startToken()
	openMode := modeFor(contentKind)
	for !c.done() {
		if c.peek() == '"' {
			if c.peekAt(1) == '"' {
				c.advance()
				c.advance()
				continue
			}
			var toks []LineToken
			if c.bytePos > c.byteStart {
				toks = append(toks, c.emit(contentKind))
				c.startToken()
			}
			c.advance()
			return append(toks, c.emit(endKind)), ModeDefault, nil
		}
		c.advance()
	}
	if c.bytePos > c.byteStart {
		return []LineToken{c.emit(contentKind)}, openMode, nil
	}
	return nil, openMode, nil
}

func modeFor(contentKind Kind) LexMode {
	if contentKind == QuotedIdentifierContent {
		return ModeQuotedIdentifier
	}
	return ModeText
}
