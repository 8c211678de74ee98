package syntax

// MaxDepth bounds recursive-descent nesting the way the teacher's parser.go
// bounds markup/code/math recursion, to turn a pathological input into a
// parse error instead of a stack overflow.
const MaxDepth = 256

// Parser drives a recursive-descent pass over a Snapshot's token stream,
// building a ParseContext as it goes. Every Parser method that can fail
// opens a context node on entry and either closes it (success) or
// abandons it (failure), so a partial parse always leaves behind whatever
// it managed to attach (spec section 2, "partial context retention").
type Parser struct {
	settings Settings
	tokens   []SnapshotToken
	pos      int
	pc       *ParseContext
	depth    int
	err      error
}

func newParser(settings Settings, snap *Snapshot) *Parser {
	return &Parser{settings: settings, tokens: snap.Tokens, pc: newParseContext()}
}

// ParseResult is what ParseDocument returns: the node graph built so far
// (complete or partial) plus the first error encountered, if any.
type ParseResult struct {
	IDMap *NodeIdMap
	Root  NodeId
	Err   error
}

// ParseDocument parses a Snapshot as a Power Query document (spec section
// 4.3, "Document"). It tries the section-document form first — the only
// form that can start with `section` or `[...] section` metadata — and
// falls back to a bare expression document otherwise.
func ParseDocument(settings Settings, snap *Snapshot) ParseResult {
	p := newParser(settings, snap)
	root := p.parseDocument()
	return ParseResult{IDMap: p.pc.IDMap(), Root: root, Err: p.err}
}

// mark records the cursor position at the point a node was opened, so it
// can later be paired with the cursor's position at close time.
type mark struct {
	pos Position
	cu  int
}

func (p *Parser) mark() mark {
	p.checkCancelled()
	return mark{pos: p.position(), cu: p.current().CodeUnitStart}
}

// checkCancelled consults the cancellation token at every top-level read
// (via mark, called at the start of essentially every grammar production)
// and at least once per loop iteration (via kindAt, which every loop
// condition in the parser goes through). On cancellation it records a
// generic CommonError and leaves the context graph exactly as it was
// (spec section 4.3, "Cancellation").
func (p *Parser) checkCancelled() bool {
	if p.err != nil {
		return false
	}
	if isCancelled(p.settings.CancellationToken) {
		p.err = ErrCancelled(p.settings.Locale)
		return true
	}
	return false
}

// open starts a new context node of kind k at m and returns its id.
func (p *Parser) open(k Kind, m mark) NodeId {
	return p.pc.OpenContext(k, m.pos)
}

// close finishes the innermost open context using m as its start.
func (p *Parser) close(m mark) NodeId {
	return p.pc.CloseContext(m.pos, p.position(), m.cu, p.codeUnitEnd())
}

// abandonIfFailed closes the innermost open context on success, or
// abandons it (leaving it open) if the parser already recorded an error.
// Returns the node id either way.
func (p *Parser) abandonIfFailed(m mark) NodeId {
	if p.err != nil {
		return p.pc.Abandon()
	}
	return p.close(m)
}

func (p *Parser) parseDocument() NodeId {
	m := p.mark()
	p.open(Document, m)

	if p.looksLikeSection() {
		p.parseSectionDocument()
	} else {
		p.readExpression()
	}

	if p.err == nil && !p.atEnd() {
		p.fail(&ParseError{Kind: ParseErrorUnusedTokensRemain, Position: p.position()})
		// Attach whatever tokens remain as leaves of the still-open Document
		// context rather than leaving them outside the node-id map entirely:
		// partial context retention (spec section 2) means inspection must
		// still be able to resolve a cursor sitting among them.
		for !p.atEnd() {
			p.advance()
		}
	}

	return p.abandonIfFailed(m)
}

func (p *Parser) looksLikeSection() bool {
	i := 0
	if p.kindAt(i) == LeftBracket {
		depth := 0
		for {
			k := p.kindAt(i)
			if k == End {
				return false
			}
			if k == LeftBracket {
				depth++
			}
			if k == RightBracket {
				depth--
				if depth == 0 {
					i++
					break
				}
			}
			i++
		}
	}
	return p.kindAt(i) == KeywordSection || p.kindAt(i) == KeywordShared
}

func (p *Parser) parseSectionDocument() {
	m := p.mark()
	p.open(Section, m)
	if p.at(LeftBracket) {
		p.readRecordLiteral()
	}
	if !p.expect(KeywordSection) {
		p.abandonIfFailed(m)
		return
	}
	if p.at(Identifier) {
		p.advance()
	}
	if !p.expect(Semicolon) {
		p.abandonIfFailed(m)
		return
	}
	for (p.at(KeywordShared) || p.at(Identifier)) && p.err == nil {
		p.readSectionMember()
	}
	p.abandonIfFailed(m)
}

func (p *Parser) readSectionMember() {
	m := p.mark()
	p.open(SectionMember, m)
	if p.at(KeywordShared) {
		p.advance()
	}
	p.readGeneralizedIdentifier()
	if !p.expect(Equal) {
		p.abandonIfFailed(m)
		return
	}
	p.readExpression()
	if !p.expect(Semicolon) {
		p.abandonIfFailed(m)
		return
	}
	p.abandonIfFailed(m)
}

// --- low-level token access ---

func (p *Parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *Parser) kindAt(offset int) Kind {
	p.checkCancelled()
	i := p.pos + offset
	if i < 0 || i >= len(p.tokens) {
		return End
	}
	return p.tokens[i].Kind
}

func (p *Parser) kind() Kind { return p.kindAt(0) }

func (p *Parser) at(k Kind) bool { return p.kind() == k }

func (p *Parser) atAny(set KindSet) bool { return set.Contains(p.kind()) }

func (p *Parser) current() SnapshotToken {
	if p.atEnd() {
		if len(p.tokens) > 0 {
			last := p.tokens[len(p.tokens)-1]
			return SnapshotToken{Kind: End, PositionStart: last.PositionEnd, PositionEnd: last.PositionEnd,
				CodeUnitStart: last.CodeUnitEnd, CodeUnitEnd: last.CodeUnitEnd}
		}
		return SnapshotToken{Kind: End}
	}
	return p.tokens[p.pos]
}

func (p *Parser) position() Position { return p.current().PositionStart }

// codeUnitEnd returns the absolute code-unit offset just past the last
// consumed token — the right value to close a node's range with.
func (p *Parser) codeUnitEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.tokens[p.pos-1].CodeUnitEnd
}

// advance consumes the current token as a leaf attached to the innermost
// open context and returns its id.
func (p *Parser) advance() NodeId {
	tok := p.current()
	id := p.pc.AttachLeaf(tok)
	if !p.atEnd() {
		p.pos++
	}
	return id
}

// expect consumes the current token if it matches k, recording a
// ParseError and returning false otherwise.
func (p *Parser) expect(k Kind) bool {
	if p.err != nil {
		return false
	}
	if !p.at(k) {
		p.fail(&ParseError{Kind: ParseErrorExpectedTokenKind, Position: p.position(), WantKind: k, GotKind: p.kind()})
		return false
	}
	p.advance()
	return true
}

// expectAny consumes the current token if its kind is in set.
func (p *Parser) expectAny(set KindSet, wantList []Kind) bool {
	if p.err != nil {
		return false
	}
	if !p.atAny(set) {
		p.fail(&ParseError{Kind: ParseErrorExpectedAnyTokenKind, Position: p.position(), WantAnyOf: wantList, GotKind: p.kind()})
		return false
	}
	p.advance()
	return true
}

func (p *Parser) fail(err *ParseError) {
	if p.err == nil {
		p.err = err
	}
}

// readGeneralizedIdentifier consumes one Identifier or keyword token,
// then any further Identifier tokens, into a GeneralizedIdentifier node —
// Power Query lets field and section-member names be keywords or
// multi-word bare text (spec section 4.3, "GeneralizedIdentifier"). A
// keyword after the first word ends the name, so `b as number` and
// `_ in a` stop before `as` and `in`.
func (p *Parser) readGeneralizedIdentifier() NodeId {
	m := p.mark()
	id := p.open(GeneralizedIdentifier, m)
	if !p.at(Identifier) && !isGeneralizedIdentifierWord(p.kind()) {
		p.fail(&ParseError{Kind: ParseErrorExpectedGeneralizedIdentifier, Position: p.position(), GotKind: p.kind()})
		p.pc.Abandon()
		return id
	}
	p.advance()
	for p.at(Identifier) {
		p.advance()
	}
	return p.close(m)
}

func isGeneralizedIdentifierWord(k Kind) bool {
	return k >= KeywordAnd && k <= KeywordAction
}

func (p *Parser) enterDepth() bool {
	p.depth++
	if p.depth > MaxDepth {
		p.fail(&ParseError{Kind: ParseErrorUnterminatedSequence, Position: p.position(), Message: "expression nesting too deep"})
		return false
	}
	return true
}

func (p *Parser) leaveDepth() { p.depth-- }
