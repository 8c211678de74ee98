package syntax

// readExpression is the entry point of the precedence cascade (spec
// section 4.3, "Expression"): null-coalescing binds loosest, the
// recursive-primary chain binds tightest. Each tier reads its left operand
// by calling the tier below, then folds in zero or more same-precedence
// operators left-associatively.
func (p *Parser) readExpression() NodeId {
	if !p.enterDepth() {
		p.leaveDepth()
		return NoNode
	}
	defer p.leaveDepth()
	return p.readNullCoalescing()
}

func (p *Parser) readNullCoalescing() NodeId {
	return p.readLeftAssocBinOp(NullCoalesceOpSet, NullCoalescingExpression, p.readOr)
}

func (p *Parser) readOr() NodeId {
	return p.readLeftAssocBinOp(OrOpSet, BinOpExpression, p.readAnd)
}

func (p *Parser) readAnd() NodeId {
	return p.readLeftAssocBinOp(AndOpSet, BinOpExpression, p.readRelational)
}

func (p *Parser) readRelational() NodeId {
	return p.readLeftAssocBinOp(RelationalOpSet, BinOpExpression, p.readEquality)
}

func (p *Parser) readEquality() NodeId {
	return p.readLeftAssocBinOp(EqualityOpSet, BinOpExpression, p.readAs)
}

// readAs and readIs cannot go through readLeftAssocBinOp: their
// right-hand side is a nullable-primitive type, not another expression
// (spec section 4.3, "the RHS is a nullable-primitive type").
func (p *Parser) readAs() NodeId {
	left := p.readIs()
	if p.err != nil {
		return left
	}
	for p.at(KeywordAs) {
		p.pc.Promote(AsExpression, left)
		m := mark{pos: mustRange(p, left), cu: mustCU(p, left)}
		p.advance()
		p.readType()
		left = p.abandonIfFailed(m)
		if p.err != nil {
			return left
		}
	}
	return left
}

func (p *Parser) readIs() NodeId {
	left := p.readAdditive()
	if p.err != nil {
		return left
	}
	for p.at(KeywordIs) {
		p.pc.Promote(IsExpression, left)
		m := mark{pos: mustRange(p, left), cu: mustCU(p, left)}
		p.advance()
		p.readType()
		left = p.abandonIfFailed(m)
		if p.err != nil {
			return left
		}
	}
	return left
}

func (p *Parser) readAdditive() NodeId {
	return p.readLeftAssocBinOp(AdditiveOpSet, BinOpExpression, p.readMultiplicative)
}

func (p *Parser) readMultiplicative() NodeId {
	return p.readLeftAssocBinOp(MultiplicativeOpSet, BinOpExpression, p.readMetadata)
}

func (p *Parser) readMetadata() NodeId {
	return p.readLeftAssocBinOp(MetadataOpSet, MetadataExpression, p.readUnary)
}

// readLeftAssocBinOp reads one operand of next, then while the current
// token is in opSet, promotes the running result into the left child of a
// new nodeKind wrapper and reads another operand of next as its right
// child (spec section 4.3, the precedence cascade).
func (p *Parser) readLeftAssocBinOp(opSet KindSet, nodeKind Kind, next func() NodeId) NodeId {
	left := next()
	if p.err != nil {
		return left
	}
	for p.atAny(opSet) {
		p.pc.Promote(nodeKind, left)
		m := mark{pos: mustRange(p, left), cu: mustCU(p, left)}
		p.advance()
		next()
		left = p.abandonIfFailed(m)
		if p.err != nil {
			return left
		}
	}
	return left
}

func mustRange(p *Parser, id NodeId) Position {
	if n, ok := p.pc.IDMap().Get(id); ok {
		if ast, isAst := n.AsAst(); isAst {
			return ast.PositionStart
		}
	}
	return p.position()
}

func mustCU(p *Parser, id NodeId) int {
	if n, ok := p.pc.IDMap().Get(id); ok {
		if ast, isAst := n.AsAst(); isAst {
			return ast.CodeUnitStart
		}
	}
	return 0
}

func (p *Parser) readUnary() NodeId {
	if p.at(KeywordNot) || p.at(Minus) || p.at(Plus) {
		m := p.mark()
		p.open(UnaryExpression, m)
		p.advance()
		p.readUnary()
		return p.abandonIfFailed(m)
	}
	return p.readTypeExpressionOrPrimary()
}

// readTypeExpressionOrPrimary handles the `type <type>` prefix form, which
// sits at primary precedence but parses a type, not an expression (spec
// section 4.3, "Primary expression").
func (p *Parser) readTypeExpressionOrPrimary() NodeId {
	if p.at(KeywordType) {
		m := p.mark()
		p.open(TypePrimaryType, m)
		p.advance()
		p.readType()
		return p.abandonIfFailed(m)
	}
	return p.readPrimary()
}

// readPrimary dispatches on the current token to the keyword-led forms
// (let/if/each/try/error) or literal/identifier/parenthesized forms (a
// function expression is found through its leading `(`), then threads the result through the recursive
// suffix chain (spec section 4.3, "RecursivePrimaryExpression").
func (p *Parser) readPrimary() NodeId {
	var id NodeId
	switch {
	case p.at(KeywordLet):
		id = p.readLetExpression()
	case p.at(KeywordIf):
		id = p.readIfExpression()
	case p.at(KeywordEach):
		id = p.readEachExpression()
	case p.at(KeywordTry):
		id = p.readErrorHandlingExpression()
	case p.at(KeywordError):
		id = p.readErrorRaisingExpression()
	case p.at(KeywordNot), p.isNotImplemented():
		id = p.readNotImplemented()
	case p.at(LeftParen):
		id = p.readParenthesizedOrFunction()
	case p.at(LeftBracket):
		id = p.readRecordLiteral()
	case p.at(LeftBrace):
		id = p.readListExpression()
	case p.atAny(literalKindSet):
		id = p.readLiteralExpression()
	case p.at(Identifier), isGeneralizedIdentifierWord(p.kind()) && p.kindAt(1) != Equal:
		id = p.readIdentifierExpression()
	default:
		m := p.mark()
		p.open(LiteralExpression, m)
		p.fail(&ParseError{Kind: ParseErrorExpectedAnyTokenKind, Position: p.position(), GotKind: p.kind()})
		id = p.abandonIfFailed(m)
		return id
	}
	return p.readRecursivePrimarySuffixes(id)
}

var literalKindSet = KindSetOf(NumericLiteral, HexLiteral, TextLiteral, KeywordTrue, KeywordFalse, KeywordNull)

func (p *Parser) isNotImplemented() bool { return p.at(Ellipsis) }

func (p *Parser) readNotImplemented() NodeId {
	m := p.mark()
	p.open(NotImplementedExpression, m)
	p.expect(Ellipsis)
	return p.abandonIfFailed(m)
}

func (p *Parser) readLiteralExpression() NodeId {
	m := p.mark()
	p.open(LiteralExpression, m)
	p.advance()
	return p.abandonIfFailed(m)
}

func (p *Parser) readIdentifierExpression() NodeId {
	m := p.mark()
	p.open(IdentifierExpression, m)
	if p.at(At) {
		p.advance()
	}
	p.readGeneralizedIdentifier()
	return p.abandonIfFailed(m)
}

// readRecursivePrimarySuffixes repeatedly wraps id in an item-access
// `{...}`, invocation `(...)`, or field-selector/projection `[...]`
// suffix for as long as one follows (spec section 4.3,
// "RecursivePrimaryExpression").
func (p *Parser) readRecursivePrimarySuffixes(id NodeId) NodeId {
	for p.atAny(RecursivePrimarySuffixSet) && p.err == nil {
		m := mark{pos: mustRange(p, id), cu: mustCU(p, id)}
		switch {
		case p.at(LeftParen):
			p.pc.Promote(InvokeExpression, id)
			p.advance()
			p.readCsv(p.readExpression, RightParen, CsvContinuationDanglingComma)
			p.expect(RightParen)
		case p.at(LeftBrace):
			p.pc.Promote(ItemAccessExpression, id)
			p.advance()
			p.readExpression()
			p.expect(RightBrace)
			if p.at(Question) {
				p.advance()
			}
		case p.at(LeftBracket):
			if p.fieldProjectionAhead() {
				p.pc.Promote(FieldProjection, id)
				p.advance()
				p.readCsv(p.readGeneralizedIdentifier, RightBracket, CsvContinuationDanglingComma)
				p.expect(RightBracket)
			} else {
				p.pc.Promote(FieldSelector, id)
				p.advance()
				p.readGeneralizedIdentifier()
				p.expect(RightBracket)
			}
			if p.at(Question) {
				p.advance()
			}
		}
		id = p.abandonIfFailed(m)
		if p.err != nil {
			return id
		}
	}
	return id
}

// fieldProjectionAhead distinguishes `[field]` (selector) from
// `[field1, field2]` or `[[field]]` (projection): a projection's `[`
// is immediately followed by another `[` or contains a top-level comma.
func (p *Parser) fieldProjectionAhead() bool {
	if p.kindAt(1) == LeftBracket {
		return true
	}
	depth := 0
	for i := 1; ; i++ {
		k := p.kindAt(i)
		switch k {
		case End:
			return false
		case LeftBracket:
			depth++
		case RightBracket:
			if depth == 0 {
				return false
			}
			depth--
		case Comma:
			if depth == 0 {
				return true
			}
		}
	}
}

func (p *Parser) readParenthesizedOrFunction() NodeId {
	if p.looksLikeFunctionExpression() {
		return p.readFunctionExpression()
	}
	m := p.mark()
	p.open(ParenthesizedExpression, m)
	p.advance()
	p.readExpression()
	p.expect(RightParen)
	return p.abandonIfFailed(m)
}

// looksLikeFunctionExpression scans ahead for `( <params> ) [as <type>] =>`
// without consuming anything, since a bare parenthesized expression and a
// zero/one-arg function expression both start with `(`.
func (p *Parser) looksLikeFunctionExpression() bool {
	depth := 0
	i := 0
	for {
		k := p.kindAt(i)
		switch k {
		case End:
			return false
		case LeftParen:
			depth++
		case RightParen:
			depth--
			if depth == 0 {
				i++
				goto afterParen
			}
		}
		i++
	}
afterParen:
	if p.kindAt(i) == KeywordAs {
		i++
		for p.kindAt(i) != FatArrow && p.kindAt(i) != End && p.kindAt(i) != Semicolon {
			i++
		}
	}
	return p.kindAt(i) == FatArrow
}

func (p *Parser) readFunctionExpression() NodeId {
	m := p.mark()
	p.open(FunctionExpression, m)
	p.readParameterList()
	if p.at(KeywordAs) {
		p.advance()
		p.readType()
	}
	p.expect(FatArrow)
	p.readExpression()
	return p.abandonIfFailed(m)
}

func (p *Parser) readParameterList() NodeId {
	m := p.mark()
	p.open(ParameterList, m)
	p.expect(LeftParen)
	sawOptional := false
	for !p.at(RightParen) && p.err == nil {
		pm := p.mark()
		p.open(Parameter, pm)
		optional := false
		if p.at(KeywordOptional) {
			p.advance()
			optional = true
		}
		name := p.readGeneralizedIdentifier()
		if p.at(KeywordAs) {
			p.advance()
			p.readType()
		}
		if !optional && sawOptional {
			p.fail(&ParseError{Kind: ParseErrorRequiredParameterAfterOptionalParameter, Position: p.position(), Identifier: identifierText(p, name)})
		}
		if optional {
			sawOptional = true
		}
		p.abandonIfFailed(pm)
		if p.err != nil {
			break
		}
		if p.at(Comma) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(RightParen)
	return p.abandonIfFailed(m)
}

func identifierText(p *Parser, id NodeId) string {
	n, ok := p.pc.IDMap().Get(id)
	if !ok {
		return ""
	}
	var sb []byte
	for _, leaf := range p.pc.IDMap().Leaves(n.Id()) {
		if ast, isAst := mustAst(p, leaf); isAst {
			sb = append(sb, ast.Data...)
		}
	}
	return string(sb)
}

func mustAst(p *Parser, id NodeId) (*AstNode, bool) {
	n, ok := p.pc.IDMap().Get(id)
	if !ok {
		return nil, false
	}
	return n.AsAst()
}

func (p *Parser) readLetExpression() NodeId {
	m := p.mark()
	p.open(LetExpression, m)
	p.expect(KeywordLet)
	p.readCsv(p.readLetKeyValuePair, KeywordIn, CsvContinuationLetExpression)
	p.expect(KeywordIn)
	p.readExpression()
	return p.abandonIfFailed(m)
}

// readLetKeyValuePair reads one `identifier [as type] = expression`
// binding of a let expression's variable list, the readCsv item callback
// for readLetExpression.
func (p *Parser) readLetKeyValuePair() NodeId {
	m := p.mark()
	p.open(KeyValuePair, m)
	p.readGeneralizedIdentifier()
	if p.at(KeywordAs) {
		p.advance()
		p.readType()
	}
	p.expect(Equal)
	p.readExpression()
	return p.abandonIfFailed(m)
}

func (p *Parser) readIfExpression() NodeId {
	m := p.mark()
	p.open(IfExpression, m)
	p.expect(KeywordIf)
	p.readExpression()
	p.expect(KeywordThen)
	p.readExpression()
	p.expect(KeywordElse)
	p.readExpression()
	return p.abandonIfFailed(m)
}

func (p *Parser) readEachExpression() NodeId {
	m := p.mark()
	p.open(EachExpression, m)
	p.expect(KeywordEach)
	p.readExpression()
	return p.abandonIfFailed(m)
}

func (p *Parser) readErrorHandlingExpression() NodeId {
	m := p.mark()
	p.open(ErrorHandlingExpression, m)
	p.expect(KeywordTry)
	p.readExpression()
	if p.at(KeywordOtherwise) {
		om := p.mark()
		p.open(OtherwiseExpression, om)
		p.advance()
		p.readExpression()
		p.abandonIfFailed(om)
	}
	return p.abandonIfFailed(m)
}

func (p *Parser) readErrorRaisingExpression() NodeId {
	m := p.mark()
	p.open(ErrorRaisingExpression, m)
	p.expect(KeywordError)
	p.readExpression()
	return p.abandonIfFailed(m)
}

func (p *Parser) readRecordLiteral() NodeId {
	m := p.mark()
	p.open(RecordLiteral, m)
	p.expect(LeftBracket)
	p.readCsv(p.readKeyValuePair, RightBracket, CsvContinuationDanglingComma)
	p.expect(RightBracket)
	return p.abandonIfFailed(m)
}

func (p *Parser) readKeyValuePair() NodeId {
	m := p.mark()
	p.open(KeyValuePair, m)
	p.readGeneralizedIdentifier()
	p.expect(Equal)
	p.readExpression()
	return p.abandonIfFailed(m)
}

func (p *Parser) readListExpression() NodeId {
	m := p.mark()
	p.open(ListExpression, m)
	p.expect(LeftBrace)
	p.readCsv(p.readListItem, RightBrace, CsvContinuationDanglingComma)
	p.expect(RightBrace)
	return p.abandonIfFailed(m)
}

// readListItem reads one list item, which may be a range written with the
// Ellipsis token, `first...last` (spec section 4.3, "ListExpression").
// The two-dot form `first..last` is not recognised: the lexer has no `..`
// token.
func (p *Parser) readListItem() NodeId {
	first := p.readExpression()
	if p.at(Ellipsis) {
		p.advance()
		p.readExpression()
	}
	return first
}
