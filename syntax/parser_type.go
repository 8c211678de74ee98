package syntax

// readType parses the type sub-language used after `as`/`is`, in
// `type <...>` primary expressions, and in parameter/field type
// annotations (spec section 4.3, "Type"). A plain primitive-type keyword
// builds a PrimitiveType leafy node; a `nullable` prefix builds a
// NullableType node around the type that follows; the structural forms
// build their own node kinds.
func (p *Parser) readType() NodeId {
	if !p.enterDepth() {
		p.leaveDepth()
		return NoNode
	}
	defer p.leaveDepth()

	switch {
	case p.at(KeywordNullable):
		m := p.mark()
		p.open(NullableType, m)
		p.advance()
		p.readType()
		return p.abandonIfFailed(m)
	case p.at(LeftBrace):
		return p.readListType()
	case p.at(LeftBracket):
		return p.readRecordType()
	case p.at(KeywordTable):
		return p.readTableType()
	case p.at(KeywordFunction):
		return p.readFunctionType()
	case p.atAny(PrimitiveTypeKeywords):
		m := p.mark()
		p.open(PrimitiveType, m)
		p.advance()
		return p.abandonIfFailed(m)
	case p.at(Identifier):
		// A type can also be an expression that evaluates to a type value
		// (e.g. a previously `type`-defined name); retained at primary
		// precedence so scope/type inspection can still resolve it.
		m := p.mark()
		p.open(PrimitiveType, m)
		p.readIdentifierExpression()
		return p.abandonIfFailed(m)
	default:
		m := p.mark()
		p.open(PrimitiveType, m)
		p.fail(&ParseError{Kind: ParseErrorInvalidPrimitiveType, Position: p.position(), GotKind: p.kind()})
		return p.abandonIfFailed(m)
	}
}

func (p *Parser) readListType() NodeId {
	m := p.mark()
	p.open(ListType, m)
	p.expect(LeftBrace)
	p.readType()
	p.expect(RightBrace)
	return p.abandonIfFailed(m)
}

// readRecordType reads `[field1 = type1, field2 = type2, ...]` or the
// open variant `[field1 = type1, ...]` with a trailing ellipsis marking
// "and possibly more fields" (spec section 4.3, "RecordType").
func (p *Parser) readRecordType() NodeId {
	m := p.mark()
	p.open(RecordType, m)
	p.expect(LeftBracket)
	for !p.at(RightBracket) && p.err == nil {
		if p.at(Ellipsis) {
			p.advance()
			break
		}
		fm := p.mark()
		p.open(KeyValuePair, fm)
		p.readGeneralizedIdentifier()
		p.expect(Equal)
		p.readType()
		p.abandonIfFailed(fm)
		if p.err != nil {
			break
		}
		if p.at(Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(RightBracket)
	return p.abandonIfFailed(m)
}

func (p *Parser) readTableType() NodeId {
	m := p.mark()
	p.open(TableType, m)
	p.expect(KeywordTable)
	switch {
	case p.at(LeftBracket):
		p.readRecordType()
	case p.at(Identifier):
		p.readIdentifierExpression()
	}
	return p.abandonIfFailed(m)
}

// readFunctionType reads `function` used as a bare type name, or the full
// `function (params) as returnType` signature form when a parameter list
// follows (spec section 4.3, "Type" — `nullable function` with nothing
// trailing must parse the same way `nullable table` does).
func (p *Parser) readFunctionType() NodeId {
	m := p.mark()
	p.open(FunctionType, m)
	p.expect(KeywordFunction)
	if p.at(LeftParen) {
		p.readParameterList()
		p.expect(KeywordAs)
		p.readType()
	}
	return p.abandonIfFailed(m)
}
