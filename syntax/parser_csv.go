package syntax

// readCsv reads a comma-separated sequence of items up to (but not
// consuming) a token of closeKind, wrapping them in a Csv node (spec
// section 4.3, "Csv"). A trailing comma immediately before closeKind is
// recorded as a ParseErrorExpectedCsvContinuation of the given kind and,
// like any parse error, unwinds to the top of the parse — but the Csv
// node and its already-read items stay in the node graph as an open
// ContextNode, so `{1, 2,}` keeps both items inspectable even though the
// whole parse is malformed.
func (p *Parser) readCsv(item func() NodeId, closeKind Kind, continuation CsvContinuationKind) NodeId {
	m := p.mark()
	p.open(Csv, m)
	for !p.at(closeKind) && p.err == nil {
		item()
		if p.err != nil {
			break
		}
		if p.at(Comma) {
			p.advance()
			if p.at(closeKind) {
				p.fail(&ParseError{Kind: ParseErrorExpectedCsvContinuation, Position: p.position(), Csv: continuation})
			}
			continue
		}
		break
	}
	return p.abandonIfFailed(m)
}
