package spec

import (
	"fmt"
	"io"

	verr "github.com/nihei9/ffgram/error"
)

// RootNode holds the rules of a grammar source in file order.
type RootNode struct {
	Rules []*RuleNode
}

// RuleNode is one already-split source line: a left-hand side and the raw tokens of one alternative.
type RuleNode struct {
	LHS string
	RHS []string
	Pos Position
}

// Parse reads a grammar source. Every line holds one rule of the form `<A> -> token1 token2 ...`; blank
// lines are ignored. All malformed lines are reported together as verr.SpecErrors.
func Parse(src io.Reader) (*RootNode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	return p.parse()
}

type parser struct {
	lex     *lexer
	errs    verr.SpecErrors
	reached bool
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (*RootNode, error) {
	root := &RootNode{}
	for !p.reached {
		rule, err := p.parseLine()
		if err != nil {
			return nil, err
		}
		if rule == nil {
			continue
		}
		root.Rules = append(root.Rules, rule)
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	tracer().Debugf("%v rules read", len(root.Rules))
	return root, nil
}

// parseLine reads tokens up to the end of the current line. It returns nil when the line is blank or
// malformed; a malformed line is recorded in p.errs.
func (p *parser) parseLine() (*RuleNode, error) {
	var lhs []*token
	var rhs []*token
	var arrows []*token
	var invalid *token
	for {
		tok, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenKindEOF {
			p.reached = true
			break
		}
		if tok.kind == tokenKindNewline {
			break
		}
		switch tok.kind {
		case tokenKindArrow:
			arrows = append(arrows, tok)
		case tokenKindWord:
			if len(arrows) == 0 {
				lhs = append(lhs, tok)
			} else {
				rhs = append(rhs, tok)
			}
		default:
			if invalid == nil {
				invalid = tok
			}
		}
	}

	if len(lhs) == 0 && len(rhs) == 0 && len(arrows) == 0 && invalid == nil {
		return nil, nil
	}

	if invalid != nil {
		p.raise(synErrInvalidToken, invalid.text, invalid.pos)
		return nil, nil
	}
	switch {
	case len(arrows) == 0:
		p.raise(ErrMalformedRuleLine, detailNoArrow, lhs[0].pos)
	case len(arrows) > 1:
		p.raise(ErrMalformedRuleLine, fmt.Sprintf("%v; found %v", detailTooManyArrows, len(arrows)), arrows[1].pos)
	case len(lhs) == 0:
		p.raise(ErrMalformedRuleLine, detailNoLHS, arrows[0].pos)
	case len(lhs) > 1:
		p.raise(ErrMalformedRuleLine, detailMultipleLHS, lhs[1].pos)
	case len(rhs) == 0:
		p.raise(ErrMalformedRuleLine, detailNoRHS, arrows[0].pos)
	default:
		rule := &RuleNode{
			LHS: lhs[0].text,
			RHS: make([]string, len(rhs)),
			Pos: lhs[0].pos,
		}
		for i, tok := range rhs {
			rule.RHS[i] = tok.text
		}
		return rule, nil
	}
	return nil, nil
}

func (p *parser) raise(cause error, detail string, pos Position) {
	p.errs = append(p.errs, &verr.SpecError{
		Cause:  cause,
		Detail: detail,
		Row:    pos.Row,
		Col:    pos.Col,
	})
}
