package parser

import (
	"fmt"

	"github.com/cottand/sift/frontend/ast"
	"github.com/cottand/sift/frontend/sifterr"
)

// parser is a recursive-descent parser over the token stream. It reports
// malformed input through diagnostics and never panics; after an error it
// resynchronises at the next `let`.
type parser struct {
	lex   *lexer
	tok   Token // current token
	diags sifterr.Diagnostics
}

func newParser(src string) *parser {
	p := &parser{lex: newLexer(src)}
	p.advance()
	return p
}

func (p *parser) advance() {
	p.tok = p.lex.next()
}

func (p *parser) errorf(at ast.Positioner, format string, args ...any) {
	p.diags = append(p.diags, sifterr.ParseError{
		Span:    ast.SpanOf(at),
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *parser) expect(typ TokenType) (Token, bool) {
	if p.tok.Type != typ {
		p.errorf(tokenSpan(p.tok), "expected %s, found %s", typ, p.tok)
		return p.tok, false
	}
	tok := p.tok
	p.advance()
	return tok, true
}

func tokenSpan(t Token) ast.Span {
	return ast.Span{Start: t.Start, Stop: t.End}
}

// synchronise skips tokens until the start of the next declaration.
func (p *parser) synchronise() {
	for p.tok.Type != EOF && p.tok.Type != LET {
		p.advance()
	}
}

func (p *parser) parseFile() *ast.SourceFile {
	file := &ast.SourceFile{Span: ast.Span{Start: p.tok.Start}}
	for p.tok.Type != EOF {
		if p.tok.Type != LET {
			p.errorf(tokenSpan(p.tok), "expected %s, found %s", LET, p.tok)
			p.synchronise()
			continue
		}
		decl, ok := p.parseDecl()
		if !ok {
			p.synchronise()
			continue
		}
		file.Declarations = append(file.Declarations, decl)
	}
	file.Stop = p.tok.End
	return file
}

// parseDecl parses `let name (: type)? = expr`.
func (p *parser) parseDecl() (*ast.VariableDecl, bool) {
	letTok, _ := p.expect(LET)
	name, ok := p.expect(IDENT)
	if !ok {
		return nil, false
	}

	var annotation ast.TypeAnnotation
	if p.tok.Type == COLON {
		p.advance()
		annotation, ok = p.parseType()
		if !ok {
			return nil, false
		}
	}

	if _, ok := p.expect(ASSIGN); !ok {
		return nil, false
	}
	init, ok := p.parseExpr()
	if !ok {
		return nil, false
	}

	return &ast.VariableDecl{
		Span:       ast.Span{Start: letTok.Start, Stop: init.End()},
		Name:       name.Lit,
		Annotation: annotation,
		Init:       init,
	}, true
}

// parseExpr parses a postfix chain of calls over a primary expression.
func (p *parser) parseExpr() (ast.Expr, bool) {
	e, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for p.tok.Type == LPAREN {
		p.advance()
		arg, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		rparen, ok := p.expect(RPAREN)
		if !ok {
			return nil, false
		}
		e = &ast.CallExpr{
			Span: ast.Span{Start: e.Pos(), Stop: rparen.End},
			Fn:   e,
			Arg:  arg,
		}
	}
	return e, true
}

func (p *parser) parsePrimary() (ast.Expr, bool) {
	switch p.tok.Type {
	case INT:
		tok := p.tok
		p.advance()
		return &ast.IntegerLiteralExpr{Span: tokenSpan(tok), Value: tok.Lit}, true
	case IDENT:
		tok := p.tok
		p.advance()
		return &ast.UnresolvedDeclRefExpr{Span: tokenSpan(tok), Name: tok.Lit}, true
	case LBRACE:
		return p.parseClosure()
	case LPAREN:
		p.advance()
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(RPAREN); !ok {
			return nil, false
		}
		return e, true
	default:
		p.errorf(tokenSpan(p.tok), "expected an expression, found %s", p.tok)
		return nil, false
	}
}

// parseClosure parses `{ (x (: type)?) in expr }`.
func (p *parser) parseClosure() (ast.Expr, bool) {
	lbrace, _ := p.expect(LBRACE)
	if _, ok := p.expect(LPAREN); !ok {
		return nil, false
	}
	paramName, ok := p.expect(IDENT)
	if !ok {
		return nil, false
	}

	param := &ast.ParamDecl{
		Span: tokenSpan(paramName),
		Name: paramName.Lit,
	}
	if p.tok.Type == COLON {
		p.advance()
		param.Annotation, ok = p.parseType()
		if !ok {
			return nil, false
		}
		param.Stop = param.Annotation.End()
	}

	if _, ok := p.expect(RPAREN); !ok {
		return nil, false
	}
	if _, ok := p.expect(IN); !ok {
		return nil, false
	}
	body, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	rbrace, ok := p.expect(RBRACE)
	if !ok {
		return nil, false
	}

	return &ast.ClosureExpr{
		Span:  ast.Span{Start: lbrace.Start, Stop: rbrace.End},
		Param: param,
		Body:  body,
	}, true
}

// parseType parses `atom` or `atom -> type`, where atom is an identifier or
// a parenthesised type.
func (p *parser) parseType() (ast.TypeAnnotation, bool) {
	atom, ok := p.parseTypeAtom()
	if !ok {
		return nil, false
	}
	if p.tok.Type != ARROW {
		return atom, true
	}
	p.advance()
	result, ok := p.parseType()
	if !ok {
		return nil, false
	}
	return ast.TFunc{
		Span:      ast.SpanBetween(atom, result),
		Parameter: atom,
		Result:    result,
	}, true
}

func (p *parser) parseTypeAtom() (ast.TypeAnnotation, bool) {
	switch p.tok.Type {
	case IDENT:
		tok := p.tok
		p.advance()
		return ast.TIdent{Span: tokenSpan(tok), Name: tok.Lit}, true
	case LPAREN:
		p.advance()
		inner, ok := p.parseType()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(RPAREN); !ok {
			return nil, false
		}
		return inner, true
	default:
		p.errorf(tokenSpan(p.tok), "expected a type, found %s", p.tok)
		return nil, false
	}
}
