package sexpr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

/*
	A compact reader for the S-expression dialect KiCad uses in all its
	file formats. It covers exactly what the importer needs: checking
	library tables for an entry, locating symbol blocks, and letting
	tests walk writer output. Documents are parsed whole from memory.
*/

// Node is one element of a parsed document: a list with children, or
// an atom holding a leaf value.
type Node struct {
	Leaf     string
	Quoted   bool
	Children []*Node
}

func (n *Node) IsList() bool {
	return n.Children != nil
}

// Head returns the leading atom of a list, which names the element.
func (n *Node) Head() string {
	if !n.IsList() || len(n.Children) == 0 {
		return ""
	}

	return n.Children[0].Leaf
}

// Find returns the first child list whose head matches name.
func (n *Node) Find(name string) *Node {
	for _, c := range n.Children {
		if c.IsList() && c.Head() == name {
			return c
		}
	}

	return nil
}

// FindAll returns every child list whose head matches name.
func (n *Node) FindAll(name string) []*Node {
	found := []*Node{}
	for _, c := range n.Children {
		if c.IsList() && c.Head() == name {
			found = append(found, c)
		}
	}

	return found
}

// Arg returns the i-th atom after the head, or "" when absent.
func (n *Node) Arg(i int) string {
	if i+1 >= len(n.Children) {
		return ""
	}

	c := n.Children[i+1]
	if c.IsList() {
		return ""
	}

	return c.Leaf
}

// FloatArg returns the i-th atom after the head as a float.
func (n *Node) FloatArg(i int) (float64, error) {
	s := n.Arg(i)
	if s == "" {
		return 0, fmt.Errorf("%s: no argument %d", n.Head(), i)
	}

	return strconv.ParseFloat(s, 64)
}

type lexer struct {
	text string
	pos  int
}

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenOpen
	tokenClose
	tokenAtom
	tokenString
)

type token struct {
	kind  tokenKind
	value string
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.text) && unicode.IsSpace(rune(l.text[l.pos])) {
		l.pos++
	}

	if l.pos >= len(l.text) {
		return token{kind: tokenEOF}, nil
	}

	switch c := l.text[l.pos]; c {
	case '(':
		l.pos++
		return token{kind: tokenOpen}, nil
	case ')':
		l.pos++
		return token{kind: tokenClose}, nil
	case '"':
		return l.lexString()
	default:
		return l.lexAtom()
	}
}

func (l *lexer) lexString() (token, error) {
	b := strings.Builder{}
	l.pos++

	for l.pos < len(l.text) {
		c := l.text[l.pos]
		switch c {
		case '\\':
			if l.pos+1 >= len(l.text) {
				return token{}, fmt.Errorf("unterminated escape at offset %d", l.pos)
			}
			switch e := l.text[l.pos+1]; e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(e)
			}
			l.pos += 2
		case '"':
			l.pos++
			return token{kind: tokenString, value: b.String()}, nil
		default:
			b.WriteByte(c)
			l.pos++
		}
	}

	return token{}, fmt.Errorf("unterminated string at offset %d", l.pos)
}

func (l *lexer) lexAtom() (token, error) {
	start := l.pos
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		if c == '(' || c == ')' || c == '"' || unicode.IsSpace(rune(c)) {
			break
		}
		l.pos++
	}

	return token{kind: tokenAtom, value: l.text[start:l.pos]}, nil
}

/*
	Parse reads every top-level expression in the document. A lone atom
	at the top level is legal but never occurs in KiCad files.
*/
func Parse(text string) ([]*Node, error) {
	l := &lexer{text: text}
	nodes := []*Node{}

	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		switch tok.kind {
		case tokenEOF:
			return nodes, nil
		case tokenClose:
			return nil, fmt.Errorf("unexpected ) at offset %d", l.pos)
		case tokenOpen:
			node, err := parseList(l)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		case tokenAtom, tokenString:
			nodes = append(nodes, &Node{Leaf: tok.value, Quoted: tok.kind == tokenString})
		}
	}
}

// ParseOne parses a document expected to hold exactly one expression.
func ParseOne(text string) (*Node, error) {
	nodes, err := Parse(text)
	if err != nil {
		return nil, err
	}

	if len(nodes) != 1 {
		return nil, fmt.Errorf("expected one expression, found %d", len(nodes))
	}

	return nodes[0], nil
}

func parseList(l *lexer) (*Node, error) {
	node := &Node{Children: []*Node{}}

	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		switch tok.kind {
		case tokenEOF:
			return nil, fmt.Errorf("unclosed list at offset %d", l.pos)
		case tokenClose:
			return node, nil
		case tokenOpen:
			child, err := parseList(l)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		case tokenAtom, tokenString:
			node.Children = append(node.Children, &Node{Leaf: tok.value, Quoted: tok.kind == tokenString})
		}
	}
}
