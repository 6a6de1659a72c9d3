package annotations

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/matchgen/internal/errors"
)

// DefaultNamespace is the directive namespace used by matcher libraries
const DefaultNamespace = "hamcrest"

// directiveAST is the participle grammar of a directive comment:
//
//	//hamcrest::factory -excludes=gwt,"js node" -other
type directiveAST struct {
	Namespace string      `parser:"Comment @Ident Separator"`
	Name      string      `parser:"@Ident"`
	Params    []*paramAST `parser:"@@*"`
}

type paramAST struct {
	Key    string   `parser:"Dash @Ident"`
	Values []string `parser:"( Equals @(Ident | String) ( Comma @(Ident | String) )* )?"`
}

// Directive is a parsed directive comment
type Directive struct {
	Namespace string
	Name      string
	Keys      []string            // parameter keys in declaration order
	Params    map[string][]string // parameter values by key as written
	Location  errors.SourceLocation
	Raw       string
}

// Values returns the values of a parameter, matching the key case-insensitively
func (d *Directive) Values(key string) ([]string, bool) {
	for _, k := range d.Keys {
		if strings.EqualFold(k, key) {
			return d.Params[k], true
		}
	}
	return nil, false
}

// Is reports whether the directive has the given name
func (d *Directive) Is(name string) bool {
	return strings.EqualFold(d.Name, name)
}

// Parser parses directives of one namespace
type Parser struct {
	namespace string
	prefix    string
	parser    *participle.Parser[directiveAST]
}

// NewParser creates a parser for directives of the form //<namespace>::<name>
func NewParser(namespace string) *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//`},
		{Name: "Separator", Pattern: `::`},
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Ident", Pattern: `[a-zA-Z0-9_][a-zA-Z0-9_./-]*`},
		{Name: "Dash", Pattern: `-`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Comma", Pattern: `,`},
		{Name: "Whitespace", Pattern: `[ \t]+`},
	})

	return &Parser{
		namespace: namespace,
		prefix:    "//" + namespace + "::",
		parser: participle.MustBuild[directiveAST](
			participle.Lexer(lex),
			participle.Elide("Whitespace"),
			participle.Unquote("String"),
			participle.UseLookahead(2),
		),
	}
}

// Namespace returns the directive namespace
func (p *Parser) Namespace() string {
	return p.namespace
}

// IsDirective reports whether a raw comment belongs to the parser's namespace
func (p *Parser) IsDirective(comment string) bool {
	return strings.HasPrefix(strings.TrimSpace(comment), p.prefix)
}

// Parse parses a single raw comment such as "//hamcrest::factory -excludes=gwt"
func (p *Parser) Parse(comment string, loc errors.SourceLocation) (*Directive, error) {
	raw := strings.TrimSpace(comment)
	if !p.IsDirective(raw) {
		return nil, errors.NewSyntaxError(fmt.Sprintf("directive must start with '%s'", p.prefix)).
			WithDirective(raw).
			WithLocation(loc)
	}

	tree, err := p.parser.ParseString(loc.File, raw)
	if err != nil {
		syntaxErr := errors.WrapParseError("directive", err).WithDirective(raw).WithLocation(loc)
		syntaxErr.WithSuggestion(fmt.Sprintf("use the form %sname -key=value,value", p.prefix))
		return nil, syntaxErr
	}

	d := &Directive{
		Namespace: tree.Namespace,
		Name:      tree.Name,
		Params:    make(map[string][]string, len(tree.Params)),
		Location:  loc,
		Raw:       raw,
	}
	for _, param := range tree.Params {
		if _, dup := d.Values(param.Key); dup {
			return nil, errors.NewSyntaxError(fmt.Sprintf("parameter '%s' given more than once", param.Key)).
				WithDirective(raw).
				WithLocation(loc)
		}
		d.Keys = append(d.Keys, param.Key)
		d.Params[param.Key] = param.Values
	}
	return d, nil
}

// Find returns the directive called name in a doc comment, or nil if the
// comment carries none. Any directive of the namespace that fails to parse is
// reported, since it can not be told apart from a broken marker.
func (p *Parser) Find(fset *token.FileSet, doc *ast.CommentGroup, name string) (*Directive, error) {
	if doc == nil {
		return nil, nil
	}

	var found *Directive
	for _, c := range doc.List {
		if !p.IsDirective(c.Text) {
			continue
		}
		d, err := p.Parse(c.Text, location(fset, c.Slash))
		if err != nil {
			return nil, err
		}
		if !d.Is(name) {
			continue
		}
		if found != nil {
			return nil, errors.NewSyntaxError(fmt.Sprintf("duplicate %s%s directive", p.prefix, name)).
				WithDirective(d.Raw).
				WithLocation(d.Location)
		}
		found = d
	}
	return found, nil
}

func location(fset *token.FileSet, pos token.Pos) errors.SourceLocation {
	if fset == nil || !pos.IsValid() {
		return errors.SourceLocation{}
	}
	p := fset.Position(pos)
	return errors.SourceLocation{File: p.Filename, Line: p.Line, Column: p.Column}
}
