package ast

import "github.com/graphql-toolkit/core/pkg/position"

// Directive is one `@name(args?)` application.
type Directive struct {
	Name      string
	Arguments ArgumentList
	Span      position.Span
}

// DirectiveList is an ordered sequence of directive applications.
type DirectiveList struct {
	Directives []*Directive
}

// ByName returns every directive application with the given name (directives
// may be repeatable).
func (l DirectiveList) ByName(name string) []*Directive {
	var out []*Directive
	for _, d := range l.Directives {
		if d.Name == name {
			out = append(out, d)
		}
	}
	return out
}
