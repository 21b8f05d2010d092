package definitionvalidation

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/operationreport"
)

// checkInputObjectCycles reports InputObjectTypeDefinitionCircularReferences
// for every elementary cycle among input-object fields that are non-null and
// singular: a cycle through a nullable or list field is breakable at runtime
// (the caller can pass null, or an empty list) and is not itself an error.
//
// Built on gonum's simple.DirectedGraph + topo.DirectedCyclesIn (Johnson's
// algorithm) rather than a hand-rolled DFS, since the same "find every
// elementary cycle, not just whether one exists" shape recurs for any future
// schema-level reference graph.
func checkInputObjectCycles(doc *ast.Document, report *operationreport.Report) {
	byName := make(map[string]*ast.InputObjectTypeDefinition, len(doc.InputObjects))
	for _, io := range doc.InputObjects {
		byName[io.Name] = io
	}
	if len(byName) == 0 {
		return
	}

	ids := make(map[string]int64, len(byName))
	names := make(map[int64]string, len(byName))
	var nextID int64
	idFor := func(name string) int64 {
		if id, ok := ids[name]; ok {
			return id
		}
		id := nextID
		nextID++
		ids[name] = id
		names[id] = name
		return id
	}

	g := simple.NewDirectedGraph()
	for name := range byName {
		g.AddNode(simple.Node(idFor(name)))
	}
	for name, io := range byName {
		from := idFor(name)
		for _, f := range io.Fields {
			if !isRequiredSingularReference(f.Type) {
				continue
			}
			target := f.Type.InnermostName()
			if _, ok := byName[target]; !ok {
				continue
			}
			to := idFor(target)
			// A field referencing its own type directly (not through a list)
			// as non-null can never be satisfied either. simple.DirectedGraph
			// does not accept self edges, so such a self-loop is reported here
			// as a single-node cycle instead of being added to the graph.
			if to == from {
				report.AddSchemaValidationError(withCycle(operationreport.NewSchemaValidationError(
					operationreport.InputObjectTypeDefinitionCircularReferences, io.Span,
					"input object type \""+name+"\" has a circular reference through only non-null, non-list fields",
				), []string{name, name}))
				continue
			}
			g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
		}
	}

	for _, cycle := range topo.DirectedCyclesIn(g) {
		if len(cycle) == 0 {
			continue
		}
		path := make([]string, len(cycle))
		for i, n := range cycle {
			path[i] = names[n.ID()]
		}
		first := byName[path[0]]
		report.AddSchemaValidationError(withCycle(operationreport.NewSchemaValidationError(
			operationreport.InputObjectTypeDefinitionCircularReferences, first.Span,
			"input object type \""+path[0]+"\" has a circular reference through only non-null, non-list fields",
		), path))
	}
}

// isRequiredSingularReference reports whether t is a non-null, non-list type
// reference: `Foo!`, not `[Foo]!`/`[Foo!]!`/`Foo`.
func isRequiredSingularReference(t *ast.TypeRef) bool {
	return t.IsNonNull() && !t.IsList()
}

func withCycle(e operationreport.SchemaValidationError, cycle []string) operationreport.SchemaValidationError {
	e.Cycle = cycle
	return e
}
