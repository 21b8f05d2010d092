package coercion

import (
	"github.com/wundergraph/astjson"

	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/operationreport"
)

// CoerceAndMaterialize validates value against t exactly like Coerce, and on
// success also builds the coerced literal as an astjson.Value tree rooted in
// arena. Callers that only need a yes/no answer (every executable validation
// rule in this module) should keep calling Coerce directly; materializing
// into astjson's arena is for callers handing the coerced literal on to an
// execution engine, which needs an actual value tree, not just a verdict.
//
// A Variable value has no literal form to materialize (its value arrives at
// request time); it materializes as JSON null, matching Coerce's own
// "always succeeds, checked elsewhere" treatment of variables.
func (c *Coercer) CoerceAndMaterialize(arena *astjson.Arena, value *ast.Value, t *ast.TypeRef, path *operationreport.PathSegment, report *operationreport.Report) (*astjson.Value, bool) {
	if !c.Coerce(value, t, path, report) {
		return nil, false
	}
	return materialize(arena, value), true
}

func materialize(arena *astjson.Arena, value *ast.Value) *astjson.Value {
	switch value.ValueKind {
	case ast.KindVariable:
		return arena.NewNull()
	case ast.KindInteger:
		return arena.NewNumberInt(int(value.IntValue))
	case ast.KindFloat:
		return arena.NewNumberFloat64(value.FloatValue)
	case ast.KindString:
		return arena.NewString(value.StringValue)
	case ast.KindEnum:
		return arena.NewString(value.EnumValue)
	case ast.KindBoolean:
		if value.BooleanValue {
			return arena.NewTrue()
		}
		return arena.NewFalse()
	case ast.KindNull:
		return arena.NewNull()
	case ast.KindList:
		arr := arena.NewArray()
		for i, elem := range value.ListValue {
			arr.SetArrayItem(i, materialize(arena, elem))
		}
		return arr
	case ast.KindObject:
		obj := arena.NewObject()
		for _, f := range value.ObjectValue {
			obj.Set(f.Name, materialize(arena, f.Value))
		}
		return obj
	default:
		return arena.NewNull()
	}
}
