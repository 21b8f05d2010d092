// Package graphql exposes the toolkit's top-level convenience entry points:
// ParseSchema and ParseExecutable wrap the per-package pipelines (scan,
// parse, resolve; scan, parse) and deduplicate concurrent calls over
// byte-identical source with a singleflight.Group, keyed by an xxhash of the
// source text. Concurrent callers parsing the same document (a common
// pattern: many request goroutines validating against one static schema)
// share a single parse instead of each repeating the work.
package graphql

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"

	"github.com/graphql-toolkit/core/pkg/ast"
	"github.com/graphql-toolkit/core/pkg/astparser"
	"github.com/graphql-toolkit/core/pkg/astresolve"
	"github.com/graphql-toolkit/core/pkg/operationreport"
	"github.com/graphql-toolkit/core/pkg/schema"
)

var (
	schemaGroup     singleflight.Group
	executableGroup singleflight.Group
)

// schemaResult is the value shared across deduplicated ParseSchema callers.
// report is carried alongside schema because two goroutines parsing the same
// invalid source must each observe their own copy of the errors, not a
// pointer one caller might mutate after sharing.
type schemaResult struct {
	schema *schema.Schema
	report operationreport.Report
}

// ParseSchema scans, parses, and resolves a schema-definition document in one
// call. The returned Report is a copy; mutating it does not affect other
// concurrent callers that happened to be deduplicated against the same
// source.
func ParseSchema(source string) (*schema.Schema, operationreport.Report) {
	key := strconv.FormatUint(xxhash.Sum64String(source), 16)
	v, _, _ := schemaGroup.Do(key, func() (interface{}, error) {
		var report operationreport.Report
		doc := astparser.NewSchemaParser(source, &report).Parse()
		var s *schema.Schema
		if !report.HasLexOrParseErrors() {
			s = astresolve.Resolve(doc, &report)
		}
		return schemaResult{schema: s, report: report}, nil
	})
	res := v.(schemaResult)
	return res.schema, res.report
}

type executableResult struct {
	doc    *ast.ExecutableDocument
	report operationreport.Report
}

// ParseExecutable scans and parses an executable (query) document.
// Validating the result against a schema is a separate step
// (pkg/astvalidation/executablevalidation.Validate) since it requires a
// resolved schema the caller already holds.
func ParseExecutable(source string) (*ast.ExecutableDocument, operationreport.Report) {
	key := strconv.FormatUint(xxhash.Sum64String(source), 16)
	v, _, _ := executableGroup.Do(key, func() (interface{}, error) {
		var report operationreport.Report
		doc := astparser.NewExecutableParser(source, &report).Parse()
		return executableResult{doc: doc, report: report}, nil
	})
	res := v.(executableResult)
	return res.doc, res.report
}
