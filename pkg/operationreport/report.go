package operationreport

import (
	"sort"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/multierr"
)

// reportJSONBuckets lists Report's JSON buckets in the same pipeline-order
// priority as Report.Error and HasErrors, for FirstMessage to scan.
var reportJSONBuckets = []string{
	"scanErrors", "parseErrors", "resolutionErrors",
	"schemaValidationErrors", "executableErrors", "coercionErrors",
}

// FirstMessage extracts the first error message from a Report's MarshalJSON
// output, in the same bucket priority HasErrors checks, without unmarshaling
// the whole document into a typed struct. Intended for callers that received
// a report as an opaque JSON blob (e.g. over a log/event pipeline) and only
// need a one-line summary. ok is false when doc holds no errors.
func FirstMessage(doc []byte) (message string, ok bool) {
	parsed := gjson.ParseBytes(doc)
	for _, bucket := range reportJSONBuckets {
		first := parsed.Get(bucket + ".0.message")
		if first.Exists() {
			return first.String(), true
		}
	}
	return "", false
}

// Report batches every error produced across a scan/parse/resolve/validate
// pipeline. Errors are appended in pipeline order: scan, then parse, then
// (only if both are empty) resolution, schema validation, executable
// validation, coercion. Within each bucket, order follows source order since
// each error's Span derives from the traversal that produced it.
type Report struct {
	ScanErrors              []ScanError
	ParseErrors             []ParseError
	ResolutionErrors        []ResolutionError
	SchemaValidationErrors  []SchemaValidationError
	ExecutableErrors        []ExecutableValidationError
	CoercionErrors          []CoercionError
}

func (r *Report) AddScanError(err ScanError)                           { r.ScanErrors = append(r.ScanErrors, err) }
func (r *Report) AddParseError(err ParseError)                         { r.ParseErrors = append(r.ParseErrors, err) }
func (r *Report) AddResolutionError(err ResolutionError)               { r.ResolutionErrors = append(r.ResolutionErrors, err) }
func (r *Report) AddSchemaValidationError(err SchemaValidationError)   { r.SchemaValidationErrors = append(r.SchemaValidationErrors, err) }
func (r *Report) AddExecutableError(err ExecutableValidationError)     { r.ExecutableErrors = append(r.ExecutableErrors, err) }
func (r *Report) AddCoercionError(err CoercionError)                   { r.CoercionErrors = append(r.CoercionErrors, err) }

// HasErrors reports whether any bucket holds at least one error.
func (r *Report) HasErrors() bool {
	return len(r.ScanErrors) > 0 ||
		len(r.ParseErrors) > 0 ||
		len(r.ResolutionErrors) > 0 ||
		len(r.SchemaValidationErrors) > 0 ||
		len(r.ExecutableErrors) > 0 ||
		len(r.CoercionErrors) > 0
}

// HasLexOrParseErrors reports whether scanning or parsing failed; downstream
// passes (resolution, validation) must not run when this is true.
func (r *Report) HasLexOrParseErrors() bool {
	return len(r.ScanErrors) > 0 || len(r.ParseErrors) > 0
}

// Error satisfies the error interface by combining every error in the report
// via go.uber.org/multierr, so a Report can itself be returned and handled
// anywhere an error is expected.
func (r *Report) Error() string {
	var combined error
	for _, e := range r.ScanErrors {
		combined = multierr.Append(combined, e)
	}
	for _, e := range r.ParseErrors {
		combined = multierr.Append(combined, e)
	}
	for _, e := range r.ResolutionErrors {
		combined = multierr.Append(combined, e)
	}
	for _, e := range r.SchemaValidationErrors {
		combined = multierr.Append(combined, e)
	}
	for _, e := range r.ExecutableErrors {
		combined = multierr.Append(combined, e)
	}
	for _, e := range r.CoercionErrors {
		combined = multierr.Append(combined, e)
	}
	if combined == nil {
		return ""
	}
	return combined.Error()
}

// SortResolutionErrorsByName sorts duplicate-definition style resolution
// errors into ascending key order.
func (r *Report) SortResolutionErrorsByName() {
	sort.SliceStable(r.ResolutionErrors, func(i, j int) bool {
		return r.ResolutionErrors[i].Name < r.ResolutionErrors[j].Name
	})
}

// MarshalJSON renders the report as a JSON document built incrementally with
// sjson, rather than via encoding/json struct tags. Each non-empty bucket
// becomes a JSON array of error objects (sjson creates an array for the
// numeric path part), and a coercion error's path is written as its
// dotted/indexed string form, e.g. ".items[2].name".
func (r *Report) MarshalJSON() ([]byte, error) {
	doc := []byte(`{}`)
	var err error

	set := func(path, value string) {
		if err != nil {
			return
		}
		doc, err = sjson.SetBytes(doc, path, value)
	}

	for i, e := range r.ScanErrors {
		base := "scanErrors." + strconv.Itoa(i)
		set(base+".kind", e.Kind.String())
		set(base+".message", e.Message)
	}
	for i, e := range r.ParseErrors {
		base := "parseErrors." + strconv.Itoa(i)
		set(base+".kind", e.Kind.String())
		set(base+".message", e.Message)
	}
	for i, e := range r.ResolutionErrors {
		base := "resolutionErrors." + strconv.Itoa(i)
		set(base+".kind", e.Kind.String())
		set(base+".message", e.Message)
		set(base+".name", e.Name)
	}
	for i, e := range r.SchemaValidationErrors {
		base := "schemaValidationErrors." + strconv.Itoa(i)
		set(base+".kind", e.Kind.String())
		set(base+".message", e.Message)
	}
	for i, e := range r.ExecutableErrors {
		base := "executableErrors." + strconv.Itoa(i)
		set(base+".kind", e.Kind.String())
		set(base+".rule", e.Rule)
		set(base+".message", e.Message)
	}
	for i, e := range r.CoercionErrors {
		base := "coercionErrors." + strconv.Itoa(i)
		set(base+".kind", e.Kind.String())
		set(base+".message", e.Message)
		set(base+".expectedType", e.ExpectedType)
		if e.Path != nil {
			set(base+".path", e.Path.String())
		}
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}
