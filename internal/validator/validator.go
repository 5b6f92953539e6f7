// Package validator cross-checks a candidate structured review against the
// schema, the request context, and a fixed battery of business rules.
//
// Validate is pure: it never mutates its arguments, performs no I/O, and
// returns the same Result for the same inputs.
package validator

import (
	"errors"

	"reviewz/internal/domain"
	"reviewz/internal/schema"
)

// Validate checks candidate and reports errors and warnings. A schema failure
// yields exactly one SchemaValidationFailed error and no warnings. in may be
// nil, in which case the context checks are skipped.
func Validate(candidate any, in *domain.ReviewInput) Result {
	review, err := schema.Parse(candidate)
	if err != nil {
		return SchemaFailure(err)
	}

	res := Result{Errors: []Error{}, Warnings: []Warning{}}

	for _, r := range battery {
		if r.context && in == nil {
			continue
		}
		if w, ok := r.check(review, in); ok {
			w.Kind = r.kind
			res.Warnings = append(res.Warnings, w)
		}
	}
	res.IsValid = true
	return res
}

// SchemaFailure builds the invalid Result for a candidate that did not parse.
// Producers that check the schema themselves use it to report the same
// outcome Validate would.
func SchemaFailure(err error) Result {
	return Result{Errors: []Error{schemaError(err)}, Warnings: []Warning{}}
}

func schemaError(err error) Error {
	e := Error{Kind: SchemaValidationFailed, Message: err.Error()}
	var f *schema.Failure
	if errors.As(err, &f) {
		e.Details = map[string]any{"issues": f.Issues}
	}
	return e
}
