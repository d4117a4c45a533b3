package jobspec

import (
	"fmt"

	"cuelang.org/go/cue"
)

// Decode extracts a single job definition from a CUE value.
//
// The label is the catalog key (job name); field values come from the CUE
// struct body. Decode performs structural decoding only; schema rules are
// checked separately by Validate so callers can collect every error at once.
func Decode(label string, v cue.Value) (*Job, error) {
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("job %q: %w", label, err)
	}

	var job Job
	if err := v.Decode(&job); err != nil {
		return nil, fmt.Errorf("job %q: decode: %w", label, err)
	}
	job.Name = label
	return &job, nil
}

// DecodeCatalog extracts every job under the top-level "job" field of a CUE
// value, preserving declaration order.
//
// Returns the catalog plus all decode/validation errors found. The catalog is
// nil when the value has no "job" field or a structural error prevents
// iteration entirely.
func DecodeCatalog(v cue.Value) (*Catalog, []error) {
	var errs []error

	jobsVal := v.LookupPath(cue.ParsePath("job"))
	if !jobsVal.Exists() {
		return nil, []error{fmt.Errorf("no top-level \"job\" field found in specs")}
	}

	iter, err := jobsVal.Fields()
	if err != nil {
		return nil, []error{fmt.Errorf("iterating jobs: %w", err)}
	}

	var jobs []Job
	for iter.Next() {
		job, decodeErr := Decode(iter.Label(), iter.Value())
		if decodeErr != nil {
			errs = append(errs, decodeErr)
			continue
		}
		for _, verr := range Validate(job) {
			verr := verr
			errs = append(errs, fmt.Errorf("job %q: %w", job.Name, &verr))
		}
		jobs = append(jobs, *job)
	}

	catalog, catErr := NewCatalog(jobs)
	if catErr != nil {
		errs = append(errs, catErr)
		return nil, errs
	}
	return catalog, errs
}
