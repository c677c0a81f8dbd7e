// Package source supplies raw questionnaire rows and answer dictionaries to
// the scoring pipeline, from a remote form service or a stored copy.
package source

import (
	"context"
	"errors"
	"fmt"
)

// Row is one raw submission: question identifier to answer text.
type Row map[string]string

// Source fetches the ordered collection of raw rows.
type Source interface {
	Fetch(ctx context.Context) ([]Row, error)
}

// ErrSourceUnavailable is wrapped by every SourceUnavailableError.
var ErrSourceUnavailable = errors.New("submission source unavailable")

// SourceUnavailableError reports that neither the stored copy nor the remote
// service could supply rows.
type SourceUnavailableError struct {
	CacheErr  error
	RemoteErr error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("%v: cache: %v; remote: %v", ErrSourceUnavailable, e.CacheErr, e.RemoteErr)
}

func (e *SourceUnavailableError) Unwrap() []error {
	errs := []error{ErrSourceUnavailable}
	for _, err := range []error{e.CacheErr, e.RemoteErr} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Maps converts rows to plain maps for submission parsing.
func Maps(rows []Row) []map[string]string {
	out := make([]map[string]string, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}
