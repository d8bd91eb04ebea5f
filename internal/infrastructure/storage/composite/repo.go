package composite

import (
	"context"

	"bnrest/internal/application/port"
	"bnrest/internal/domain"
)

type Repo struct {
	repos []port.CallJournal
}

func New(repos ...port.CallJournal) *Repo {
	// nil repos are allowed; filter in constructor for safety
	out := make([]port.CallJournal, 0, len(repos))
	for _, r := range repos {
		if r != nil {
			out = append(out, r)
		}
	}
	return &Repo{repos: out}
}

// Len is the number of journals written to.
func (r *Repo) Len() int { return len(r.repos) }

func (r *Repo) RecordCall(ctx context.Context, rec *domain.CallRecord) error {
	var firstErr error
	for _, repo := range r.repos {
		if err := repo.RecordCall(ctx, rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close closes every journal and returns the first error.
func (r *Repo) Close() error {
	var firstErr error
	for _, repo := range r.repos {
		if err := repo.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ port.CallJournal = (*Repo)(nil)
