package health

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Report maps each checker name to its outcome; nil means healthy.
type Report map[string]error

// Err joins the failures in name order, or returns nil when every check passed.
func (r Report) Err() error {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := r[name]; err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) (Report, error)
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

// Ready runs every checker, even after a failure, so the report is complete.
func (s *service) Ready(ctx context.Context) (Report, error) {
	report := make(Report, len(s.checkers))
	for _, ch := range s.checkers {
		report[ch.Name()] = ch.Check(ctx)
	}
	return report, report.Err()
}
