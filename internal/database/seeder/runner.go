// Package seeder loads reference data into the primary store.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"jobseek/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Runner runs seeders in order and stops at the first failure.
type Runner struct {
	Seeders []Seeder
	Logger  *log.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			logger.Printf("[Seeder] failed name=%s err=%v", s.Name(), err)
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		logger.Printf("[Seeder] done name=%s duration=%s", s.Name(), time.Since(start))
	}
	return nil
}
