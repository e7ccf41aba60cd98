package store

import (
	"context"
	"time"

	"github.com/ezrec/genx/fitness"
	"github.com/ezrec/genx/problem"
)

// Run is one search of a problem.
type Run struct {
	Version int             `json:"version"`
	ID      string          `json:"id"`
	Problem string          `json:"problem"`
	Seed    uint64          `json:"seed"`
	Options problem.Options `json:"options"`
	Start   time.Time       `json:"start"`
}

// Improvement is a new best genotype of a run.
type Improvement struct {
	Version    int           `json:"version"`
	RunID      string        `json:"run_id"`
	Generation int           `json:"generation"`
	Genotypes  uint64        `json:"genotypes"`
	Score      fitness.Score `json:"score"`
	Length     int           `json:"length"`
	Listing    string        `json:"listing"` // Dump of the genotype.
	Code       string        `json:"code"`    // Hex of the genotype.
	Time       time.Time     `json:"time"`
}

// Store persists runs and their improvements.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	Runs(ctx context.Context) ([]Run, error)
	SaveImprovement(ctx context.Context, imp Improvement) error
	// Improvements of a run, in generation order.
	Improvements(ctx context.Context, runID string) ([]Improvement, error)
}
