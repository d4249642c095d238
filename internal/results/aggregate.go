// Package results turns a match's participants into an ordered result set
// and plans the report layout from it.
package results

import (
	"context"
	"errors"
	"fmt"

	"tftcomps/internal/riot"

	"golang.org/x/sync/errgroup"
)

// ErrParticipantResolution aborts aggregation when any participant's identity can't be resolved
var ErrParticipantResolution = errors.New("participant resolution failed")

// Resolver looks up the identity behind a participant's PUUID
type Resolver interface {
	ResolveParticipant(ctx context.Context, region riot.Region, puuid string) (riot.Identity, error)
}

// Aggregator builds result sets from match participants
type Aggregator struct {
	resolver    Resolver
	concurrency int
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithConcurrency bounds how many identity lookups run at once. 1 resolves in match order.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// NewAggregator creates an Aggregator resolving names through r
func NewAggregator(r Resolver, opts ...Option) *Aggregator {
	a := &Aggregator{resolver: r, concurrency: 1}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate resolves every participant's display name and returns their records
// keyed by that name, ordered by placement. Participants resolving to the same
// name overwrite each other in match order. Any failed lookup aborts the whole set.
func (a *Aggregator) Aggregate(ctx context.Context, region riot.Region, match *riot.MatchResponse) (*Ordered, error) {
	participants := match.Info.Participants
	names := make([]string, len(participants))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, p := range participants {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			id, err := a.resolver.ResolveParticipant(gctx, region, p.PUUID)
			if err != nil {
				return fmt.Errorf("%w: participant %s: %w", ErrParticipantResolution, p.PUUID, err)
			}
			names[i] = id.DisplayName()
			if names[i] == "" {
				names[i] = p.PUUID
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := NewOrdered()
	for i, p := range participants {
		out.Set(names[i], newRecord(p))
	}
	out.SortByPlacement()
	return out, nil
}
