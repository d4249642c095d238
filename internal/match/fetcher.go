// Package match finds the most recent TFT match for a named player.
package match

import (
	"context"
	"errors"
	"fmt"

	"tftcomps/internal/riot"

	"github.com/rs/zerolog"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrNoMatchHistory = errors.New("no match history")
	ErrMatchRetrieval = errors.New("match retrieval failed")
)

// Service is the slice of the Riot API the fetcher needs
type Service interface {
	LookupPlayer(ctx context.Context, platform riot.Platform, region riot.Region, name string) (riot.Identity, error)
	GetMatchHistory(ctx context.Context, region riot.Region, puuid string) ([]string, error)
	GetMatch(ctx context.Context, region riot.Region, matchID string) (*riot.MatchResponse, error)
}

// Latest is a player's most recent match together with the routing it was found through
type Latest struct {
	Player   riot.Identity
	Platform riot.Platform
	Region   riot.Region
	Match    *riot.MatchResponse
}

// Fetcher resolves players and retrieves their latest match
type Fetcher struct {
	svc Service
	log zerolog.Logger
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithLogger sets the fetcher's logger
func WithLogger(log zerolog.Logger) Option {
	return func(f *Fetcher) {
		f.log = log
	}
}

// NewFetcher creates a Fetcher backed by svc
func NewFetcher(svc Service, opts ...Option) *Fetcher {
	f := &Fetcher{svc: svc, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// LatestMatch resolves name on platform and returns the last entry of its match history.
// The platform is routed before any request is made.
func (f *Fetcher) LatestMatch(ctx context.Context, name, platform string) (*Latest, error) {
	p, err := riot.ParsePlatform(platform)
	if err != nil {
		return nil, err
	}
	region, err := riot.RegionFor(string(p))
	if err != nil {
		return nil, err
	}

	// Step 1: identity
	player, err := f.svc.LookupPlayer(ctx, p, region, name)
	if err != nil {
		if errors.Is(err, riot.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s on %s", ErrPlayerNotFound, name, p)
		}
		return nil, fmt.Errorf("%w: looking up %s: %w", ErrMatchRetrieval, name, err)
	}
	if player.PUUID == "" {
		return nil, fmt.Errorf("%w: %s on %s", ErrPlayerNotFound, name, p)
	}
	f.log.Info().Str("player", name).Str("platform", string(p)).Str("region", string(region)).Msg("resolved player")

	// Step 2: match history, most recent last
	matchIDs, err := f.svc.GetMatchHistory(ctx, region, player.PUUID)
	if err != nil {
		return nil, fmt.Errorf("%w: match history for %s: %w", ErrMatchRetrieval, name, err)
	}
	if len(matchIDs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatchHistory, name)
	}

	// Step 3: latest match detail
	matchID := matchIDs[len(matchIDs)-1]
	match, err := f.svc.GetMatch(ctx, region, matchID)
	if err != nil {
		return nil, fmt.Errorf("%w: match %s: %w", ErrMatchRetrieval, matchID, err)
	}
	f.log.Info().
		Str("match", matchID).
		Int("participants", len(match.Info.Participants)).
		Msg("fetched latest match")

	return &Latest{
		Player:   player,
		Platform: p,
		Region:   region,
		Match:    match,
	}, nil
}
