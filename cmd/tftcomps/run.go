package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"tftcomps/internal/config"
	"tftcomps/internal/discord"
	"tftcomps/internal/match"
	"tftcomps/internal/report"
	"tftcomps/internal/results"
	"tftcomps/internal/riot"

	"github.com/rs/zerolog"
)

const notifyTimeout = 15 * time.Second

var errInvalidKey = errors.New("RIOT_API_KEY was rejected by the Riot API")

// run loads configuration and executes the pipeline against the live Riot API
func run(ctx context.Context, opts options, player, platform string) error {
	// An unknown platform is reported before configuration is even read
	if _, err := riot.ParsePlatform(platform); err != nil {
		return inStage("route", err)
	}

	envPath, envLoaded := config.LoadDotEnv()

	cfg, err := config.New()
	if err != nil {
		return inStage("config", err)
	}
	log, err := newLogger(os.Stderr, cfg.LogLevel, opts.verbose)
	if err != nil {
		return inStage("config", err)
	}
	if envLoaded {
		log.Debug().Str("path", envPath).Msg("loaded .env")
	} else {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	return pipeline{cfg: cfg, opts: opts, log: log}.run(ctx, player, platform)
}

// newLogger builds the console logger; verbose forces debug regardless of level
func newLogger(w io.Writer, level string, verbose bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

type pipeline struct {
	cfg  *config.Config
	opts options
	log  zerolog.Logger

	// overrides for tests
	clientOpts    []riot.Option
	validatorOpts []riot.KeyValidatorOption
}

func (p pipeline) run(ctx context.Context, player, platform string) error {
	// Route first: an unknown platform fails before any request
	plat, err := riot.ParsePlatform(platform)
	if err != nil {
		return inStage("route", err)
	}

	if p.opts.validateKey {
		if err := p.checkKey(ctx, plat); err != nil {
			return inStage("validate key", err)
		}
	}

	clientOpts := append([]riot.Option{
		riot.WithTimeout(p.cfg.Riot.Timeout),
		riot.WithRateLimit(p.cfg.Riot.RequestsPerSecond, p.cfg.Riot.RequestsPer2Min),
		riot.WithCacheTTL(p.cfg.Riot.CacheTTL),
		riot.WithMatchCount(p.cfg.Riot.MatchCount),
		riot.WithPolicy(riot.DefaultPolicy()),
		riot.WithLogger(p.log),
	}, p.clientOpts...)
	client, err := riot.NewClient(p.cfg.Riot.APIKey, clientOpts...)
	if err != nil {
		return inStage("config", err)
	}

	latest, err := match.NewFetcher(client, match.WithLogger(p.log)).LatestMatch(ctx, player, string(plat))
	if err != nil {
		return inStage("fetch match", err)
	}

	concurrency := p.cfg.Riot.ResolveConcurrency
	if p.opts.concurrency > 0 {
		concurrency = p.opts.concurrency
	}
	ordered, err := results.NewAggregator(client, results.WithConcurrency(concurrency)).
		Aggregate(ctx, latest.Region, latest.Match)
	if err != nil {
		return inStage("resolve participants", err)
	}
	plan := results.Plan(ordered)

	emitter := report.NewEmitter(
		firstNonEmpty(p.opts.jsonPath, p.cfg.Output.JSONPath),
		firstNonEmpty(p.opts.xlsxPath, p.cfg.Output.XLSXPath),
	)
	if err := emitter.Emit(ordered, plan); err != nil {
		return inStage("write report", err)
	}
	p.log.Info().
		Str("json", emitter.JSONPath).
		Str("xlsx", emitter.XLSXPath).
		Int("participants", ordered.Len()).
		Int("columns", plan.Columns()).
		Msg("report written")

	p.notify(ctx, latest, ordered)
	return nil
}

func (p pipeline) checkKey(ctx context.Context, plat riot.Platform) error {
	opts := append([]riot.KeyValidatorOption{riot.WithValidatorTimeout(p.cfg.Riot.Timeout)}, p.validatorOpts...)
	status, err := riot.NewKeyValidator(plat, opts...).ValidateKey(ctx, p.cfg.Riot.APIKey)
	if riot.IsKeyRejected(err) {
		return fmt.Errorf("%w: %w", errInvalidKey, err)
	}
	if err != nil {
		return err
	}
	p.log.Debug().Str("platform", string(plat)).Str("name", status.Name).Msg("API key valid")
	return nil
}

// notify posts the match summary; the artifacts are already committed so failures only warn
func (p pipeline) notify(ctx context.Context, latest *match.Latest, ordered *results.Ordered) {
	if p.cfg.Discord.WebhookURL == "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	client := discord.NewWebhookClient(p.cfg.Discord.WebhookURL)
	if err := client.SendMatchReport(ctx, latest.Player.DisplayName(), latest.Match.Metadata.MatchID, ordered); err != nil {
		p.log.Warn().Err(err).Msg("discord notification failed")
		return
	}
	p.log.Debug().Msg("discord notification sent")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
