package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modorder/pkg/cache"
	"github.com/matzehuels/modorder/pkg/errors"
	"github.com/matzehuels/modorder/pkg/mods"
	"github.com/matzehuels/modorder/pkg/observability"
	"github.com/matzehuels/modorder/pkg/profile"
	"github.com/matzehuels/modorder/pkg/resolve"
)

const cacheKeyType = "resolve"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner holds no per-call state, so multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Profiles profile.Store
	Logger   *log.Logger

	// TTL applies to cached results. Zero means cache.DefaultTTL, so the
	// runner never stores a result without expiry.
	TTL time.Duration
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If profiles is nil, every run starts from an empty profile and Write fails.
func NewRunner(c cache.Cache, keyer cache.Keyer, profiles profile.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Profiles: profiles,
		Logger:   logger,
	}
}

// Resolve loads mods and the profile, resolves the load order and optionally
// writes it back.
func (r *Runner) Resolve(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	set := opts.Mods
	if set == nil {
		var err error
		if set, err = mods.LoadDir(opts.ModsDir); err != nil {
			return nil, fmt.Errorf("load mods: %w", err)
		}
		logger.Debug("loaded mods", "dir", opts.ModsDir, "count", len(set))
	}

	prof := opts.Inline
	if prof == nil {
		var err error
		if prof, err = r.loadProfile(ctx, opts.Profile); err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
	}

	observability.Resolve().OnResolveStart(ctx, len(set))

	res, cached := r.resolve(ctx, logger, set, prof, opts.Refresh)

	result := &Result{
		Order:    res.Order,
		Warnings: res.Warnings,
		NewMods:  difference(res.Order, prof.Order),
		Removed:  removed(prof.Order, set),
		Disabled: prof.Disabled,
		Mods:     set,
		Cached:   cached,
	}

	if opts.Write {
		if err := r.write(ctx, opts.Profile, prof, res.Order); err != nil {
			return nil, fmt.Errorf("save profile: %w", err)
		}
		result.Written = true
		logger.Debug("saved profile", "profile", opts.Profile)
	}

	result.Duration = time.Since(start)
	logger.Info("resolved load order",
		"mods", len(set),
		"new", len(result.NewMods),
		"removed", len(result.Removed),
		"warnings", len(result.Warnings),
		"cached", cached,
		"duration", result.Duration)
	observability.Resolve().OnResolveComplete(ctx, len(set), len(result.NewMods), len(result.Warnings), result.Duration)

	return result, nil
}

// resolve returns the cached result for the inputs or computes and caches a
// fresh one. Cache failures are logged and treated as misses.
func (r *Runner) resolve(ctx context.Context, logger *log.Logger, set mods.Set, prof *profile.Profile, refresh bool) (resolve.Result, bool) {
	key := r.Keyer.ResolutionKey(set, prof.Order, prof.Disabled)

	if !refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			logger.Warn("cache read failed", "err", err)
		case hit:
			var res resolve.Result
			if err := json.Unmarshal(data, &res); err == nil {
				observability.Cache().OnCacheHit(ctx, cacheKeyType)
				logger.Debug("cache hit", "key", key)
				return res, true
			}
			logger.Debug("discarding unreadable cache entry", "key", key)
		}
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	}

	res := resolve.New(set).ResolveOrder(prof.Order, prof.Disabled)

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
		}
	}
	return res, false
}

func (r *Runner) loadProfile(ctx context.Context, name string) (*profile.Profile, error) {
	if r.Profiles == nil {
		return &profile.Profile{Order: []mods.ID{}, Disabled: []mods.ID{}}, nil
	}
	return profile.LoadOrEmpty(ctx, r.Profiles, name)
}

func (r *Runner) write(ctx context.Context, name string, prev *profile.Profile, order []mods.ID) error {
	if r.Profiles == nil {
		return errors.New(errors.ErrCodeUnsupported, "no profile store configured")
	}
	next := prev.Clone()
	next.Order = slices.Clone(order)
	return r.Profiles.Save(ctx, name, next)
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var err error
	if r.Cache != nil {
		err = r.Cache.Close()
	}
	if r.Profiles != nil {
		if perr := r.Profiles.Close(); err == nil {
			err = perr
		}
	}
	return err
}

func (r *Runner) ttl() time.Duration {
	if r.TTL <= 0 {
		return cache.DefaultTTL
	}
	return r.TTL
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// difference returns the ids of a that are not in b, keeping a's order.
func difference(a, b []mods.ID) []mods.ID {
	seen := make(map[mods.ID]bool, len(b))
	for _, id := range b {
		seen[id] = true
	}
	out := []mods.ID{}
	for _, id := range a {
		if !seen[id] {
			out = append(out, id)
		}
	}
	return out
}

// removed returns the ids of prev that are not installed, without duplicates.
func removed(prev []mods.ID, set mods.Set) []mods.ID {
	out := []mods.ID{}
	for _, id := range prev {
		if !set.Has(id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
