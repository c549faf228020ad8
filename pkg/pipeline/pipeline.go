// Package pipeline composes mod discovery, profiles, caching and the resolver
// into a single call shared by the CLI and the HTTP server.
//
// # Stages
//
//  1. Load: read mod manifests from a directory, or take a prepared set
//  2. Profile: load the previous order and disabled list
//  3. Resolve: consult the cache, fall back to the resolver
//  4. Write: optionally persist the new order to the profile
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, profile.NewFileStore(dir), logger)
//	result, err := runner.Resolve(ctx, pipeline.Options{
//	    ModsDir: "~/.game/mods",
//	    Profile: "default",
//	    Write:   true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Order)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modorder/pkg/errors"
	"github.com/matzehuels/modorder/pkg/mods"
	"github.com/matzehuels/modorder/pkg/profile"
	"github.com/matzehuels/modorder/pkg/resolve"
)

// Options configures a single resolution.
type Options struct {
	// ModsDir is scanned for manifests when Mods is nil.
	ModsDir string `json:"mods_dir,omitempty"`
	// Mods is a prepared mod set. It takes precedence over ModsDir.
	Mods mods.Set `json:"-"`

	// Profile names the stored load order. Defaults to profile.DefaultName.
	Profile string `json:"profile,omitempty"`
	// Inline supplies the previous order and disabled list directly instead
	// of loading them from the profile store. It cannot be combined with Write.
	Inline *profile.Profile `json:"-"`

	// Refresh skips the cache lookup. The fresh result is still cached.
	Refresh bool `json:"refresh,omitempty"`
	// Write saves the resolved order back to the profile.
	Write bool `json:"write,omitempty"`

	// Logger overrides the runner's logger for this call.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Mods == nil && o.ModsDir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "either a mods directory or a mod set is required")
	}
	if o.Inline != nil {
		if o.Write {
			return errors.New(errors.ErrCodeInvalidInput, "an inline profile cannot be written")
		}
		return o.Inline.Validate()
	}
	if o.Profile == "" {
		o.Profile = profile.DefaultName
	}
	return errors.ValidateProfileName(o.Profile)
}

// Result contains the outcome of a pipeline run.
type Result struct {
	// Order is the resolved load order.
	Order []mods.ID `json:"order"`
	// Warnings are the resolver's diagnostics, cycle warnings first.
	Warnings []resolve.Warning `json:"warnings"`

	// NewMods are ids in Order that were not in the previous order.
	NewMods []mods.ID `json:"new_mods"`
	// Removed are ids of the previous order that are no longer installed.
	Removed []mods.ID `json:"removed"`
	// Disabled is the profile's disabled list.
	Disabled []mods.ID `json:"disabled"`

	// Mods is the installed set the order was resolved against.
	Mods mods.Set `json:"-"`

	// Cached reports whether the order came from the cache.
	Cached bool `json:"cached"`
	// Written reports whether the profile was updated.
	Written bool `json:"written"`
	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration"`
}

// HasWarnings reports whether the resolver produced any warnings.
func (r *Result) HasWarnings() bool { return len(r.Warnings) > 0 }

// Graph returns the constraint graph of the enabled mods, for rendering.
func (r *Result) Graph() *resolve.Graph {
	return resolve.New(r.Mods).Graph(r.Disabled)
}
