// Package airport resolves airport identifiers to friction profiles.
//
// Profiles are built from a static catalog: every airport belongs to a tier whose
// default ranges apply unless the airport carries its own override. Unknown queries
// never fail; they resolve to a GENERIC estimate.
package airport

import (
	"sort"
	"strings"
)

const (
	genericCode  = "GEN"
	genericName  = "Generic Airport"
	unknownCode  = "UNK"
	unknownName  = "Unknown Airport"
	inferredCode = 3
)

// Registry is an immutable lookup over the airport catalog.
// It is safe for concurrent use.
type Registry struct {
	entries []entry
	byCode  map[string]entry
}

// NewRegistry builds a registry over the built-in catalog.
func NewRegistry() *Registry {
	byCode := make(map[string]entry, len(catalog))
	for _, e := range catalog {
		byCode[e.code] = e
	}
	return &Registry{
		entries: catalog,
		byCode:  byCode,
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Resolve resolves a query using the default registry.
func Resolve(query string) (Profile, bool) {
	return defaultRegistry.Resolve(query)
}

// Resolve maps a code, sentinel or free-text query to a profile. The boolean reports
// whether the profile is an estimate rather than a known airport.
func (r *Registry) Resolve(query string) (Profile, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return r.Generic(), true
	}

	for _, s := range sentinels {
		if strings.EqualFold(q, s.code) {
			return buildProfile(s.short, s.name, s.tier), true
		}
	}

	if p, ok := r.Find(q); ok {
		return p, false
	}

	return r.Infer(q), true
}

// Find looks up a catalog airport by exact code, then by partial name match.
func (r *Registry) Find(query string) (Profile, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(query))
	if normalized == "" {
		return Profile{}, false
	}

	if e, ok := r.byCode[normalized]; ok {
		return e.profile(), true
	}

	for _, e := range r.entries {
		if strings.Contains(strings.ToUpper(e.name), normalized) || strings.Contains(normalized, e.code) {
			return e.profile(), true
		}
	}

	return Profile{}, false
}

// Infer synthesizes a GENERIC profile for an airport that is not in the catalog.
func (r *Registry) Infer(query string) Profile {
	q := strings.TrimSpace(query)

	code := []rune(strings.ToUpper(q))
	if len(code) > inferredCode {
		code = code[:inferredCode]
	}

	p := buildProfile(string(code), q, TierGeneric)
	if p.Code == "" {
		p.Code = unknownCode
	}
	if p.Name == "" {
		p.Name = unknownName
	}
	return p
}

// Generic returns the profile used when no airport was given.
func (r *Registry) Generic() Profile {
	return buildProfile(genericCode, genericName, TierGeneric)
}

// All returns every catalog airport sorted by code.
func (r *Registry) All() []Profile {
	profiles := make([]Profile, 0, len(r.entries))
	for _, e := range r.entries {
		profiles = append(profiles, e.profile())
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Code < profiles[j].Code
	})
	return profiles
}

// Options returns picker entries: catalog airports sorted by code, then the "other" choices.
func (r *Registry) Options() []Option {
	all := r.All()
	opts := make([]Option, 0, len(all)+len(sentinels))
	for _, p := range all {
		opts = append(opts, Option{Code: p.Code, Label: p.Code + " - " + p.Name, Tier: p.Tier})
	}
	return append(opts, r.Sentinels()...)
}

// Sentinels returns the "other airport" choices.
func (r *Registry) Sentinels() []Option {
	opts := make([]Option, 0, len(sentinels))
	for _, s := range sentinels {
		opts = append(opts, Option{Code: s.code, Label: s.label, Tier: s.tier})
	}
	return opts
}

// Len returns the number of catalog airports.
func (r *Registry) Len() int {
	return len(r.entries)
}

func (e entry) profile() Profile {
	p := buildProfile(e.code, e.name, e.tier)
	if o, ok := overrides[e.code]; ok {
		p.Friction = o.apply(p.Friction)
		p.PainPoint = o.painPoint
	}
	return p
}

func buildProfile(code, name string, tier Tier) Profile {
	return Profile{
		Code:     code,
		Name:     name,
		Tier:     tier,
		Friction: TierDefaults(tier),
	}
}
