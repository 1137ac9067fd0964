package siteconfig

import (
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const resolveCacheSize = 512

// Registry resolves a product URL to the site configuration governing its
// extraction. Resolution is first-match case-insensitive substring containment
// over URLPatterns, in registration order; URLs matching nothing get the
// generic default. The registry is built once per run and read-only afterwards.
type Registry struct {
	configs []*SiteConfig
	byName  map[string]int
	def     *SiteConfig
	cache   *lru.Cache[string, *SiteConfig]
	logger  *slog.Logger
}

// NewRegistry builds a registry over the given configs, in order. A nil or
// empty def falls back to DefaultConfig.
func NewRegistry(configs []*SiteConfig, def *SiteConfig) *Registry {
	if def == nil {
		def = DefaultConfig()
	}

	// Repeated URLs from the same shop resolve identically, so memoize.
	cache, _ := lru.New[string, *SiteConfig](resolveCacheSize)

	r := &Registry{
		byName: make(map[string]int),
		def:    def,
		cache:  cache,
		logger: slog.Default().With("component", "siteconfig"),
	}
	for _, cfg := range configs {
		r.register(cfg)
	}
	return r
}

func (r *Registry) register(cfg *SiteConfig) {
	if idx, ok := r.byName[cfg.Name]; ok {
		r.configs[idx] = cfg
		return
	}
	r.byName[cfg.Name] = len(r.configs)
	r.configs = append(r.configs, cfg)
}

// Merge overlays other configs onto the registry: same name replaces in place,
// new names append. Later-loaded sources win, matching the sheet-over-static
// precedence of the configuration feed.
func (r *Registry) Merge(configs []*SiteConfig, def *SiteConfig) {
	for _, cfg := range configs {
		r.register(cfg)
	}
	if def != nil {
		r.def = def
	}
	r.cache.Purge()
}

// Resolve returns the first config whose URL pattern is contained in url,
// or the default config when nothing matches.
func (r *Registry) Resolve(url string) *SiteConfig {
	if cfg, ok := r.cache.Get(url); ok {
		return cfg
	}

	urlLower := strings.ToLower(url)
	resolved := r.def
	for _, cfg := range r.configs {
		if matches(cfg, urlLower) {
			resolved = cfg
			break
		}
	}

	r.cache.Add(url, resolved)
	r.logger.Debug("resolved site config", "url", url, "site", resolved.Name)
	return resolved
}

// Len reports the number of registered site families, excluding the default.
func (r *Registry) Len() int {
	return len(r.configs)
}

func matches(cfg *SiteConfig, urlLower string) bool {
	for _, pattern := range cfg.URLPatterns {
		if pattern == "" {
			continue
		}
		if strings.Contains(urlLower, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}
