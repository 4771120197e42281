package syntax

import (
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Default line cache lifetimes.
const (
	DefaultCacheExpiration = 10 * time.Minute
	DefaultCacheCleanup    = 30 * time.Minute
)

// Provider classifies lines for one editor and caches painted results by
// language and line text, so unchanged lines are not scanned again.
type Provider struct {
	registry *Registry

	mu         sync.RWMutex
	language   string
	generation uint64

	cache *gocache.Cache
}

// NewProvider creates a provider over registry for language.
// Non-positive durations select the defaults.
func NewProvider(registry *Registry, language string, expiration, cleanup time.Duration) *Provider {
	if expiration <= 0 {
		expiration = DefaultCacheExpiration
	}
	if cleanup <= 0 {
		cleanup = DefaultCacheCleanup
	}
	return &Provider{
		registry: registry,
		language: language,
		cache:    gocache.New(expiration, cleanup),
	}
}

// Language returns the active language.
func (p *Provider) Language() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.language
}

// SetLanguage switches the active language. Cached lines of other languages
// stay valid under their own keys.
func (p *Provider) SetLanguage(language string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.language = language
}

// Registry returns the registry the provider classifies with.
func (p *Provider) Registry() *Registry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registry
}

// SetRegistry swaps in a rebuilt registry, as after rule files change on
// disk. Every cached line is dropped, and lines painted concurrently with
// the old registry are keyed under its generation and never read again.
func (p *Provider) SetRegistry(registry *Registry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.registry = registry
	p.generation++
	p.cache.Flush()
}

func (p *Provider) snapshot() (*Registry, string, uint64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registry, p.language, p.generation
}

func cacheKey(generation uint64, language, line string) string {
	return strconv.FormatUint(generation, 10) + "\x00" + language + "\x00" + line
}

// Classify returns the raw spans of line in rule order. Not cached.
func (p *Provider) Classify(line string) []Span {
	reg, lang, _ := p.snapshot()
	return reg.Classify(line, lang)
}

// Line returns the painted spans of line.
func (p *Provider) Line(line string) []Span {
	if line == "" {
		return nil
	}
	reg, lang, gen := p.snapshot()
	key := cacheKey(gen, lang, line)

	if v, ok := p.cache.Get(key); ok {
		if spans, ok := v.([]Span); ok {
			return spans
		}
	}

	spans := Paint(reg.Classify(line, lang), len(line))
	p.cache.SetDefault(key, spans)
	return spans
}

// Lines paints every line in order.
func (p *Provider) Lines(lines []string) [][]Span {
	out := make([][]Span, len(lines))
	for i, l := range lines {
		out[i] = p.Line(l)
	}
	return out
}

// CachedLines returns the number of cached entries.
func (p *Provider) CachedLines() int {
	return p.cache.ItemCount()
}

// Flush drops every cached line.
func (p *Provider) Flush() {
	p.cache.Flush()
}
