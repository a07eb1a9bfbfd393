package headers

import (
	"fmt"
	"sort"

	"github.com/uaforge/uaforge/internal/persona"
)

// crawlerChromeVersion is the Chromium version baked into the Googlebot and
// Bingbot user agents. Both crawlers track recent stable Chrome; the value is
// pinned at build so the signatures are identical across calls and runs.
const crawlerChromeVersion = "139.0.7258.66"

const crawlerAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// Registry is a pure lookup table of well-known crawler signatures. No
// caching, no network, no randomness.
type Registry struct {
	profiles map[persona.CrawlerKind]persona.CrawlerProfile
}

// NewRegistry builds the fixed crawler table.
func NewRegistry() *Registry {
	googleUA := fmt.Sprintf(
		"Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko; compatible; Googlebot/2.1; +http://www.google.com/bot.html) Chrome/%s Safari/537.36",
		crawlerChromeVersion,
	)
	bingUA := fmt.Sprintf(
		"Mozilla/5.0 AppleWebKit/537.36 (KHTML, like Gecko; compatible; bingbot/2.0; +http://www.bing.com/bingbot.htm) Chrome/%s Safari/537.36",
		crawlerChromeVersion,
	)
	yandexUA := "Mozilla/5.0 (compatible; YandexBot/3.0; +http://yandex.com/bots)"

	return &Registry{
		profiles: map[persona.CrawlerKind]persona.CrawlerProfile{
			persona.CrawlerGoogle: {
				Kind:      persona.CrawlerGoogle,
				UserAgent: googleUA,
				Headers: persona.HeaderList{
					{Name: "user-agent", Value: googleUA},
					{Name: "accept", Value: crawlerAccept},
					{Name: "accept-encoding", Value: "gzip, deflate, br"},
					{Name: "accept-language", Value: "en-US,en;q=0.9"},
					{Name: "from", Value: "googlebot(at)google.com"},
				},
			},
			persona.CrawlerBing: {
				Kind:      persona.CrawlerBing,
				UserAgent: bingUA,
				Headers: persona.HeaderList{
					{Name: "user-agent", Value: bingUA},
					{Name: "accept", Value: crawlerAccept},
					{Name: "accept-encoding", Value: "gzip, deflate, br"},
					{Name: "accept-language", Value: "en-US,en;q=0.9"},
				},
			},
			persona.CrawlerYandex: {
				Kind:      persona.CrawlerYandex,
				UserAgent: yandexUA,
				Headers: persona.HeaderList{
					{Name: "user-agent", Value: yandexUA},
					{Name: "accept", Value: crawlerAccept},
					{Name: "accept-encoding", Value: "gzip, deflate, br"},
					{Name: "accept-language", Value: "en-US,en;q=0.9"},
				},
			},
		},
	}
}

// Get returns the fixed profile for kind.
func (r *Registry) Get(kind persona.CrawlerKind) (persona.CrawlerProfile, error) {
	p, ok := r.profiles[kind]
	if !ok {
		return persona.CrawlerProfile{}, fmt.Errorf("%w: %q", persona.ErrUnknownCrawler, kind)
	}
	// Clone so callers can never edit the shared table.
	p.Headers = p.Headers.Clone()
	return p, nil
}

// Kinds lists the registered crawler kinds in a stable order.
func (r *Registry) Kinds() []persona.CrawlerKind {
	kinds := make([]persona.CrawlerKind, 0, len(r.profiles))
	for k := range r.profiles {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ParseCrawlerKind maps a user-supplied string onto a known crawler kind.
func ParseCrawlerKind(s string) (persona.CrawlerKind, error) {
	switch persona.CrawlerKind(s) {
	case persona.CrawlerGoogle, persona.CrawlerBing, persona.CrawlerYandex:
		return persona.CrawlerKind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", persona.ErrUnknownCrawler, s)
	}
}
