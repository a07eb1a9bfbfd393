// Package headers composes ordered, per-family navigation header sets from
// client profiles, and serves fixed known-crawler signatures.
package headers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/uaforge/uaforge/internal/persona"
)

// Mode selects the request context a header set mimics.
type Mode string

// ModeNavigation is a top-level document navigation, the default and currently
// only supported mode.
const ModeNavigation Mode = "navigation"

// Per-family Accept templates, matching what each engine actually sends on a
// document navigation.
const (
	chromiumAccept = "text/html,application/xhtml+xml,application/xml;q=0.9," +
		"image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7"
	firefoxAccept = "text/html,application/xhtml+xml,application/xml;q=0.9," +
		"image/avif,image/webp,image/png,image/svg+xml,*/*;q=0.8"
	safariAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

	chromiumEncoding = "gzip, deflate, br, zstd"
	firefoxEncoding  = "gzip, deflate, br, zstd"
	safariEncoding   = "gzip, deflate, br"
)

// Composer builds navigation header sets. It holds no state: all randomness
// lives in the profile, so composition is a pure function and repeated calls
// with the same inputs yield identical output.
type Composer struct{}

// NewComposer returns a Composer.
func NewComposer() *Composer {
	return &Composer{}
}

// Compose produces the ordered header set the profiled client would send when
// navigating to target. Without a referrer context the fetch-metadata headers
// take the conservative top-level defaults: Sec-Fetch-Site "none", Mode
// "navigate", Dest "document", and no Referer is synthesized.
func (c *Composer) Compose(profile persona.ClientProfile, target string, mode Mode) (persona.HeaderList, error) {
	if _, err := parseTarget(target); err != nil {
		return nil, err
	}
	if mode != ModeNavigation {
		return nil, fmt.Errorf("%w: unsupported compose mode %q", persona.ErrInvalidInput, mode)
	}

	switch familyOf(profile) {
	case persona.BrowserFirefox:
		return composeFirefox(profile), nil
	case persona.BrowserSafari:
		return composeSafari(profile), nil
	default:
		return composeChromium(profile), nil
	}
}

// familyOf prefers the profile's declared family; a profile built without one
// falls back to sniffing the UA string.
func familyOf(p persona.ClientProfile) persona.BrowserFamily {
	if p.Family != "" {
		return p.Family
	}
	if p.ClientHints {
		return persona.BrowserChrome
	}
	if strings.Contains(p.UserAgent, "Firefox/") {
		return persona.BrowserFirefox
	}
	return persona.BrowserSafari
}

// parseTarget validates that target is an absolute http(s) URL.
func parseTarget(target string) (*url.URL, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%w: parse url %q: %v", persona.ErrInvalidInput, target, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: url %q must use http or https", persona.ErrInvalidInput, target)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: url %q has no host", persona.ErrInvalidInput, target)
	}
	return u, nil
}

func composeChromium(p persona.ClientProfile) persona.HeaderList {
	var h persona.HeaderList
	// The sec-ch block is a client-hints capability, not a family constant: a
	// Chromium build that does not advertise hints sends none of it.
	if p.ClientHints {
		h = persona.HeaderList{
			{Name: "sec-ch-ua", Value: brandList(p.Brands)},
			{Name: "sec-ch-ua-mobile", Value: mobileFlag(p.Mobile)},
			{Name: "sec-ch-ua-platform", Value: quote(p.Platform)},
			{Name: "sec-ch-ua-full-version", Value: quote(p.FullVersion)},
			{Name: "sec-ch-ua-platform-version", Value: quote(p.PlatformVersion)},
			{Name: "sec-ch-viewport-width", Value: quote(strconv.Itoa(p.Viewport.Width))},
			{Name: "sec-ch-viewport-height", Value: quote(strconv.Itoa(p.Viewport.Height))},
		}
	}
	return append(h, persona.HeaderList{
		{Name: "upgrade-insecure-requests", Value: "1"},
		{Name: "user-agent", Value: p.UserAgent},
		{Name: "accept", Value: chromiumAccept},
		{Name: "sec-fetch-site", Value: "none"},
		{Name: "sec-fetch-mode", Value: "navigate"},
		{Name: "sec-fetch-user", Value: "?1"},
		{Name: "sec-fetch-dest", Value: "document"},
		{Name: "accept-encoding", Value: chromiumEncoding},
		{Name: "accept-language", Value: p.AcceptLanguage},
		{Name: "priority", Value: "u=0, i"},
	}...)
}

func composeFirefox(p persona.ClientProfile) persona.HeaderList {
	return persona.HeaderList{
		{Name: "user-agent", Value: p.UserAgent},
		{Name: "accept", Value: firefoxAccept},
		{Name: "accept-language", Value: p.AcceptLanguage},
		{Name: "accept-encoding", Value: firefoxEncoding},
		{Name: "upgrade-insecure-requests", Value: "1"},
		{Name: "sec-fetch-dest", Value: "document"},
		{Name: "sec-fetch-mode", Value: "navigate"},
		{Name: "sec-fetch-site", Value: "none"},
		{Name: "sec-fetch-user", Value: "?1"},
		{Name: "priority", Value: "u=0, i"},
	}
}

func composeSafari(p persona.ClientProfile) persona.HeaderList {
	return persona.HeaderList{
		{Name: "user-agent", Value: p.UserAgent},
		{Name: "accept", Value: safariAccept},
		{Name: "sec-fetch-site", Value: "none"},
		{Name: "sec-fetch-mode", Value: "navigate"},
		{Name: "sec-fetch-dest", Value: "document"},
		{Name: "accept-language", Value: p.AcceptLanguage},
		{Name: "accept-encoding", Value: safariEncoding},
	}
}

func brandList(brands []persona.BrandVersion) string {
	parts := make([]string, len(brands))
	for i, b := range brands {
		parts[i] = fmt.Sprintf(`"%s";v="%s"`, b.Brand, b.Version)
	}
	return strings.Join(parts, ", ")
}

func mobileFlag(mobile bool) string {
	if mobile {
		return "?1"
	}
	return "?0"
}

func quote(s string) string {
	return `"` + s + `"`
}
