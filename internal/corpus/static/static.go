// Package static embeds the build-time fallback corpus used when neither the
// disk cache nor the network can supply one.
package static

import (
	"time"

	"github.com/uaforge/uaforge/internal/persona"
)

// Weights approximate worldwide browser/platform share at the time this table
// was last refreshed. They only need to be plausible relative to each other;
// the sampler normalizes over the total.
var records = []persona.CorpusRecord{
	{
		Browser: persona.BrowserChrome, Version: "140.0.7339.128",
		OS: "Windows", OSVersion: "10.0", Device: persona.DeviceDesktop,
		Weight: 24, ClientHints: true,
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36",
	},
	{
		Browser: persona.BrowserChrome, Version: "139.0.7258.139",
		OS: "Windows", OSVersion: "10.0", Device: persona.DeviceDesktop,
		Weight: 10, ClientHints: true,
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Safari/537.36",
	},
	{
		Browser: persona.BrowserChrome, Version: "140.0.7339.128",
		OS: "macOS", OSVersion: "10_15_7", Device: persona.DeviceDesktop,
		Weight: 7, ClientHints: true,
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36",
	},
	{
		Browser: persona.BrowserChrome, Version: "140.0.7339.128",
		OS: "Linux", Device: persona.DeviceDesktop,
		Weight: 2.5, ClientHints: true,
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36",
	},
	{
		Browser: persona.BrowserChrome, Version: "140.0.7339.124",
		OS: "Android", OSVersion: "10", Device: persona.DeviceMobile,
		Weight: 28, ClientHints: true,
		UserAgent: "Mozilla/5.0 (Linux; Android 10; K) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Mobile Safari/537.36",
	},
	{
		Browser: persona.BrowserChrome, Version: "140.0.7339.122",
		OS: "iOS", OSVersion: "18_6", Device: persona.DeviceMobile,
		Weight: 3, ClientHints: false,
		UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 18_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) CriOS/140.0.7339.122 Mobile/15E148 Safari/604.1",
	},
	{
		Browser: persona.BrowserEdge, Version: "140.0.3485.54",
		OS: "Windows", OSVersion: "10.0", Device: persona.DeviceDesktop,
		Weight: 5, ClientHints: true,
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36 Edg/140.0.3485.54",
	},
	{
		Browser: persona.BrowserEdge, Version: "140.0.3485.54",
		OS: "macOS", OSVersion: "10_15_7", Device: persona.DeviceDesktop,
		Weight: 0.8, ClientHints: true,
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36 Edg/140.0.3485.54",
	},
	{
		Browser: persona.BrowserFirefox, Version: "142.0",
		OS: "Windows", OSVersion: "10.0", Device: persona.DeviceDesktop,
		Weight: 3,
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:142.0) Gecko/20100101 Firefox/142.0",
	},
	{
		Browser: persona.BrowserFirefox, Version: "142.0",
		OS: "Linux", Device: persona.DeviceDesktop,
		Weight: 0.9,
		UserAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:142.0) Gecko/20100101 Firefox/142.0",
	},
	{
		Browser: persona.BrowserFirefox, Version: "141.0",
		OS: "macOS", OSVersion: "10.15", Device: persona.DeviceDesktop,
		Weight: 0.7,
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:141.0) Gecko/20100101 Firefox/141.0",
	},
	{
		Browser: persona.BrowserSafari, Version: "18.6",
		OS: "macOS", OSVersion: "10_15_7", Device: persona.DeviceDesktop,
		Weight: 4.5,
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.6 Safari/605.1.15",
	},
	{
		Browser: persona.BrowserSafari, Version: "18.6",
		OS: "iOS", OSVersion: "18_6", Device: persona.DeviceMobile,
		Weight: 14,
		UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 18_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.6 Mobile/15E148 Safari/604.1",
	},
	{
		Browser: persona.BrowserSafari, Version: "18.6",
		OS: "iOS", OSVersion: "18_6", Device: persona.DeviceTablet,
		Weight: 2,
		UserAgent: "Mozilla/5.0 (iPad; CPU OS 18_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.6 Mobile/15E148 Safari/604.1",
	},
}

// Dataset returns the embedded fallback corpus tagged static-fallback. Each
// call returns an independent copy so callers can never mutate the table.
func Dataset(now time.Time) persona.CorpusDataset {
	cp := make([]persona.CorpusRecord, len(records))
	copy(cp, records)
	return persona.CorpusDataset{
		Records:   cp,
		Retrieved: now,
		Source:    persona.SourceStaticFallback,
	}
}
