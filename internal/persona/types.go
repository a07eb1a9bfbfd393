// Package persona defines core types shared across the identity engine.
package persona

import (
	"strings"
	"time"
)

// BrowserFamily identifies the browser a corpus record mimics.
type BrowserFamily string

// Browser families present in the corpus.
const (
	BrowserChrome  BrowserFamily = "chrome"
	BrowserEdge    BrowserFamily = "edge"
	BrowserFirefox BrowserFamily = "firefox"
	BrowserSafari  BrowserFamily = "safari"
)

// DeviceClass groups records by hardware form factor.
type DeviceClass string

// Device classes present in the corpus.
const (
	DeviceDesktop DeviceClass = "desktop"
	DeviceMobile  DeviceClass = "mobile"
	DeviceTablet  DeviceClass = "tablet"
)

// DatasetSource records which step of the degradation chain produced a dataset.
type DatasetSource string

// Dataset sources, in the order the resolver attempts them.
const (
	SourceDiskCache      DatasetSource = "disk-cache"
	SourceNetwork        DatasetSource = "network"
	SourceStaticFallback DatasetSource = "static-fallback"
)

// CorpusRecord is one weighted browser+OS+device combination. Unknown JSON
// fields are tolerated on decode so cached documents survive schema growth.
type CorpusRecord struct {
	Browser     BrowserFamily `json:"browser"`
	Version     string        `json:"version"`
	OS          string        `json:"os"`
	OSVersion   string        `json:"os_version,omitempty"`
	Device      DeviceClass   `json:"device"`
	Weight      float64       `json:"weight"`
	UserAgent   string        `json:"user_agent"`
	ClientHints bool          `json:"client_hints,omitempty"`
}

// CorpusDataset is an immutable, ordered catalog of corpus records plus
// provenance. A new resolution produces a new dataset, never mutates one.
type CorpusDataset struct {
	Records   []CorpusRecord
	Retrieved time.Time
	Source    DatasetSource
}

// TotalWeight sums the record weights; a dataset with total weight 0 is
// unusable for sampling.
func (d CorpusDataset) TotalWeight() float64 {
	var total float64
	for _, r := range d.Records {
		if r.Weight > 0 {
			total += r.Weight
		}
	}
	return total
}

// BrandVersion is one entry of the structured sec-ch-ua brand list.
type BrandVersion struct {
	Brand   string
	Version string
}

// Viewport holds synthesized inner window dimensions.
type Viewport struct {
	Width  int
	Height int
}

// ClientProfile is one sampled identity. Every field derives deterministically
// from the corpus record it was drawn from plus the bounded sub-draws that
// selected locale and viewport.
type ClientProfile struct {
	Family          BrowserFamily
	UserAgent       string
	Brands          []BrandVersion
	MajorVersion    string
	FullVersion     string
	AcceptLanguage  string
	Platform        string
	PlatformVersion string
	Mobile          bool
	Viewport        Viewport
	ClientHints     bool
}

// CrawlerKind names a well-known crawler signature.
type CrawlerKind string

// Crawler kinds known to the registry.
const (
	CrawlerGoogle CrawlerKind = "google"
	CrawlerBing   CrawlerKind = "bing"
	CrawlerYandex CrawlerKind = "yandex"
)

// CrawlerProfile is a fixed, non-randomized crawler signature. Constructed
// once, immutable, shared.
type CrawlerProfile struct {
	Kind      CrawlerKind
	UserAgent string
	Headers   HeaderList
}

// Header is a single name/value pair.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HeaderList is an ordered header mapping, the uniform result type for both
// sampled and crawler header sets.
type HeaderList []Header

// Get returns the value for name, matching case-insensitively.
func (h HeaderList) Get(name string) (string, bool) {
	for _, hdr := range h {
		if strings.EqualFold(hdr.Name, name) {
			return hdr.Value, true
		}
	}
	return "", false
}

// Map flattens the list into an unordered map.
func (h HeaderList) Map() map[string]string {
	m := make(map[string]string, len(h))
	for _, hdr := range h {
		m[hdr.Name] = hdr.Value
	}
	return m
}

// Names returns header names in emission order.
func (h HeaderList) Names() []string {
	names := make([]string, len(h))
	for i, hdr := range h {
		names[i] = hdr.Name
	}
	return names
}

// Clone returns an independent copy safe for caller mutation.
func (h HeaderList) Clone() HeaderList {
	if len(h) == 0 {
		return nil
	}
	cp := make(HeaderList, len(h))
	copy(cp, h)
	return cp
}
