package sampler

import (
	"math/rand/v2"
	"strings"

	"github.com/uaforge/uaforge/internal/persona"
)

// Candidate pools for the bounded sub-draws. Repeated entries raise selection
// probability without a second weight table.
var (
	acceptLanguages = []string{
		"en-US,en;q=0.9",
		"en-US,en;q=0.9",
		"en-US,en;q=0.9",
		"en-US,en;q=0.8",
		"en-GB,en-US;q=0.9,en;q=0.8",
		"en-US,en;q=0.9,es;q=0.8",
		"de-DE,de;q=0.9,en-US;q=0.8,en;q=0.7",
		"fr-FR,fr;q=0.9,en-US;q=0.8,en;q=0.7",
	}

	// Desktop screen resolutions by worldwide prevalence; the viewport is the
	// screen minus window chrome (toolbars, taskbar, scrollbar, side panels).
	desktopResolutions = []persona.Viewport{
		{Width: 1920, Height: 1080},
		{Width: 1920, Height: 1080},
		{Width: 1366, Height: 768},
		{Width: 1536, Height: 864},
		{Width: 1280, Height: 720},
		{Width: 1440, Height: 900},
		{Width: 2560, Height: 1440},
	}
	viewportHeightSubtractions = []int{90, 128, 150, 188}
	viewportWidthSubtractions  = []int{2, 4, 64, 128}

	mobileViewports = []persona.Viewport{
		{Width: 390, Height: 844},
		{Width: 393, Height: 852},
		{Width: 412, Height: 915},
		{Width: 430, Height: 932},
	}
	tabletViewports = []persona.Viewport{
		{Width: 768, Height: 1024},
		{Width: 820, Height: 1180},
		{Width: 834, Height: 1194},
	}

	// 99 appears most often in the wild.
	greaseVersions = []string{"8", "24", "99", "99", "99", "99"}
)

// greaseChars are the characters permitted in a GREASE brand, with repeats to
// skew the distribution the way real Chromium builds do.
// https://wicg.github.io/ua-client-hints/#grease
const greaseChars = ` ;;:/??==()__-,."`

var platformVersions = map[string]string{
	"Windows": "19.0.0",
	"macOS":   "15.6.1",
	"Linux":   "6.8.0",
	"Android": "14.0.0",
	"iOS":     "18.6.0",
}

// expand derives a full client profile from one corpus record plus bounded
// draws from the candidate pools above. Everything else is deterministic in
// the record, so a fixed record and a fixed rng yield a fixed profile.
func expand(record persona.CorpusRecord, rng *rand.Rand) persona.ClientProfile {
	p := persona.ClientProfile{
		Family:         record.Browser,
		UserAgent:      record.UserAgent,
		MajorVersion:   majorOf(record.Version),
		FullVersion:    record.Version,
		AcceptLanguage: acceptLanguages[rng.IntN(len(acceptLanguages))],
		Platform:       platformToken(record),
		Mobile:         record.Device == persona.DeviceMobile,
		Viewport:       drawViewport(record.Device, rng),
		ClientHints:    record.ClientHints,
	}
	p.PlatformVersion = platformVersions[p.Platform]

	if record.ClientHints {
		greaseBrand, greaseVersion := drawGreaseBrand(rng)
		p.Brands = []persona.BrandVersion{
			{Brand: greaseBrand, Version: greaseVersion},
			{Brand: "Chromium", Version: p.MajorVersion},
			{Brand: brandName(record.Browser), Version: p.MajorVersion},
		}
	}
	return p
}

// platformToken maps the record OS to the sec-ch-ua-platform vocabulary. A
// mobile or tablet record can never produce a desktop token because the token
// follows the record's OS, not a separate draw.
func platformToken(record persona.CorpusRecord) string {
	switch record.OS {
	case "Windows", "macOS", "Linux", "Android", "iOS":
		return record.OS
	default:
		return "Unknown"
	}
}

func brandName(family persona.BrowserFamily) string {
	if family == persona.BrowserEdge {
		return "Microsoft Edge"
	}
	return "Google Chrome"
}

func majorOf(version string) string {
	if i := strings.IndexByte(version, '.'); i > 0 {
		return version[:i]
	}
	return version
}

func drawViewport(device persona.DeviceClass, rng *rand.Rand) persona.Viewport {
	switch device {
	case persona.DeviceMobile:
		return mobileViewports[rng.IntN(len(mobileViewports))]
	case persona.DeviceTablet:
		return tabletViewports[rng.IntN(len(tabletViewports))]
	default:
		res := desktopResolutions[rng.IntN(len(desktopResolutions))]
		return persona.Viewport{
			Width:  res.Width - viewportWidthSubtractions[rng.IntN(len(viewportWidthSubtractions))],
			Height: res.Height - viewportHeightSubtractions[rng.IntN(len(viewportHeightSubtractions))],
		}
	}
}

// drawGreaseBrand produces a randomized "Not A Brand" entry for the sec-ch-ua
// list, replacing the spaces with GREASE punctuation.
func drawGreaseBrand(rng *rand.Rand) (brand, version string) {
	version = greaseVersions[rng.IntN(len(greaseVersions))]

	const base = "Not A Brand"
	var sb strings.Builder
	sb.Grow(len(base))
	for _, ch := range base {
		if ch == ' ' {
			sb.WriteByte(greaseChars[rng.IntN(len(greaseChars))])
		} else {
			sb.WriteRune(ch)
		}
	}
	return sb.String(), version
}
