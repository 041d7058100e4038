package site

import (
	"fmt"
	"strings"

	"github.com/kevinreber/sitecfg/internal/foundation"
)

// Severity is how the external builder reacts to a detected content issue.
type Severity string

const (
	SeverityIgnore Severity = "ignore"
	SeverityLog    Severity = "log"
	SeverityWarn   Severity = "warn"
	SeverityThrow  Severity = "throw"
)

// Severities lists the accepted policy values from least to most strict.
var Severities = []Severity{SeverityIgnore, SeverityLog, SeverityWarn, SeverityThrow}

var severityNormalizer = foundation.NewNormalizer(map[string]Severity{
	"ignore": SeverityIgnore,
	"log":    SeverityLog,
	"warn":   SeverityWarn,
	"throw":  SeverityThrow,
}, SeverityWarn)

// ParseSeverity converts user input to a Severity.
func ParseSeverity(raw string) (Severity, error) {
	return severityNormalizer.NormalizeWithError(raw)
}

// Halts reports whether the policy stops the build.
func (s Severity) Halts() bool { return s == SeverityThrow }

// Position places a navbar item.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

var positionNormalizer = foundation.NewNormalizer(map[string]Position{
	"left":  PositionLeft,
	"right": PositionRight,
}, PositionLeft)

// ParsePosition converts user input to a Position.
func ParsePosition(raw string) (Position, error) {
	return positionNormalizer.NormalizeWithError(raw)
}

// FooterStyle selects the footer color scheme.
type FooterStyle string

const (
	FooterDark  FooterStyle = "dark"
	FooterLight FooterStyle = "light"
)

var footerStyleNormalizer = foundation.NewNormalizer(map[string]FooterStyle{
	"dark":  FooterDark,
	"light": FooterLight,
}, FooterLight)

// ParseFooterStyle converts user input to a FooterStyle.
func ParseFooterStyle(raw string) (FooterStyle, error) {
	return footerStyleNormalizer.NormalizeWithError(raw)
}

// FeedType is a blog feed format.
type FeedType string

const (
	FeedRSS  FeedType = "rss"
	FeedAtom FeedType = "atom"
	FeedJSON FeedType = "json"
)

var feedTypeNormalizer = foundation.NewNormalizer(map[string]FeedType{
	"rss":  FeedRSS,
	"atom": FeedAtom,
	"json": FeedJSON,
}, FeedRSS)

// ParseFeedType converts user input to a FeedType.
func ParseFeedType(raw string) (FeedType, error) {
	return feedTypeNormalizer.NormalizeWithError(raw)
}

// PrismTheme names a bundled syntax highlighting theme.
type PrismTheme string

// Themes bundled with prism-react-renderer.
const (
	PrismGithub          PrismTheme = "github"
	PrismDracula         PrismTheme = "dracula"
	PrismDuotoneDark     PrismTheme = "duotoneDark"
	PrismDuotoneLight    PrismTheme = "duotoneLight"
	PrismNightOwl        PrismTheme = "nightOwl"
	PrismNightOwlLight   PrismTheme = "nightOwlLight"
	PrismOceanicNext     PrismTheme = "oceanicNext"
	PrismOkaidia         PrismTheme = "okaidia"
	PrismOneDark         PrismTheme = "oneDark"
	PrismOneLight        PrismTheme = "oneLight"
	PrismPalenight       PrismTheme = "palenight"
	PrismShadesOfPurple  PrismTheme = "shadesOfPurple"
	PrismSynthwave84     PrismTheme = "synthwave84"
	PrismUltramin        PrismTheme = "ultramin"
	PrismVSDark          PrismTheme = "vsDark"
	PrismVSLight         PrismTheme = "vsLight"
	PrismGruvboxDark     PrismTheme = "gruvboxMaterialDark"
	PrismGruvboxLight    PrismTheme = "gruvboxMaterialLight"
	PrismJettwaveDark    PrismTheme = "jettwaveDark"
	PrismJettwaveLight   PrismTheme = "jettwaveLight"
	PrismCSSVariables    PrismTheme = "cssVariables"
)

// PrismThemes lists every known theme name.
var PrismThemes = []PrismTheme{
	PrismGithub, PrismDracula, PrismDuotoneDark, PrismDuotoneLight,
	PrismNightOwl, PrismNightOwlLight, PrismOceanicNext, PrismOkaidia,
	PrismOneDark, PrismOneLight, PrismPalenight, PrismShadesOfPurple,
	PrismSynthwave84, PrismUltramin, PrismVSDark, PrismVSLight,
	PrismGruvboxDark, PrismGruvboxLight, PrismJettwaveDark, PrismJettwaveLight,
	PrismCSSVariables,
}

// ParsePrismTheme matches a theme name case-insensitively.
func ParsePrismTheme(raw string) (PrismTheme, error) {
	want := strings.TrimSpace(raw)
	for _, t := range PrismThemes {
		if strings.EqualFold(string(t), want) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown prism theme %q", raw)
}
