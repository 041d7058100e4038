package render

import (
	"bytes"
	"reflect"
	"testing"
	"unicode"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/kevinreber/sitecfg/internal/site"
)

// TestRoundTripProperties checks that free text fields survive encode/decode,
// including values YAML would otherwise read as other scalar types.
func TestRoundTripProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	text := gen.OneGenOf(
		gen.AlphaString(),
		gen.UnicodeString(unicode.Greek),
		gen.OneConstOf("", "yes", "null", "1.0", "a: b", "- item", "#comment", `"quoted"`, "`tick`", "${y}", "© 2026"),
	)

	for _, f := range []Format{FormatJSON, FormatYAML} {
		f := f
		properties.Property("round trip is lossless for "+string(f), prop.ForAll(
			func(title, label, copyright string, xslt bool) bool {
				cfg := site.Default(fixedNow)
				cfg.Title = title
				cfg.ThemeConfig.Navbar.Items[0].Label = label
				cfg.ThemeConfig.Footer.Copyright = copyright
				cfg.Presets[0].Options.Blog.FeedOptions.XSLT = xslt

				r, err := ForFormat(f)
				if err != nil {
					return false
				}
				data, err := Bytes(r, cfg)
				if err != nil {
					return false
				}
				parsed, err := Parse(f, bytes.NewReader(data))
				if err != nil {
					return false
				}
				return reflect.DeepEqual(cfg, parsed)
			},
			text, text, text, gen.Bool(),
		))
	}

	properties.TestingRun(t)
}
