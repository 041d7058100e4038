package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kevinreber/sitecfg/internal/foundation/errors"
	"github.com/kevinreber/sitecfg/internal/site"
)

var fixedNow = time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			orig := site.Default(fixedNow)
			r, err := ForFormat(f)
			require.NoError(t, err)

			data, err := Bytes(r, orig)
			require.NoError(t, err)

			parsed, err := Parse(f, bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, orig, parsed)

			again, err := Bytes(r, parsed)
			require.NoError(t, err)
			assert.Equal(t, string(data), string(again))
		})
	}
}

func TestJSON_UsesBuilderKeys(t *testing.T) {
	data, err := Bytes(JSONRenderer{}, site.Default(fixedNow))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"title", "tagline", "favicon", "url", "baseUrl", "organizationName",
		"projectName", "onBrokenLinks", "onBrokenMarkdownLinks", "i18n", "presets", "themeConfig"} {
		assert.Contains(t, raw, key)
	}

	presets := raw["presets"].([]any)
	require.Len(t, presets, 1)
	tuple := presets[0].([]any)
	require.Len(t, tuple, 2)
	assert.Equal(t, "classic", tuple[0])

	opts := tuple[1].(map[string]any)
	blog := opts["blog"].(map[string]any)
	assert.Equal(t, map[string]any{"type": []any{"rss", "atom"}, "xslt": true}, blog["feedOptions"])
	assert.Equal(t, "./src/css/custom.css", opts["theme"].(map[string]any)["customCss"])

	prism := raw["themeConfig"].(map[string]any)["prism"].(map[string]any)
	assert.Equal(t, "dracula", prism["darkTheme"])

	assert.Contains(t, string(data), "Copyright © 2026", "non-ASCII must not be escaped")
}

func TestYAML_PresetTuple(t *testing.T) {
	data, err := Bytes(YAMLRenderer{}, site.Default(fixedNow))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	tuple := raw["presets"].([]any)[0].([]any)
	assert.Equal(t, "classic", tuple[0])
	assert.Contains(t, tuple[1], "docs")
}

func TestParse_BarePresetName(t *testing.T) {
	cfg := site.Default(fixedNow)
	data, err := Bytes(JSONRenderer{}, cfg)
	require.NoError(t, err)

	patched := strings.Replace(string(data), `"presets": [`, `"presets": ["classic", `, 1)
	parsed, err := Parse(FormatJSON, strings.NewReader(patched))
	require.NoError(t, err)
	require.Len(t, parsed.Presets, 2)
	assert.Equal(t, site.Preset{Name: "classic"}, parsed.Presets[0])

	yamlDoc := "title: t\npresets:\n  - classic\n  - [classic, {theme: {customCss: a.css}}]\n"
	parsed, err = Parse(FormatYAML, strings.NewReader(yamlDoc))
	require.NoError(t, err)
	require.Len(t, parsed.Presets, 2)
	assert.Equal(t, "a.css", parsed.Presets[1].Options.Theme.CustomCSS)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(FormatJSON, strings.NewReader(`{"title": "x", "unknown": 1}`))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryRender))

	_, err = Parse(FormatJSON, strings.NewReader(`{"presets": [["a", {}, 3]]}`))
	require.Error(t, err)

	_, err = Parse(FormatYAML, strings.NewReader("presets:\n  - {name: classic}\n"))
	require.Error(t, err)

	_, err = Parse(FormatTS, strings.NewReader("export default {}"))
	require.Error(t, err)
}

func TestTypeScript(t *testing.T) {
	r, err := ForFormat(FormatTS, WithClock(clock))
	require.NoError(t, err)

	data, err := Bytes(r, site.Default(fixedNow))
	require.NoError(t, err)
	out := string(data)

	for _, want := range []string{
		`import { themes as prismThemes } from "prism-react-renderer";`,
		`title: "Kevin Reber Developer Setup",`,
		`tagline: "👨‍💻 My personal developer setup",`,
		`baseUrl: "/tmux-configs/",`,
		`onBrokenLinks: "throw",`,
		`onBrokenMarkdownLinks: "warn",`,
		`locales: ["en"],`,
		`sidebarPath: "./sidebars.ts",`,
		`type: ["rss", "atom"],`,
		`onUntruncatedBlogPosts: "warn",`,
		`customCss: "./src/css/custom.css",`,
		`} satisfies Preset.Options,`,
		`position: "right",`,
		"copyright: `Copyright © ${new Date().getFullYear()} Kevin Reber. Built with Docusaurus.`,",
		`theme: prismThemes.github,`,
		`darkTheme: prismThemes.dracula,`,
		`export default config;`,
	} {
		assert.Contains(t, out, want)
	}
}

func TestTypeScript_StaticCopyrightAndEscaping(t *testing.T) {
	cfg := site.Default(fixedNow)
	cfg.ThemeConfig.Footer.Copyright = "Copyright © 1999 `quoted` ${x}"
	cfg.Title = `Say "hi"`
	cfg.Presets[0].Options.Blog = nil

	data, err := Bytes(NewTSRenderer(clock), cfg)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `copyright: "Copyright © 1999 `+"`quoted`"+` ${x}",`)
	assert.Contains(t, out, `title: "Say \"hi\"",`)
	assert.NotContains(t, out, "blog:")

	cfg.ThemeConfig.Footer.Copyright = "© 2026 `a` ${b}"
	data, err = Bytes(NewTSRenderer(clock), cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "copyright: `© ${new Date().getFullYear()} \\`a\\` \\${b}`,")
}

func TestTypeScript_CopyrightYearOnWordBoundary(t *testing.T) {
	tests := []struct {
		copyright string
		want      string
	}{
		{"Build 20261 by Kevin", `copyright: "Build 20261 by Kevin",`},
		{"Ref 120260, since 2026.", "copyright: `Ref 120260, since ${new Date().getFullYear()}.`,"},
		{"(2026)", "copyright: `(${new Date().getFullYear()})`,"},
	}
	for _, tt := range tests {
		t.Run(tt.copyright, func(t *testing.T) {
			cfg := site.Default(fixedNow)
			cfg.ThemeConfig.Footer.Copyright = tt.copyright
			data, err := Bytes(NewTSRenderer(clock), cfg)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
		})
	}
}

func TestTypeScript_RejectsNonIdentifierTheme(t *testing.T) {
	cfg := site.Default(fixedNow)
	cfg.ThemeConfig.Prism.Theme = "not valid"
	_, err := Bytes(NewTSRenderer(clock), cfg)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryRender))
}

func TestFormats(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("toml")
	assert.Error(t, err)

	f, ok := FormatFromPath("out/docusaurus.config.json")
	assert.True(t, ok)
	assert.Equal(t, FormatJSON, f)
	_, ok = FormatFromPath("Makefile")
	assert.False(t, ok)

	assert.Equal(t, "docusaurus.config.ts", FormatTS.DefaultFileName())
	assert.Equal(t, "docusaurus.config.yaml", FormatYAML.DefaultFileName())

	_, err = ForFormat("xml")
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "docusaurus.config.json")
	cfg := site.Default(fixedNow)

	changed, err := WriteFile(path, JSONRenderer{}, cfg)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = WriteFile(path, JSONRenderer{}, cfg)
	require.NoError(t, err)
	assert.False(t, changed, "identical content is not rewritten")

	cfg.Title = "Updated"
	changed, err = WriteFile(path, JSONRenderer{}, cfg)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Updated"`)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must be cleaned up")
}

func TestWriteFile_FailedRenderKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docusaurus.config.ts")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	cfg := site.Default(fixedNow)
	cfg.ThemeConfig.Prism.DarkTheme = "bad theme"
	_, err := WriteFile(path, NewTSRenderer(clock), cfg)
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}
