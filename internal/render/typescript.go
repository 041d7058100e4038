package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/kevinreber/sitecfg/internal/foundation/errors"
	"github.com/kevinreber/sitecfg/internal/site"
)

const tsTemplate = `import { themes as prismThemes } from "prism-react-renderer";
import type { Config } from "@docusaurus/types";
import type * as Preset from "@docusaurus/preset-classic";

// Generated by sitecfg. Edit sitecfg.yaml instead of this file.

const config: Config = {
  title: {{ lit .Title }},
  tagline: {{ lit .Tagline }},
  favicon: {{ lit .Favicon }},

  future: {
    v4: {{ .Future.V4 }},
  },

  url: {{ lit .URL }},
  baseUrl: {{ lit .BaseURL }},

  organizationName: {{ lit .OrganizationName }},
  projectName: {{ lit .ProjectName }},

  onBrokenLinks: {{ lit .OnBrokenLinks }},
  onBrokenMarkdownLinks: {{ lit .OnBrokenMarkdownLinks }},

  i18n: {
    defaultLocale: {{ lit .I18n.DefaultLocale }},
    locales: {{ list .I18n.Locales }},
  },

  presets: [
{{- range .Presets }}
    [
      {{ lit .Name }},
      {
{{- with .Options.Docs }}
        docs: {
          sidebarPath: {{ lit .SidebarPath }},
{{- if .EditURL }}
          editUrl: {{ lit .EditURL }},
{{- end }}
        },
{{- end }}
{{- with .Options.Blog }}
        blog: {
          showReadingTime: {{ .ShowReadingTime }},
          feedOptions: {
            type: {{ list .FeedOptions.Type }},
            xslt: {{ .FeedOptions.XSLT }},
          },
{{- if .EditURL }}
          editUrl: {{ lit .EditURL }},
{{- end }}
{{- range .Policies }}{{ if .Severity }}
          {{ .Name }}: {{ lit .Severity }},
{{- end }}{{ end }}
        },
{{- end }}
{{- with .Options.Theme }}
        theme: {
          customCss: {{ lit .CustomCSS }},
        },
{{- end }}
      } satisfies Preset.Options,
    ],
{{- end }}
  ],

  themeConfig: {
{{- with .ThemeConfig }}
{{- if .Image }}
    image: {{ lit .Image }},
{{- end }}
    navbar: {
      title: {{ lit .Navbar.Title }},
{{- with .Navbar.Logo }}
      logo: {
        alt: {{ lit .Alt }},
        src: {{ lit .Src }},
      },
{{- end }}
      items: [
{{- range .Navbar.Items }}
        {
          href: {{ lit .Href }},
          label: {{ lit .Label }},
{{- if .Position }}
          position: {{ lit .Position }},
{{- end }}
        },
{{- end }}
      ],
    },
    footer: {
      style: {{ lit .Footer.Style }},
      links: [
{{- range .Footer.Links }}
        {
          title: {{ lit .Title }},
          items: [
{{- range .Items }}
            {
              label: {{ lit .Label }},
              href: {{ lit .Href }},
            },
{{- end }}
          ],
        },
{{- end }}
      ],
{{- if .Footer.Copyright }}
      copyright: {{ copyright .Footer.Copyright }},
{{- end }}
    },
    prism: {
      theme: {{ prism .Prism.Theme }},
      darkTheme: {{ prism .Prism.DarkTheme }},
    },
{{- end }}
  } satisfies Preset.ThemeConfig,
};

export default config;
`

var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// TSRenderer writes a docusaurus.config.ts module.
type TSRenderer struct {
	now func() time.Time
	tpl *template.Template
}

// NewTSRenderer creates a TypeScript renderer. now decides which year in the
// copyright line is emitted as a live getFullYear() expression.
func NewTSRenderer(now func() time.Time) *TSRenderer {
	if now == nil {
		now = time.Now
	}
	r := &TSRenderer{now: now}
	r.tpl = template.Must(template.New("docusaurus.config.ts").Funcs(template.FuncMap{
		"lit":       jsString,
		"list":      jsList,
		"prism":     prismRef,
		"copyright": r.copyrightExpr,
	}).Option("missingkey=error").Parse(tsTemplate))
	return r
}

func (*TSRenderer) Format() Format { return FormatTS }

func (r *TSRenderer) Render(w io.Writer, cfg site.Config) error {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, cfg); err != nil {
		return errors.WrapError(err, errors.CategoryRender, "render docusaurus.config.ts").Build()
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write docusaurus.config.ts").Build()
	}
	return nil
}

// copyrightExpr emits a template literal with the current year replaced by a
// getFullYear() call, so the published footer stays current between builds.
// Only a standalone year matches; digits inside longer numbers are left alone.
func (r *TSRenderer) copyrightExpr(text string) (string, error) {
	year := regexp.MustCompile(`\b` + strconv.Itoa(r.now().Year()) + `\b`)
	loc := year.FindStringIndex(text)
	if loc == nil {
		return jsString(text)
	}
	return "`" + escapeTemplateLiteral(text[:loc[0]]) + "${new Date().getFullYear()}" +
		escapeTemplateLiteral(text[loc[1]:]) + "`", nil
}

func escapeTemplateLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")
	return strings.ReplaceAll(s, "${", "\\${")
}

// jsString renders any string-kinded value as a double-quoted literal.
func jsString(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fmt.Sprint(v)); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func jsList(v any) (string, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return "", fmt.Errorf("list: expected slice, got %T", v)
	}
	items := make([]string, rv.Len())
	for i := range items {
		s, err := jsString(rv.Index(i).Interface())
		if err != nil {
			return "", err
		}
		items[i] = s
	}
	return "[" + strings.Join(items, ", ") + "]", nil
}

func prismRef(theme site.PrismTheme) (string, error) {
	if !jsIdentifier.MatchString(string(theme)) {
		return "", fmt.Errorf("prism theme %q is not a valid identifier", theme)
	}
	return "prismThemes." + string(theme), nil
}
