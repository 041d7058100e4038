package site

import (
	"fmt"
	"time"
)

const (
	defaultOwner   = "kevinreber"
	defaultProject = "tmux-configs"
	defaultAuthor  = "Kevin Reber"
	defaultSource  = "https://github.com/kevinreber/tmux-configs/docusaurus-docs"
)

// CopyrightFor renders the footer copyright line for the given year.
func CopyrightFor(owner string, year int) string {
	return fmt.Sprintf("Copyright © %d %s. Built with Docusaurus.", year, owner)
}

// Default returns the published site configuration. The copyright year is
// taken from now; nothing else depends on the clock.
func Default(now time.Time) Config {
	return Config{
		Title:   "Kevin Reber Developer Setup",
		Tagline: "👨‍💻 My personal developer setup",
		Favicon: "img/favicon.ico",

		Future: Future{V4: true},

		URL:              "https://" + defaultOwner + ".github.io",
		BaseURL:          "/" + defaultProject + "/",
		OrganizationName: defaultOwner,
		ProjectName:      defaultProject,

		OnBrokenLinks:         SeverityThrow,
		OnBrokenMarkdownLinks: SeverityWarn,

		I18n: I18n{
			DefaultLocale: "en",
			Locales:       []string{"en"},
		},

		Presets: []Preset{{
			Name: PresetClassic,
			Options: PresetOptions{
				Docs: &DocsOptions{
					SidebarPath: "./sidebars.ts",
					EditURL:     defaultSource,
				},
				Blog: &BlogOptions{
					ShowReadingTime: true,
					FeedOptions: FeedOptions{
						Type: []FeedType{FeedRSS, FeedAtom},
						XSLT: true,
					},
					EditURL:                defaultSource,
					OnInlineTags:           SeverityWarn,
					OnInlineAuthors:        SeverityWarn,
					OnUntruncatedBlogPosts: SeverityWarn,
				},
				Theme: &ThemeOptions{
					CustomCSS: "./src/css/custom.css",
				},
			},
		}},

		ThemeConfig: ThemeConfig{
			Image: "img/logo.png",
			Navbar: Navbar{
				Title: "Kevin Reber Developer Setup",
				Logo: &Logo{
					Alt: "Kevin Reber Logo",
					Src: "img/logo.png",
				},
				Items: []NavItem{
					{Href: "/docs/tmux-setup", Label: "Tmux Setup", Position: PositionLeft},
					{Href: "https://github.com/" + defaultOwner, Label: "GitHub", Position: PositionRight},
				},
			},
			Footer: Footer{
				Style: FooterDark,
				Links: []FooterGroup{{
					Title: "Socials",
					Items: []FooterLink{
						{Label: "GitHub", Href: "https://github.com/" + defaultOwner},
						{Label: "Strava", Href: "https://www.strava.com/athletes/47910885"},
					},
				}},
				Copyright: CopyrightFor(defaultAuthor, now.Year()),
			},
			Prism: Prism{
				Theme:     PrismGithub,
				DarkTheme: PrismDracula,
			},
		},
	}
}
