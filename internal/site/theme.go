package site

import "slices"

// ThemeConfig holds the classic theme's presentation settings.
type ThemeConfig struct {
	// Image is the social card shown when pages are shared.
	Image  string `json:"image,omitempty" yaml:"image,omitempty"`
	Navbar Navbar `json:"navbar" yaml:"navbar"`
	Footer Footer `json:"footer" yaml:"footer"`
	Prism  Prism  `json:"prism" yaml:"prism"`
}

// Navbar is the top navigation bar.
type Navbar struct {
	Title string    `json:"title" yaml:"title"`
	Logo  *Logo     `json:"logo,omitempty" yaml:"logo,omitempty"`
	Items []NavItem `json:"items" yaml:"items"`
}

// Logo is the navbar image.
type Logo struct {
	Alt string `json:"alt" yaml:"alt"`
	Src string `json:"src" yaml:"src"`
}

// NavItem is a single navbar link. Items are rendered in slice order.
type NavItem struct {
	Href     string   `json:"href" yaml:"href"`
	Label    string   `json:"label" yaml:"label"`
	Position Position `json:"position,omitempty" yaml:"position,omitempty"`
}

// Footer is the page footer.
type Footer struct {
	Style     FooterStyle   `json:"style" yaml:"style"`
	Links     []FooterGroup `json:"links" yaml:"links"`
	Copyright string        `json:"copyright,omitempty" yaml:"copyright,omitempty"`
}

// FooterGroup is a titled column of footer links.
type FooterGroup struct {
	Title string       `json:"title" yaml:"title"`
	Items []FooterLink `json:"items" yaml:"items"`
}

// FooterLink is a single footer entry.
type FooterLink struct {
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href" yaml:"href"`
}

// Prism selects the light and dark code highlighting themes.
type Prism struct {
	Theme     PrismTheme `json:"theme" yaml:"theme"`
	DarkTheme PrismTheme `json:"darkTheme" yaml:"darkTheme"`
}

// Links returns every navbar and footer href in display order, labelled by
// their location in the record.
func (tc ThemeConfig) Links() []LocatedLink {
	links := make([]LocatedLink, 0, len(tc.Navbar.Items))
	for i, item := range tc.Navbar.Items {
		links = append(links, LocatedLink{Field: fieldIndex("navbar.items", i), Label: item.Label, Href: item.Href})
	}
	for g, group := range tc.Footer.Links {
		for i, item := range group.Items {
			field := fieldIndex(fieldIndex("footer.links", g)+".items", i)
			links = append(links, LocatedLink{Field: field, Label: item.Label, Href: item.Href})
		}
	}
	return links
}

// LocatedLink is a link together with the record field that holds it.
type LocatedLink struct {
	Field string
	Label string
	Href  string
}

func (tc ThemeConfig) clone() ThemeConfig {
	out := tc
	if tc.Navbar.Logo != nil {
		logo := *tc.Navbar.Logo
		out.Navbar.Logo = &logo
	}
	out.Navbar.Items = slices.Clone(tc.Navbar.Items)
	if tc.Footer.Links != nil {
		out.Footer.Links = make([]FooterGroup, len(tc.Footer.Links))
		for i, g := range tc.Footer.Links {
			out.Footer.Links[i] = FooterGroup{Title: g.Title, Items: slices.Clone(g.Items)}
		}
	}
	return out
}
