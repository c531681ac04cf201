// Package theme holds the design tokens the presentation layer renders
// with, keyed on the system light/dark setting.
package theme

// Scheme is the system appearance setting.
type Scheme string

const (
	SchemeLight Scheme = "light"
	SchemeDark  Scheme = "dark"
)

// TextColors groups the text color tokens.
type TextColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Light     string `json:"light"`
}

// BackgroundColors groups the surface color tokens.
type BackgroundColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// Colors is the color token set.
type Colors struct {
	Primary    string           `json:"primary"`
	Secondary  string           `json:"secondary"`
	Accent     string           `json:"accent"`
	Text       TextColors       `json:"text"`
	Background BackgroundColors `json:"background"`
	Border     string           `json:"border"`
	Error      string           `json:"error"`
	Success    string           `json:"success"`
}

// Spacing is the spacing scale in display points.
type Spacing struct {
	XS int `json:"xs"`
	SM int `json:"sm"`
	MD int `json:"md"`
	LG int `json:"lg"`
	XL int `json:"xl"`
}

// TextStyle is one typography token.
type TextStyle struct {
	FontSize   int    `json:"font_size"`
	FontWeight string `json:"font_weight"`
}

// Typography is the typography scale.
type Typography struct {
	H1      TextStyle `json:"h1"`
	H2      TextStyle `json:"h2"`
	H3      TextStyle `json:"h3"`
	Body    TextStyle `json:"body"`
	Caption TextStyle `json:"caption"`
}

// Theme is a complete token set for one scheme.
type Theme struct {
	Scheme     Scheme     `json:"scheme"`
	Colors     Colors     `json:"colors"`
	Spacing    Spacing    `json:"spacing"`
	Typography Typography `json:"typography"`
}

var spacing = Spacing{XS: 4, SM: 8, MD: 16, LG: 24, XL: 32}

var typography = Typography{
	H1:      TextStyle{FontSize: 32, FontWeight: "700"},
	H2:      TextStyle{FontSize: 24, FontWeight: "700"},
	H3:      TextStyle{FontSize: 20, FontWeight: "600"},
	Body:    TextStyle{FontSize: 16, FontWeight: "400"},
	Caption: TextStyle{FontSize: 14, FontWeight: "400"},
}

var light = Theme{
	Scheme: SchemeLight,
	Colors: Colors{
		Primary:   "#226944",
		Secondary: "#2c3e50",
		Accent:    "#e74c3c",
		Text: TextColors{
			Primary:   "#2c3e50",
			Secondary: "#7f8c8d",
			Light:     "#ffffff",
		},
		Background: BackgroundColors{
			Primary:   "#ffffff",
			Secondary: "#f5f6fa",
		},
		Border:  "#dcdde1",
		Error:   "#e74c3c",
		Success: "#27ae60",
	},
	Spacing:    spacing,
	Typography: typography,
}

var dark = Theme{
	Scheme: SchemeDark,
	Colors: Colors{
		Primary:   "#2e8b57",
		Secondary: "#34495e",
		Accent:    "#e74c3c",
		Text: TextColors{
			Primary:   "#ecf0f1",
			Secondary: "#bdc3c7",
			Light:     "#ffffff",
		},
		Background: BackgroundColors{
			Primary:   "#1a1a1a",
			Secondary: "#2d2d2d",
		},
		Border:  "#404040",
		Error:   "#e74c3c",
		Success: "#27ae60",
	},
	Spacing:    spacing,
	Typography: typography,
}

// Palette returns the token set for a scheme. Unknown schemes fall back to
// light.
func Palette(scheme Scheme) Theme {
	if scheme == SchemeDark {
		return dark
	}
	return light
}
