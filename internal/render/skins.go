package render

import (
	"fmt"
	"strconv"
	"strings"

	"portfoliohub/pkg/models"
)

// Classes is the CSS class set one skin applies to a rendered page.
type Classes struct {
	Container string
	Header    string
	Section   string
	Card      string
}

// Colors is the resolved color scheme for a skin, after config overrides.
type Colors struct {
	Primary    string
	Secondary  string
	Background string
	Text       string
}

var skinClasses = map[string]Classes{
	models.SkinClassic:    {"template-classic", "template-classic-header", "template-classic-section", "template-classic-card"},
	models.SkinModern:     {"template-modern", "template-modern-header", "template-modern-section", "template-modern-card"},
	models.SkinMinimalist: {"template-minimalist", "template-minimalist-header", "template-minimalist-section", "template-minimalist-card"},
	models.SkinDeveloper:  {"template-developer", "template-developer-header", "template-developer-section", "template-developer-card"},
	models.SkinDesigner:   {"template-designer", "template-designer-header", "template-designer-section", "template-designer-card"},
}

var skinColors = map[string]Colors{
	models.SkinClassic:    {"#2563eb", "#64748b", "#ffffff", "#1f2937"},
	models.SkinModern:     {"#7c3aed", "#a78bfa", "#0f172a", "#f8fafc"},
	models.SkinMinimalist: {"#111827", "#6b7280", "#ffffff", "#111827"},
	models.SkinDeveloper:  {"#22c55e", "#4ade80", "#0a0f14", "#e5e7eb"},
	models.SkinDesigner:   {"#ea580c", "#fb923c", "#fff7ed", "#431407"},
}

var skillClasses = map[string]string{
	models.SkinClassic:    "skill-pill skill-pill-classic",
	models.SkinModern:     "skill-pill skill-pill-modern",
	models.SkinMinimalist: "skill-pill skill-pill-minimalist",
	models.SkinDeveloper:  "skill-pill skill-pill-developer",
	models.SkinDesigner:   "skill-pill skill-pill-designer",
}

// SkinClasses returns the class set for a skin, falling back to modern
// for anything it does not recognize.
func SkinClasses(skin string) Classes {
	if c, ok := skinClasses[skin]; ok {
		return c
	}
	return skinClasses[models.SkinModern]
}

// SkinColors resolves a skin's color scheme. primary_color and
// secondary_color from the template config override the skin defaults;
// background and text always come from the skin.
func SkinColors(skin string, config map[string]any) Colors {
	colors, ok := skinColors[skin]
	if !ok {
		colors = skinColors[models.SkinModern]
	}
	if config != nil {
		if p, ok := config["primary_color"].(string); ok && isHexColor(p) {
			colors.Primary = p
		}
		if s, ok := config["secondary_color"].(string); ok && isHexColor(s) {
			colors.Secondary = s
		}
	}
	return colors
}

// FontFamily resolves the configured font, defaulting to Inter.
func FontFamily(config map[string]any) string {
	if config != nil {
		if f, ok := config["font_family"].(string); ok && strings.TrimSpace(f) != "" {
			return strings.TrimSpace(f)
		}
	}
	return "Inter"
}

func skillClass(skin string) string {
	if c, ok := skillClasses[skin]; ok {
		return c
	}
	return skillClasses[models.SkinModern]
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}

// HexToRGB converts "#rrggbb" to "r, g, b" for CSS variable use.
// Returns "" for anything that is not a well-formed hex color.
func HexToRGB(hex string) string {
	if !isHexColor(hex) {
		return ""
	}
	r, _ := strconv.ParseUint(hex[1:3], 16, 8)
	g, _ := strconv.ParseUint(hex[3:5], 16, 8)
	b, _ := strconv.ParseUint(hex[5:7], 16, 8)
	return fmt.Sprintf("%d, %d, %d", r, g, b)
}
