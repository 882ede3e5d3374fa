package style

import (
	"fmt"
	"strings"
)

// DefaultColor is used when a color name is not in the palette.
// Styling is cosmetic, so bad input degrades to green instead of failing.
const DefaultColor = "&H00FF00"

// palette maps color names to ASS hex values (&H + BGR channels).
var palette = map[string]string{
	"black":   "&H000000",
	"white":   "&HFFFFFF",
	"red":     "&HFF0000",
	"green":   "&H00FF00",
	"blue":    "&H0000FF",
	"yellow":  "&HFFFF00",
	"cyan":    "&H00FFFF",
	"magenta": "&HFF00FF",
}

// Config describes how burned-in captions are rendered. Color holds the
// resolved hex value; the other fields pass through to ffmpeg unvalidated.
type Config struct {
	Color       string
	FontName    string
	FontSize    int
	BorderStyle int
}

// New resolves a color name (case-insensitive) against the palette and
// combines it with the pass-through font and border parameters.
func New(colorName, fontName string, fontSize, borderStyle int) Config {
	return Config{
		Color:       ResolveColor(colorName),
		FontName:    fontName,
		FontSize:    fontSize,
		BorderStyle: borderStyle,
	}
}

// ResolveColor maps a color name to its hex value, falling back to
// DefaultColor for unknown names.
func ResolveColor(name string) string {
	if hex, ok := palette[strings.ToLower(name)]; ok {
		return hex
	}
	return DefaultColor
}

// ColorNames lists the supported color names, for help text.
func ColorNames() []string {
	return []string{"black", "white", "red", "green", "blue", "yellow", "cyan", "magenta"}
}

// ForceStyle renders the config as an ffmpeg subtitles force_style string.
func (c Config) ForceStyle() string {
	return fmt.Sprintf("FontName=%s,FontSize=%d,OutlineColour=%s,BorderStyle=%d",
		c.FontName, c.FontSize, c.Color, c.BorderStyle)
}
