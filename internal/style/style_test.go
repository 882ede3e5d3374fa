package style

import "testing"

func TestResolveColor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"black", "&H000000"},
		{"white", "&HFFFFFF"},
		{"red", "&HFF0000"},
		{"green", "&H00FF00"},
		{"blue", "&H0000FF"},
		{"yellow", "&HFFFF00"},
		{"cyan", "&H00FFFF"},
		{"magenta", "&HFF00FF"},

		// case-insensitive
		{"Red", "&HFF0000"},
		{"WHITE", "&HFFFFFF"},
		{"MaGeNtA", "&HFF00FF"},

		// unknown names fall back to green
		{"Purple", DefaultColor},
		{"orange", DefaultColor},
		{"", DefaultColor},
		{"greenish", DefaultColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveColor(tt.name); got != tt.want {
				t.Errorf("ResolveColor(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestForceStyle(t *testing.T) {
	cfg := New("blue", "Arial", 24, 3)

	want := "FontName=Arial,FontSize=24,OutlineColour=&H0000FF,BorderStyle=3"
	if got := cfg.ForceStyle(); got != want {
		t.Errorf("ForceStyle() = %q, want %q", got, want)
	}
}

func TestForceStylePassesFontThroughVerbatim(t *testing.T) {
	// font name, size and border style are not validated here; bad values
	// surface as a compose failure downstream
	cfg := New("nosuchcolor", "Comic Sans MS", -1, 99)

	want := "FontName=Comic Sans MS,FontSize=-1,OutlineColour=&H00FF00,BorderStyle=99"
	if got := cfg.ForceStyle(); got != want {
		t.Errorf("ForceStyle() = %q, want %q", got, want)
	}
}
