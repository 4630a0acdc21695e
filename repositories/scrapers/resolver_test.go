package scrapers

import (
	"testing"
)

func TestResolveHandleInputs(t *testing.T) {
	resolver := &ResolverRepository{}

	tests := []struct {
		name    string
		target  string
		want    string
		wantErr bool
	}{
		{"bare handle", "maria.estilo", "maria.estilo", false},
		{"at prefix", "@maria.estilo", "maria.estilo", false},
		{"uppercase folds", "Maria_Estilo", "maria_estilo", false},
		{"surrounding space", "  ana  ", "ana", false},
		{"profile url", "https://www.instagram.com/maria.estilo", "maria.estilo", false},
		{"profile url trailing slash", "https://www.instagram.com/maria.estilo/", "maria.estilo", false},
		{"profile url with query", "https://instagram.com/Maria.Estilo/?igsh=abc", "maria.estilo", false},
		{"no scheme url", "instagram.com/maria.estilo", "maria.estilo", false},
		{"empty", "", "", true},
		{"spaces only", "   ", "", true},
		{"illegal characters", "maria estilo!", "", true},
		{"too long", "a123456789a123456789a123456789x", "", true},
		{"url without path", "https://www.instagram.com/", "", true},
		{"post url without shortcode", "https://www.instagram.com/p/", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handle, err := resolver.Resolve(tt.target)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Resolve(%q) = %q, want error", tt.target, handle)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.target, err)
			}
			if handle != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.target, handle, tt.want)
			}
		})
	}
}

func TestResolveReservedPathsRouteToShortcode(t *testing.T) {
	for _, root := range []string{"p", "reel", "reels", "tv"} {
		if !reservedPaths[root] {
			t.Errorf("path root %q not reserved", root)
		}
	}
	if reservedPaths["maria.estilo"] {
		t.Error("handle segment treated as reserved")
	}
}

func TestOwnerPattern(t *testing.T) {
	body := `{"shortcode_media":{"owner":{"id":"123","username":"Maria.Estilo"},"is_video":true}}`
	matches := ownerPattern.FindStringSubmatch(body)
	if len(matches) < 2 || matches[1] != "Maria.Estilo" {
		t.Errorf("matches = %v, want owner username", matches)
	}
}

func TestMentionPattern(t *testing.T) {
	content := `42 likes, 7 comments - Maria (@maria.estilo) on Instagram`
	matches := mentionPattern.FindStringSubmatch(content)
	if len(matches) < 2 || matches[1] != "maria.estilo" {
		t.Errorf("matches = %v, want mention username", matches)
	}
}

func TestUsernamePattern(t *testing.T) {
	script := `{"@type":"Person","username": "ana_paula","alternateName":"@ana_paula"}`
	matches := usernamePattern.FindStringSubmatch(script)
	if len(matches) < 2 || matches[1] != "ana_paula" {
		t.Errorf("matches = %v, want username", matches)
	}
}
