package analysis

import (
	"testing"

	"scraper.local/instagram-curator/repositories/scrapers"
)

func TestEvaluateGeoOfficialSignals(t *testing.T) {
	policy := DefaultGeoPolicy()

	tests := []struct {
		name    string
		profile *scrapers.ProfileInfo
		posts   []*scrapers.PostInfo
		check   func(*GeoSignal) bool
	}{
		{
			"geotag",
			&scrapers.ProfileInfo{},
			[]*scrapers.PostInfo{{Geotag: "São Paulo, Brazil"}},
			func(s *GeoSignal) bool { return s.Geotag && s.Official },
		},
		{
			"flag emoji",
			&scrapers.ProfileInfo{Biography: "25 anos \U0001F1E7\U0001F1F7"},
			nil,
			func(s *GeoSignal) bool { return s.Flag && s.Official },
		},
		{
			"country name",
			&scrapers.ProfileInfo{Name: "Ana | Brasil"},
			nil,
			func(s *GeoSignal) bool { return s.CountryName && s.Official },
		},
		{
			"cc tld in link",
			&scrapers.ProfileInfo{ExternalUrl: "https://minhaloja.com.br"},
			nil,
			func(s *GeoSignal) bool { return s.Tld && s.Official },
		},
		{
			"cc tld in email",
			&scrapers.ProfileInfo{BusinessEmail: "contato@site.com.br"},
			nil,
			func(s *GeoSignal) bool { return s.Tld && s.Official },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal := policy.EvaluateGeo(tt.profile, tt.posts)
			if !tt.check(signal) {
				t.Errorf("signal = %+v", signal)
			}
			if !signal.Approved {
				t.Errorf("official signal did not approve: %+v", signal)
			}
		})
	}
}

func TestEvaluateGeoLanguageFallback(t *testing.T) {
	policy := DefaultGeoPolicy()

	profile := &scrapers.ProfileInfo{
		Biography: "obrigada por me seguir, você é incrível",
	}
	posts := []*scrapers.PostInfo{
		{Caption: "saudade desse look"},
	}
	signal := policy.EvaluateGeo(profile, posts)

	if signal.Official {
		t.Errorf("no official signal expected: %+v", signal)
	}
	if signal.LanguageScore < policy.MinLanguageScore {
		t.Fatalf("LanguageScore = %d, want at least %d", signal.LanguageScore, policy.MinLanguageScore)
	}
	if !signal.Approved {
		t.Errorf("language evidence did not approve: %+v", signal)
	}
}

func TestEvaluateGeoRejectsForeignAccount(t *testing.T) {
	policy := DefaultGeoPolicy()

	profile := &scrapers.ProfileInfo{
		Biography: "fashion lover based in Lisbon",
	}
	posts := []*scrapers.PostInfo{
		{Caption: "new outfit today", Geotag: "Lisbon, Portugal"},
	}
	signal := policy.EvaluateGeo(profile, posts)

	if signal.Official {
		t.Errorf("unexpected official signal: %+v", signal)
	}
	if signal.Approved {
		t.Errorf("foreign account approved: %+v", signal)
	}
}

func TestEvaluateGeoDialectMinHits(t *testing.T) {
	policy := DefaultGeoPolicy()

	// "gente" needs two hits before it counts
	one := policy.EvaluateGeo(&scrapers.ProfileInfo{Biography: "gente"}, nil)
	two := policy.EvaluateGeo(&scrapers.ProfileInfo{Biography: "gente gente"}, nil)
	if one.LanguageScore != 0 {
		t.Errorf("single hit scored %d, want 0", one.LanguageScore)
	}
	if two.LanguageScore != 1 {
		t.Errorf("double hit scored %d, want 1", two.LanguageScore)
	}
}
