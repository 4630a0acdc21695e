package analysis

import (
	"strings"

	"scraper.local/instagram-curator/repositories/scrapers"
)

// GeoPolicy is the target-country configuration of the geography check. The
// dialect list and thresholds are tuned per deployment; the default policy
// targets Brazil.
type GeoPolicy struct {
	Country      string
	CountryNames []string
	FlagEmoji    string
	Places       []string
	CcTlds       []string
	DialectTerms []DialectTerm

	// MinLanguageScore is how many dialect terms must clear their own hit
	// minimum before language alone confirms the geography.
	MinLanguageScore int
}

type DialectTerm struct {
	Term    string
	MinHits int
}

type GeoSignal struct {
	Geotag        bool
	Flag          bool
	CountryName   bool
	Tld           bool
	LanguageScore int

	// Official is any non-linguistic signal: geotag, flag, country name,
	// ccTLD in email or link.
	Official bool
	Approved bool
}

func DefaultGeoPolicy() *GeoPolicy {
	return &GeoPolicy{
		Country:      "brazil",
		CountryNames: []string{"brasil", "brazil"},
		FlagEmoji:    "\U0001F1E7\U0001F1F7",
		Places: []string{
			"são paulo", "sao paulo", "rio de janeiro", "belo horizonte",
			"curitiba", "porto alegre", "salvador", "fortaleza", "recife",
			"brasília", "brasilia", "goiânia", "goiania", "manaus", "belém",
			"belem", "florianópolis", "florianopolis", "campinas", "santos",
			"niterói", "niteroi", "minas gerais", "bahia", "paraná", "parana",
			"pernambuco", "ceará", "ceara", "rio grande do sul",
			"santa catarina", "espírito santo", "espirito santo",
		},
		CcTlds: []string{".br"},
		DialectTerms: []DialectTerm{
			{Term: "você", MinHits: 1},
			{Term: "vocês", MinHits: 1},
			{Term: "obrigada", MinHits: 1},
			{Term: "obrigado", MinHits: 1},
			{Term: "beleza", MinHits: 1},
			{Term: "gente", MinHits: 2},
			{Term: "promoção", MinHits: 1},
			{Term: "saudade", MinHits: 1},
			{Term: "cadê", MinHits: 1},
			{Term: "amiga", MinHits: 2},
			{Term: "lindona", MinHits: 1},
			{Term: "arraso", MinHits: 1},
			{Term: "look do dia", MinHits: 1},
			{Term: "bora", MinHits: 2},
			{Term: "né", MinHits: 2},
			{Term: "tô", MinHits: 2},
		},
		MinLanguageScore: 3,
	}
}

// EvaluateGeo fuses the independent geography signals. Approval requires an
// official signal, or, when none exists, a language score clearing the
// policy threshold.
func (p *GeoPolicy) EvaluateGeo(profile *scrapers.ProfileInfo, posts []*scrapers.PostInfo) *GeoSignal {
	signal := &GeoSignal{}

	for _, post := range posts {
		if post.Geotag == "" {
			continue
		}
		geotag := strings.ToLower(post.Geotag)
		if containsAny(geotag, p.CountryNames) || containsAny(geotag, p.Places) {
			signal.Geotag = true
			break
		}
	}

	identity := strings.ToLower(profile.Biography + " " + profile.Name)
	if p.FlagEmoji != "" && strings.Contains(profile.Biography+profile.Name, p.FlagEmoji) {
		signal.Flag = true
	}
	if containsAny(identity, p.CountryNames) {
		signal.CountryName = true
	}

	for _, tld := range p.CcTlds {
		if profile.BusinessEmail != "" && strings.HasSuffix(strings.ToLower(profile.BusinessEmail), tld) {
			signal.Tld = true
		}
		if profile.ExternalUrl != "" {
			link := strings.ToLower(profile.ExternalUrl)
			if strings.Contains(link, tld+"/") || strings.HasSuffix(link, tld) {
				signal.Tld = true
			}
		}
	}

	var corpus strings.Builder
	corpus.WriteString(strings.ToLower(profile.Biography))
	for _, post := range posts {
		corpus.WriteString(" ")
		corpus.WriteString(strings.ToLower(post.Caption))
	}
	text := corpus.String()
	for _, term := range p.DialectTerms {
		minHits := term.MinHits
		if minHits < 1 {
			minHits = 1
		}
		if strings.Count(text, term.Term) >= minHits {
			signal.LanguageScore++
		}
	}

	signal.Official = signal.Geotag || signal.Flag || signal.CountryName || signal.Tld
	signal.Approved = signal.Official || signal.LanguageScore >= p.MinLanguageScore
	return signal
}
