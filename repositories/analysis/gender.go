package analysis

import (
	"regexp"
	"strings"
)

const (
	GenderFemale  = "feminino"
	GenderMale    = "masculino"
	GenderUnknown = "desconhecido"
)

var femalePattern = regexp.MustCompile(
	`(?i)(ela/dela|she/her|mulher|blogueira|modelo feminina|moda feminina|womenswear|feminina)`,
)

var malePattern = regexp.MustCompile(
	`(?i)(ele/dele|he/him|homem|blogueiro|modelo masculino|moda masculina|menswear|masculino)`,
)

var femaleHandleHints = []string{"girl", "garota", "feminina", "dela", "ela_"}
var maleHandleHints = []string{"boy", "garoto", "masculina", "dele", "mens"}

var femaleNames = map[string]bool{
	"ana": true, "maria": true, "julia": true, "júlia": true, "beatriz": true,
	"camila": true, "carolina": true, "fernanda": true, "gabriela": true,
	"larissa": true, "leticia": true, "letícia": true, "mariana": true,
	"amanda": true, "bruna": true, "isabela": true, "lais": true, "laís": true,
	"luana": true, "natalia": true, "natália": true, "patricia": true,
	"patrícia": true, "rafaela": true, "thais": true, "thaís": true,
	"vitoria": true, "vitória": true, "yasmin": true,
}

var maleNames = map[string]bool{
	"joao": true, "joão": true, "jose": true, "josé": true, "pedro": true,
	"lucas": true, "gabriel": true, "rafael": true, "felipe": true,
	"gustavo": true, "matheus": true, "bruno": true, "carlos": true,
	"daniel": true, "eduardo": true, "fernando": true, "leonardo": true,
	"marcos": true, "paulo": true, "ricardo": true, "rodrigo": true,
	"thiago": true, "vinicius": true, "vinícius": true,
}

// GuessGender derives a gender signal from explicit pronouns/keywords first,
// then the curated first name table, then handle hints, then a naive suffix
// heuristic on the first name token.
func GuessGender(biography string, category string, name string, handle string) string {
	bio := strings.ToLower(biography)
	cat := strings.ToLower(category)

	female := femalePattern.MatchString(bio) || femalePattern.MatchString(cat)
	male := malePattern.MatchString(bio) || malePattern.MatchString(cat)
	if female && !male {
		return GenderFemale
	}
	if male && !female {
		return GenderMale
	}

	first := ""
	if tokens := strings.Fields(strings.ToLower(name)); len(tokens) > 0 {
		first = tokens[0]
	}
	if femaleNames[first] {
		return GenderFemale
	}
	if maleNames[first] {
		return GenderMale
	}

	uname := strings.ToLower(handle)
	if containsAny(uname, femaleHandleHints) {
		return GenderFemale
	}
	if containsAny(uname, maleHandleHints) {
		return GenderMale
	}

	if len(first) > 2 {
		if strings.HasSuffix(first, "a") {
			return GenderFemale
		}
		if strings.HasSuffix(first, "o") || strings.HasSuffix(first, "r") {
			return GenderMale
		}
	}
	return GenderUnknown
}
