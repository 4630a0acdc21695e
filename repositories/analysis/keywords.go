package analysis

import (
	"regexp"
	"strings"
)

// Heuristic keyword tables. Kept as data so the rules can be tuned without
// touching the gate logic.

var commercialKeywords = []string{
	"loja",
	"store",
	"shop",
	"atacado",
	"atacarejo",
	"varejo",
	"brecho",
	"brechó",
	"consignado",
	"delivery",
	"catalogo",
	"catálogo",
	"pedidos",
	"encomenda",
	"revenda",
	"frete",
	"envios",
	"boleto",
	"parcelamos",
	"pix",
}

var fashionCategoryPattern = regexp.MustCompile(
	`(?i)(fashion|clothing|apparel|boutique|moda|model|modelo|designer|stylist)`,
)

var fashionKeywords = []string{
	"moda",
	"fashion",
	"look",
	"looks",
	"outfit",
	"ootd",
	"estilo",
	"style",
	"tendencia",
	"tendência",
	"streetwear",
	"vestido",
	"roupa",
	"acessorios",
	"acessórios",
	"lookbook",
	"consultoria de imagem",
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// IsCommercial flags storefront-style accounts by handle or display name.
func IsCommercial(handle string, name string) bool {
	return containsAny(strings.ToLower(handle), commercialKeywords) ||
		containsAny(strings.ToLower(name), commercialKeywords)
}

// IsOnTopic accepts accounts whose declared category or bio/name sits in the
// fashion domain.
func IsOnTopic(category string, biography string, name string) bool {
	if category != "" && fashionCategoryPattern.MatchString(category) {
		return true
	}
	return containsAny(strings.ToLower(biography), fashionKeywords) ||
		containsAny(strings.ToLower(name), fashionKeywords)
}
