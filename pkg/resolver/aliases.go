package resolver

// slugAliases maps external-service issuer slugs onto local country codes.
// Keys are the lowercase slugs the catalog uses in issuer.code.
var slugAliases = map[string]string{
	"united-states":  "US",
	"etats-unis":     "US",
	"united-kingdom": "GB",
	"royaume-uni":    "GB",
	"great-britain":  "GB",
	"germany":        "DE",
	"allemagne":      "DE",
	"france":         "FR",
	"spain":          "ES",
	"espagne":        "ES",
	"italy":          "IT",
	"italie":         "IT",
	"greece":         "GR",
	"grece":          "GR",
	"switzerland":    "CH",
	"suisse":         "CH",
	"austria":        "AT",
	"autriche":       "AT",
	"netherlands":    "NL",
	"pays-bas":       "NL",
	"belgium":        "BE",
	"belgique":       "BE",
	"portugal":       "PT",
	"ireland":        "IE",
	"irlande":        "IE",
	"poland":         "PL",
	"pologne":        "PL",
	"russia":         "RU",
	"russie":         "RU",
	"turkey":         "TR",
	"turquie":        "TR",
	"japan":          "JP",
	"japon":          "JP",
	"china":          "CN",
	"chine":          "CN",
	"india":          "IN",
	"inde":           "IN",
	"south-korea":    "KR",
	"coree-du-sud":   "KR",
	"canada":         "CA",
	"mexico":         "MX",
	"mexique":        "MX",
	"costa-rica":     "CR",
	"guatemala":      "GT",
	"brazil":         "BR",
	"bresil":         "BR",
	"argentina":      "AR",
	"argentine":      "AR",
	"chile":          "CL",
	"chili":          "CL",
	"peru":           "PE",
	"perou":          "PE",
	"colombia":       "CO",
	"colombie":       "CO",
	"uruguay":        "UY",
	"venezuela":      "VE",
	"australia":      "AU",
	"australie":      "AU",
	"new-zealand":    "NZ",
	"south-africa":   "ZA",
	"egypt":          "EG",
	"egypte":         "EG",
	"morocco":        "MA",
	"maroc":          "MA",
	"israel":         "IL",
	"sweden":         "SE",
	"suede":          "SE",
	"norway":         "NO",
	"norvege":        "NO",
	"denmark":        "DK",
	"danemark":       "DK",
	"finland":        "FI",
	"finlande":       "FI",
}

// nameAlias pairs a normalized substring of a common country-name variant
// (multilingual) with its local code.
type nameAlias struct {
	variant string
	code    string
}

// nameAliases is scanned in order only after fuzzy matching fails, and the
// first containment match wins, so the table is a slice rather than a map:
// more specific variants must be listed before shorter ones they contain.
// Variants must already be in Normalize form.
var nameAliases = []nameAlias{
	{"estados unidos", "US"},
	{"eeuu", "US"},
	{"america", "US"},
	{"reino unido", "GB"},
	{"gran bretana", "GB"},
	{"inglaterra", "GB"},
	{"england", "GB"},
	{"alemania", "DE"},
	{"deutschland", "DE"},
	{"bundesrepublik", "DE"},
	{"espana", "ES"},
	{"francia", "FR"},
	{"republique francaise", "FR"},
	{"italia", "IT"},
	{"grecia", "GR"},
	{"hellas", "GR"},
	{"suiza", "CH"},
	{"schweiz", "CH"},
	{"helvetia", "CH"},
	{"holanda", "NL"},
	{"holland", "NL"},
	{"nederland", "NL"},
	{"paises bajos", "NL"},
	{"belgica", "BE"},
	{"belgie", "BE"},
	{"irlanda", "IE"},
	{"eire", "IE"},
	{"polonia", "PL"},
	{"polska", "PL"},
	{"rusia", "RU"},
	{"cccp", "RU"},
	{"turquia", "TR"},
	{"turkiye", "TR"},
	{"japon", "JP"},
	{"nippon", "JP"},
	{"corea", "KR"},
	{"mejico", "MX"},
	{"brasil", "BR"},
	{"sudafrica", "ZA"},
	{"egipto", "EG"},
	{"marruecos", "MA"},
	{"suecia", "SE"},
	{"sverige", "SE"},
	{"noruega", "NO"},
	{"norge", "NO"},
	{"dinamarca", "DK"},
	{"danmark", "DK"},
	{"finlandia", "FI"},
	{"suomi", "FI"},
	{"osterreich", "AT"},
	{"checa", "CZ"},
	{"cesko", "CZ"},
	{"hungria", "HU"},
	{"magyar", "HU"},
	{"ucrania", "UA"},
}
