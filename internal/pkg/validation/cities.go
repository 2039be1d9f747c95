package validation

import (
	"strings"

	"eventoria/internal/pkg/textutil"
)

// romanianCities are stored folded (lowercase, no diacritics).
var romanianCities = []string{
	"bucuresti", "cluj-napoca", "timisoara", "iasi", "constanta", "craiova", "brasov",
	"galati", "ploiesti", "oradea", "bacau", "pitesti", "arad", "sibiu", "targu mures",
	"baia mare", "buzau", "botosani", "satu mare", "ramnicu valcea", "drobeta-turnu severin",
	"suceava", "piatra neamt", "targu jiu", "tulcea", "focsani", "bistrita", "resita",
	"alba iulia", "deva", "hunedoara", "slatina", "calarasi", "giurgiu", "slobozia",
	"vaslui", "roman", "turda", "medias", "onesti", "campina", "dej", "lugoj", "medgidia",
}

// HasRomanianCity reports whether location mentions a known city,
// ignoring case and diacritics.
func HasRomanianCity(location string) bool {
	folded := textutil.Fold(location)
	for _, city := range romanianCities {
		if strings.Contains(folded, city) {
			return true
		}
	}
	return false
}
