package analyze

import "strings"

// Verb categories reported in the statistics
const (
	CategoryLinking   = "linking"
	CategoryHelping   = "helping"
	CategoryAction    = "action"
	CategoryRegular   = "regular"
	CategoryIrregular = "irregular"
)

var linkingVerbs = map[string]bool{
	"is": true, "am": true, "are": true, "was": true, "were": true,
	"be": true, "being": true, "been": true,
	"seem": true, "appear": true, "become": true, "grow": true,
	"turn": true, "look": true, "feel": true, "smell": true,
	"sound": true, "taste": true,
}

var helpingVerbs = map[string]bool{
	"have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true,
	"will": true, "would": true, "shall": true, "should": true,
	"may": true, "might": true, "must": true,
	"can": true, "could": true,
}

// Categorize classifies a verb occurrence by simple surface patterns:
// known linking/helping forms first, then -ing as action, -ed as
// regular past, everything else irregular.
func Categorize(surface, lemma string) string {
	lower := strings.ToLower(surface)

	switch {
	case linkingVerbs[lower] || linkingVerbs[lemma]:
		return CategoryLinking
	case helpingVerbs[lower] || helpingVerbs[lemma]:
		return CategoryHelping
	case strings.HasSuffix(lower, "ing"):
		return CategoryAction
	case strings.HasSuffix(lower, "ed") && len(lower) > 2:
		return CategoryRegular
	default:
		return CategoryIrregular
	}
}
