package allocation

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Pinoccchio/LawbotWeb-sub002/models"
)

// Classification is the result of classifying a raw crime-type string.
// LowConfidence is set when the result came from the fuzzy fallback rather
// than an exact table match, so callers can flag the decision for audit.
type Classification struct {
	Mapping         models.CrimeTypeMapping `json:"mapping"`
	Category        string                  `json:"category"`
	RecommendedUnit string                  `json:"recommendedUnit"`
	LowConfidence   bool                    `json:"lowConfidence"`
}

// RankedMapping is one fuzzy-match candidate with its score
type RankedMapping struct {
	Mapping models.CrimeTypeMapping `json:"mapping"`
	Score   float64                 `json:"score"`
}

// Classifier maps crime-type strings to a category and recommended unit
// using the static crime-type table. It holds no mutable state and is safe
// for concurrent use.
type Classifier struct {
	table []models.CrimeTypeMapping
	exact map[string]models.CrimeTypeMapping
}

// NewClassifier builds a classifier over the given mapping table. Pass
// models.CrimeTypeTable outside of tests.
func NewClassifier(table []models.CrimeTypeMapping) *Classifier {
	exact := make(map[string]models.CrimeTypeMapping, len(table)*2)
	for _, m := range table {
		exact[normalize(m.Name)] = m
		exact[normalize(m.DisplayName)] = m
	}
	return &Classifier{table: table, exact: exact}
}

// Classify resolves a raw crime-type string to a category and recommended
// unit. Exact matches (enum name or display name, case-insensitive) win;
// otherwise the fuzzy fallback ranks the table and the top candidate is
// used with LowConfidence set. ErrUnclassifiedCrimeType is returned only
// when no candidate scores at all, in which case the caller must require
// manual category selection.
func (c *Classifier) Classify(raw string) (*Classification, error) {
	key := normalize(raw)
	if key == "" {
		return nil, ErrUnclassifiedCrimeType
	}

	if m, ok := c.exact[key]; ok {
		return &Classification{
			Mapping:         m,
			Category:        m.Category,
			RecommendedUnit: m.RecommendedUnit,
		}, nil
	}

	ranked := c.FuzzyMatch(raw)
	if len(ranked) == 0 {
		return nil, ErrUnclassifiedCrimeType
	}

	top := ranked[0]
	zap.S().Infow("crime type resolved by fuzzy fallback",
		"input", raw,
		"matched", top.Mapping.DisplayName,
		"score", top.Score,
		"candidates", len(ranked),
	)
	return &Classification{
		Mapping:         top.Mapping,
		Category:        top.Mapping.Category,
		RecommendedUnit: top.Mapping.RecommendedUnit,
		LowConfidence:   true,
	}, nil
}

// FuzzyMatch scans the mapping table for substring and token overlap with
// the input and returns all candidates that scored, best first. Ordering is
// total (score, then enum name) so results are deterministic.
func (c *Classifier) FuzzyMatch(raw string) []RankedMapping {
	input := normalize(raw)
	inputTokens := tokenize(input)
	if len(inputTokens) == 0 {
		return nil
	}

	var ranked []RankedMapping
	for _, m := range c.table {
		score := matchScore(input, inputTokens, m)
		if score > 0 {
			ranked = append(ranked, RankedMapping{Mapping: m, Score: score})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Mapping.Name < ranked[j].Mapping.Name
	})
	return ranked
}

// matchScore rewards mapping tokens found in the input, full coverage of
// the mapping's tokens, and whole-name containment either way.
func matchScore(input string, inputTokens map[string]bool, m models.CrimeTypeMapping) float64 {
	display := normalize(m.DisplayName)
	mappingTokens := tokenize(display)
	for t := range tokenize(normalize(strings.ReplaceAll(m.Name, "_", " "))) {
		mappingTokens[t] = true
	}

	overlap := 0
	for t := range mappingTokens {
		if inputTokens[t] {
			overlap++
		}
	}
	if overlap == 0 && !strings.Contains(input, display) && !strings.Contains(display, input) {
		return 0
	}

	score := float64(overlap)
	if len(mappingTokens) > 0 {
		score += float64(overlap) / float64(len(mappingTokens))
	}
	if strings.Contains(input, display) || strings.Contains(display, input) {
		score += 1.5
	}
	return score
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func tokenize(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, t := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '&' || r == '/' || r == ','
	}) {
		if len(t) > 2 { // skip glue words like "of", "on"
			tokens[t] = true
		}
	}
	return tokens
}

// UnitsForCategory returns the distinct units responsible for a category,
// in table order
func UnitsForCategory(table []models.CrimeTypeMapping, category string) []string {
	seen := make(map[string]bool)
	var units []string
	for _, m := range table {
		if m.Category == category && !seen[m.RecommendedUnit] {
			seen[m.RecommendedUnit] = true
			units = append(units, m.RecommendedUnit)
		}
	}
	return units
}
