// internal/services/combination_identity.go
package services

import (
	"sort"
	"strings"

	"github.com/openshelf/storefront-backend/internal/models"
	"github.com/openshelf/storefront-backend/internal/utils"
)

const (
	combinationHashDelimiter = "|"
	combinationSummarySep    = " / "
	combinationSKUDelimiter  = "-"
	combinationSKUDefault    = "DEFAULT"
	skuCodeLength            = 3
)

// GenerateCombinationHash fingerprints a value-id set. Ids are sorted before
// hashing, so the same selections in any input order produce the same hash;
// (product_id, hash) is the uniqueness key for combinations.
func GenerateCombinationHash(refs models.OptionValueRefs) string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.OptionValueID.String())
	}
	sort.Strings(ids)
	return utils.HashString(strings.Join(ids, combinationHashDelimiter))
}

// buildSummary joins display names in input order. Empty input yields an
// empty summary.
func buildSummary(names []string) string {
	return strings.Join(names, combinationSummarySep)
}

// skuCodeFromName derives a short code from a value name: uppercase it, drop
// everything that is not a letter or digit, keep the leading characters.
// Names with no usable characters code to "X".
func skuCodeFromName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() >= skuCodeLength {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}

// cartesianProduct expands per-type candidate lists into every tuple that
// picks exactly one value from each list. An empty input produces no tuples.
func cartesianProduct(lists [][]models.OptionValue) [][]models.OptionValue {
	if len(lists) == 0 {
		return nil
	}

	tuples := [][]models.OptionValue{{}}
	for _, list := range lists {
		next := make([][]models.OptionValue, 0, len(tuples)*len(list))
		for _, tuple := range tuples {
			for _, value := range list {
				extended := make([]models.OptionValue, len(tuple), len(tuple)+1)
				copy(extended, tuple)
				next = append(next, append(extended, value))
			}
		}
		tuples = next
	}
	return tuples
}

// coerceNonNegative clamps stock and price inputs the way the HTTP layer
// promises: absent or negative becomes zero.
func coerceNonNegativeInt(v *int) int {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

func coerceNonNegativeFloat(v *float64) float64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}
