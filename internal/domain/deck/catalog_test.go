package deck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminapower/propdeck/internal/logger"
)

func TestCatalog_OrderingInvariant(t *testing.T) {
	rules := Catalog()

	// Whenever one pattern is a prefix of another, the longer one must come
	// first so it can never be shadowed
	for i, shorter := range rules {
		for j := 0; j < i; j++ {
			longer := rules[j]
			if strings.HasPrefix(longer.Pattern, shorter.Pattern) {
				assert.GreaterOrEqual(t, len(longer.Pattern), len(shorter.Pattern),
					"pattern %q is ordered after %q which it shadows", longer.Pattern, shorter.Pattern)
			}
		}
	}

	// Sanity: the table carries the full placeholder set of the template
	assert.Len(t, rules, 19)
}

func TestCatalog_PatternsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, rule := range Catalog() {
		assert.False(t, seen[rule.Pattern], "duplicate pattern %q", rule.Pattern)
		seen[rule.Pattern] = true
	}
}

func TestMatch_FirstStructuralMatchWins(t *testing.T) {
	r := NewResolver(logger.GetLogger(), nil)

	tests := []struct {
		name          string
		text          string
		expectedField FieldSelector
		expectedMatch string
	}{
		{name: "exact", text: "R$ AAAA", expectedField: FieldBeforeTotal, expectedMatch: "R$ AAAA"},
		{name: "with_trailing_text", text: "R$ AAAB extra", expectedField: FieldBeforeTotal, expectedMatch: "R$ AAAB"},
		{name: "sibling_not_shadowed", text: "R$ AAAB", expectedField: FieldBeforeTotal, expectedMatch: "R$ AAAB"},
		{name: "savings_annual", text: "R$ FFFF", expectedField: FieldMonthlySavings, expectedMatch: "R$ FFFF"},
		{name: "client_name", text: "CLIENTE: PPPPPP", expectedField: FieldClientName, expectedMatch: "CLIENTE: PPPPPP"},
		{name: "discount_small", text: "XX% de desconto", expectedField: FieldDiscountPercent, expectedMatch: "XX%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := r.match(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.expectedMatch, rule.Pattern)
			assert.Equal(t, tt.expectedField, rule.Field)
		})
	}
}

func TestMatch_NoMatch(t *testing.T) {
	r := NewResolver(logger.GetLogger(), nil)

	for _, text := range []string{"", "Proposta comercial", "R$ ZZZZ", "AAAA"} {
		_, ok := r.match(text)
		assert.False(t, ok, "text %q should not match any rule", text)
	}
}
