package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewQuery_KnownPersona(t *testing.T) {
	q := NewQuery("Food Contractor", "Prepare a vegetarian buffet-style dinner menu for a corporate gathering", DefaultProfile())

	for _, term := range []string{"prepare", "vegetarian", "buffet", "dinner", "menu", "corporate", "gluten-free"} {
		assert.Contains(t, q.Keywords.High, term)
	}
	assert.Contains(t, q.Keywords.Medium, "gathering")
	assert.Contains(t, q.Keywords.Medium, "style")
	assert.NotContains(t, q.Keywords.Medium, "dinner", "a term lives only in its highest tier")
	assert.Contains(t, q.Keywords.Low, "breakfast")
	assert.IsNonDecreasing(t, q.Keywords.High)
}

func TestNewQuery_UnknownPersona(t *testing.T) {
	q := NewQuery("Chef", "prepare vegetarian dinner", DefaultProfile())

	assert.Equal(t, []string{"prepare"}, q.Keywords.High)
	assert.Equal(t, []string{"dinner", "vegetarian"}, q.Keywords.Medium)
	assert.Empty(t, q.Keywords.Low)
	assert.Equal(t, 3, q.Keywords.Len())
	assert.Equal(t, "Chef prepare vegetarian dinner", q.Text())
}

func TestNewQuery_PersonaContainment(t *testing.T) {
	q := NewQuery("Senior Investment Analyst", "summarize quarterly results", DefaultProfile())

	assert.Contains(t, q.Keywords.High, "revenue")
	assert.Contains(t, q.Keywords.High, "summarize")
	assert.Contains(t, q.Keywords.Medium, "quarterly")
}

func TestNewQuery_QuotedPhrases(t *testing.T) {
	q := NewQuery("", `Find "Large Batch" recipes`, DefaultProfile())

	assert.Contains(t, q.Keywords.High, "large batch")
	assert.Contains(t, q.Keywords.Medium, "recipes")
}

func TestFindPersona_EmptyRole(t *testing.T) {
	_, ok := findPersona("  ", DefaultProfile().Personas)
	assert.False(t, ok)
}
