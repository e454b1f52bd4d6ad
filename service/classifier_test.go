package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quentinbedos-gif/ops-help-raul/config"
	"github.com/quentinbedos-gif/ops-help-raul/types"
)

func TestDetectBestScore(t *testing.T) {
	classifier := testClassifier()

	category := classifier.Detect("probleme de facture et de paiement sur un lead")

	// Billing scores 2 (facture, paiement), Lead scores 1.
	assert.Equal(t, "Billing", category)
}

func TestDetectSubstringContainment(t *testing.T) {
	classifier := testClassifier()

	// "leads" still contains "lead".
	assert.Equal(t, "Lead", classifier.Detect("mes leads ne remontent pas"))
}

func TestDetectTieBreakKeepsFirstCategory(t *testing.T) {
	classifier := testClassifier()

	// facture -> Billing (1), lead -> Lead (1): Billing is first in the table.
	assert.Equal(t, "Billing", classifier.Detect("facture du lead"))
}

func TestDetectTieBreakFollowsTableOrder(t *testing.T) {
	reversed := NewCategoryClassifier([]types.CategoryKeywords{
		{Name: "Lead", Keywords: []string{"lead"}},
		{Name: "Billing", Keywords: []string{"facture"}},
	})

	assert.Equal(t, "Lead", reversed.Detect("facture du lead"))
}

func TestDetectDefaultTable(t *testing.T) {
	classifier := NewCategoryClassifier(config.DefaultCategories)

	// sync counts for Intégration as well as Technique, so sync + stripe
	// outranks a lone Technique hit.
	assert.Equal(t, "Intégration", classifier.Detect("probleme de sync stripe"))
	assert.Equal(t, "Billing", classifier.Detect("facture impayee sur chargebee"))
	assert.Equal(t, "Churn", classifier.Detect("demande de resiliation"))
}

func TestDetectNoMatch(t *testing.T) {
	classifier := testClassifier()

	assert.Equal(t, "", classifier.Detect("rien a voir avec le support"))
	assert.Equal(t, "", classifier.Detect(""))
}

func TestDetectDeterministic(t *testing.T) {
	classifier := testClassifier()
	text := "conversion de lead et facture impayee"

	first := classifier.Detect(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, classifier.Detect(text))
	}
}
