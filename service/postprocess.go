package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/quentinbedos-gif/ops-help-raul/config"
	"github.com/quentinbedos-gif/ops-help-raul/database"
	"github.com/quentinbedos-gif/ops-help-raul/types"
	"github.com/quentinbedos-gif/ops-help-raul/utils"
)

const placeholderTitleLimit = 60

// PostProcessor extracts the confidence marker from a generated answer,
// strips it from the user-visible text, and on low confidence creates a
// placeholder KB entry (guarded against duplicates).
type PostProcessor struct {
	store      database.KnowledgeStore
	guard      *DuplicateGuard
	classifier *CategoryClassifier
	extractor  *KeywordExtractor
	escalation config.EscalationConfig
	now        func() time.Time
}

func NewPostProcessor(store database.KnowledgeStore, guard *DuplicateGuard, classifier *CategoryClassifier, extractor *KeywordExtractor, escalation config.EscalationConfig) *PostProcessor {
	return &PostProcessor{
		store:      store,
		guard:      guard,
		classifier: classifier,
		extractor:  extractor,
		escalation: escalation,
		now:        time.Now,
	}
}

// ParseConfidence scans the generated text for the three markers in fixed
// priority order: explicit Low, else explicit Medium, else High.
// "No marker" is its own state so it can be told apart from an explicit
// high-confidence answer.
func ParseConfidence(answer string) types.ConfidenceLevel {
	switch {
	case strings.Contains(answer, types.MarkerLow):
		return types.ConfidenceLow
	case strings.Contains(answer, types.MarkerMedium):
		return types.ConfidenceMedium
	case strings.Contains(answer, types.MarkerHigh):
		return types.ConfidenceHigh
	default:
		return types.ConfidenceUnmarked
	}
}

// StripMarkers removes every known marker occurrence and trims the result.
// All three markers are removed regardless of which verdict matched, in case
// the model emitted more than one.
func StripMarkers(answer string) string {
	for _, marker := range []string{types.MarkerLow, types.MarkerMedium, types.MarkerHigh} {
		answer = strings.ReplaceAll(answer, marker, "")
	}
	return strings.TrimSpace(answer)
}

// Process post-processes a raw generated answer into the user-visible text.
func (p *PostProcessor) Process(ctx context.Context, rawAnswer string, entries []types.KnowledgeEntry, question string) string {
	verdict := ParseConfidence(rawAnswer)
	answer := StripMarkers(rawAnswer)

	switch verdict {
	case types.ConfidenceLow:
		if url := p.capture(ctx, question); url != "" {
			answer += "\n\n_Je n'avais pas de process documente pour cette question. Une fiche KB a completer a ete creee : " + url + "_"
		}
	case types.ConfidenceUnmarked:
		// Treated as high confidence downstream, but worth telling apart in
		// the logs from an explicit [CONFIANCE:HAUTE].
		log.Printf("Reponse sans marqueur de confiance pour: %s", utils.Truncate(question, 80))
	}

	if categories := sourceCategories(entries); categories != "" {
		answer += "\n\n_Source KB: " + categories + "_"
	}

	// The model is instructed to tag the raw placeholders. Substitute them
	// in case it echoed one verbatim.
	answer = strings.ReplaceAll(answer, "PAUL_HENRI_ID", p.escalation.PaulHenriID)
	answer = strings.ReplaceAll(answer, "CONSTANTIN_ID", p.escalation.ConstantinID)
	return answer
}

// sourceCategories joins the distinct categories of the entries backing the
// answer, in retrieval order.
func sourceCategories(entries []types.KnowledgeEntry) string {
	var categories []string
	seen := make(map[string]struct{})
	for _, entry := range entries {
		if entry.Category == "" {
			continue
		}
		if _, dup := seen[entry.Category]; dup {
			continue
		}
		seen[entry.Category] = struct{}{}
		categories = append(categories, entry.Category)
	}
	return strings.Join(categories, ", ")
}

// capture creates a placeholder KB entry for an undocumented question and
// returns its reference URL, or "" when creation was skipped or failed.
func (p *PostProcessor) capture(ctx context.Context, question string) string {
	if p.guard.ExistsSimilar(ctx, question) {
		log.Printf("Fiche KB similaire deja presente, pas de creation pour: %s", utils.Truncate(question, 80))
		return ""
	}

	title := strings.TrimSpace(utils.Truncate(question, placeholderTitleLimit))
	if title == "" {
		title = "Question sans titre"
	}

	entry := &types.KnowledgeEntry{
		Title:       title,
		Category:    p.classifier.Detect(question),
		Description: question,
		Keywords:    strings.Join(p.extractor.Extract(question, 5, 2), ", "),
		Process:     types.ProcessPlaceholder,
		Confidence:  string(types.ConfidenceLow),
		Language:    types.DefaultLanguage,
		LastUpdated: p.now().Unix(),
	}

	created, err := p.store.CreateEntry(ctx, entry)
	if err != nil {
		log.Printf("Creation de la fiche KB echouee: %v", err)
		return ""
	}
	p.guard.Remember(question)
	log.Printf("Fiche KB a completer creee: %s", created.ID)
	return created.URL
}
