package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quentinbedos-gif/ops-help-raul/config"
	"github.com/quentinbedos-gif/ops-help-raul/database"
	"github.com/quentinbedos-gif/ops-help-raul/types"
)

var testEscalation = config.EscalationConfig{
	PaulHenriID:  "U111PH",
	ConstantinID: "U222CO",
}

func newTestPostProcessor(store *fakeStore) *PostProcessor {
	extractor := testExtractor()
	return NewPostProcessor(store, NewDuplicateGuard(store, extractor), testClassifier(), extractor, testEscalation)
}

func TestParseConfidence(t *testing.T) {
	assert.Equal(t, types.ConfidenceHigh, ParseConfidence("Reponse. [CONFIANCE:HAUTE]"))
	assert.Equal(t, types.ConfidenceMedium, ParseConfidence("Reponse. [CONFIANCE:MOYENNE]"))
	assert.Equal(t, types.ConfidenceLow, ParseConfidence("Reponse. [CONFIANCE:BASSE]"))
	assert.Equal(t, types.ConfidenceUnmarked, ParseConfidence("Reponse sans marqueur."))
}

func TestParseConfidencePriority(t *testing.T) {
	// Low wins over the others, medium over high.
	assert.Equal(t, types.ConfidenceLow, ParseConfidence("[CONFIANCE:HAUTE] [CONFIANCE:BASSE]"))
	assert.Equal(t, types.ConfidenceLow, ParseConfidence("[CONFIANCE:MOYENNE] [CONFIANCE:BASSE]"))
	assert.Equal(t, types.ConfidenceMedium, ParseConfidence("[CONFIANCE:HAUTE] [CONFIANCE:MOYENNE]"))
}

func TestStripMarkers(t *testing.T) {
	assert.Equal(t, "Reponse.", StripMarkers("Reponse. [CONFIANCE:HAUTE]"))
	assert.Equal(t, "Reponse.", StripMarkers("Reponse. [CONFIANCE:BASSE] [CONFIANCE:MOYENNE]"))
	assert.Equal(t, "Reponse sans marqueur.", StripMarkers("Reponse sans marqueur."))
}

func TestStripMarkersIdempotent(t *testing.T) {
	once := StripMarkers("Reponse. [CONFIANCE:MOYENNE]")
	assert.Equal(t, once, StripMarkers(once))
}

func TestProcessHighConfidence(t *testing.T) {
	store := &fakeStore{}
	post := newTestPostProcessor(store)

	out := post.Process(context.Background(), "Voici le process. [CONFIANCE:HAUTE]", nil, "Comment convertir un lead ?")

	assert.Equal(t, "Voici le process.", out)
	assert.Empty(t, store.created)
}

func TestProcessLowConfidenceCreatesPlaceholder(t *testing.T) {
	store := &fakeStore{
		createEntry: func(entry *types.KnowledgeEntry) (*types.CreatedEntry, error) {
			return &types.CreatedEntry{ID: "kb-new", URL: "https://kb.example/x"}, nil
		},
	}
	post := newTestPostProcessor(store)
	now := time.Unix(1700000000, 0)
	post.now = func() time.Time { return now }

	out := post.Process(context.Background(), "Je ne sais pas. [CONFIANCE:BASSE]", nil, "Comment convertir un lead tres specifique ?")

	assert.Contains(t, out, "Une fiche KB a completer a ete creee : https://kb.example/x")

	require.Len(t, store.created, 1)
	entry := store.created[0]
	assert.Equal(t, "Comment convertir un lead tres specifique ?", entry.Title)
	assert.Equal(t, "Lead", entry.Category)
	assert.Equal(t, "Comment convertir un lead tres specifique ?", entry.Description)
	assert.Contains(t, entry.Keywords, "convertir")
	assert.Contains(t, entry.Keywords, "lead")
	assert.Equal(t, types.ProcessPlaceholder, entry.Process)
	assert.Equal(t, string(types.ConfidenceLow), entry.Confidence)
	assert.Equal(t, types.DefaultLanguage, entry.Language)
	assert.Equal(t, now.Unix(), entry.LastUpdated)
}

func TestProcessLowConfidenceTruncatesLongTitle(t *testing.T) {
	store := &fakeStore{
		createEntry: func(entry *types.KnowledgeEntry) (*types.CreatedEntry, error) {
			return &types.CreatedEntry{ID: "kb-new", URL: "https://kb.example/x"}, nil
		},
	}
	post := newTestPostProcessor(store)

	long := "Comment gerer un churn partiel avec migration de plan, write-off et relance Upflow en meme temps ?"
	post.Process(context.Background(), "[CONFIANCE:BASSE]", nil, long)

	require.Len(t, store.created, 1)
	assert.LessOrEqual(t, len([]rune(store.created[0].Title)), placeholderTitleLimit)
	assert.Equal(t, long, store.created[0].Description)
}

func TestProcessLowConfidenceSkipsDuplicate(t *testing.T) {
	store := &fakeStore{
		queryByFilter: func(filter database.TextFilter, limit int) ([]types.KnowledgeEntry, error) {
			return []types.KnowledgeEntry{{ID: "kb-1", Title: "Conversion lead"}}, nil
		},
	}
	post := newTestPostProcessor(store)

	out := post.Process(context.Background(), "Je ne sais pas. [CONFIANCE:BASSE]", nil, "Comment convertir un lead ?")

	assert.Equal(t, "Je ne sais pas.", out)
	assert.Empty(t, store.created)
}

func TestProcessLowConfidenceCreationFailure(t *testing.T) {
	store := &fakeStore{
		createEntry: func(entry *types.KnowledgeEntry) (*types.CreatedEntry, error) {
			return nil, errors.New("store down")
		},
	}
	post := newTestPostProcessor(store)

	out := post.Process(context.Background(), "Je ne sais pas. [CONFIANCE:BASSE]", nil, "Comment convertir un lead ?")

	// The answer still goes out, without the creation footer.
	assert.Equal(t, "Je ne sais pas.", out)
}

func TestProcessRetriesCreationAfterFailure(t *testing.T) {
	failing := true
	store := &fakeStore{
		createEntry: func(entry *types.KnowledgeEntry) (*types.CreatedEntry, error) {
			if failing {
				return nil, errors.New("store down")
			}
			return &types.CreatedEntry{ID: "kb-new", URL: "https://kb.example/x"}, nil
		},
	}
	post := newTestPostProcessor(store)

	post.Process(context.Background(), "[CONFIANCE:BASSE]", nil, "Comment convertir un lead ?")

	// A failed creation leaves no trace in the guard, so the same question
	// triggers another attempt once the store recovers.
	failing = false
	out := post.Process(context.Background(), "[CONFIANCE:BASSE]", nil, "Comment convertir un lead ?")

	assert.Contains(t, out, "https://kb.example/x")
	assert.Len(t, store.created, 2)
}

func TestProcessSkipsRecreationAfterSuccess(t *testing.T) {
	store := &fakeStore{
		createEntry: func(entry *types.KnowledgeEntry) (*types.CreatedEntry, error) {
			return &types.CreatedEntry{ID: "kb-new", URL: "https://kb.example/x"}, nil
		},
	}
	post := newTestPostProcessor(store)

	post.Process(context.Background(), "[CONFIANCE:BASSE]", nil, "Comment convertir un lead ?")
	out := post.Process(context.Background(), "[CONFIANCE:BASSE]", nil, "Comment convertir un lead ?")

	assert.Len(t, store.created, 1)
	assert.NotContains(t, out, "https://kb.example/x")
}

func TestProcessUnmarkedLeftAsIs(t *testing.T) {
	store := &fakeStore{}
	post := newTestPostProcessor(store)

	out := post.Process(context.Background(), "Reponse sans marqueur.", nil, "Comment convertir un lead ?")

	assert.Equal(t, "Reponse sans marqueur.", out)
	assert.Empty(t, store.created)
	assert.Empty(t, store.filterCalls)
}

func TestProcessSubstitutesEscalationIDs(t *testing.T) {
	store := &fakeStore{}
	post := newTestPostProcessor(store)

	out := post.Process(context.Background(), "Vois avec <@PAUL_HENRI_ID> ou <@CONSTANTIN_ID>. [CONFIANCE:HAUTE]", nil, "Question complexe sujet pointu ?")

	assert.Equal(t, "Vois avec <@U111PH> ou <@U222CO>.", out)
}

func TestProcessSourceCategoriesFooter(t *testing.T) {
	store := &fakeStore{}
	post := newTestPostProcessor(store)
	entries := []types.KnowledgeEntry{
		{Title: "A", Category: "Billing"},
		{Title: "B", Category: "Lead"},
		{Title: "C", Category: "Billing"},
		{Title: "D"},
	}

	out := post.Process(context.Background(), "Reponse. [CONFIANCE:HAUTE]", entries, "Question facture lead ?")

	assert.Equal(t, "Reponse.\n\n_Source KB: Billing, Lead_", out)
}
