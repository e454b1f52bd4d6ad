package types

// ConfidenceLevel is the verdict parsed out of a generated answer.
type ConfidenceLevel string

const (
	ConfidenceHigh     ConfidenceLevel = "Haute"
	ConfidenceMedium   ConfidenceLevel = "Moyenne"
	ConfidenceLow      ConfidenceLevel = "Basse"
	ConfidenceUnmarked ConfidenceLevel = "Unmarked"
)

// In-band markers the model appends to its answer. They are stripped from the
// user-visible text after parsing.
const (
	MarkerHigh   = "[CONFIANCE:HAUTE]"
	MarkerMedium = "[CONFIANCE:MOYENNE]"
	MarkerLow    = "[CONFIANCE:BASSE]"
)

// ProcessPlaceholder flags an auto-created entry whose resolution process still
// needs to be written by a human.
const ProcessPlaceholder = "A completer"

// DefaultLanguage is the KB default language.
const DefaultLanguage = "FR"

// KnowledgeEntry is one documented support process in the knowledge base.
type KnowledgeEntry struct {
	ID          string   `bson:"_id,omitempty" json:"id"`
	Title       string   `bson:"title" json:"title"`
	Category    string   `bson:"category" json:"category"`
	Subcategory string   `bson:"subcategory" json:"subcategory"`
	Description string   `bson:"description" json:"description"`
	Keywords    string   `bson:"keywords" json:"keywords"`
	Process     string   `bson:"process" json:"process"`
	Resolvers   []string `bson:"resolvers" json:"resolvers"`
	ActionCRM   bool     `bson:"action_crm" json:"action_crm"`
	DetailLink  string   `bson:"detail_link" json:"detail_link"`
	Confidence  string   `bson:"confidence" json:"confidence"`
	Frequency   string   `bson:"frequency" json:"frequency"`
	Language    string   `bson:"language" json:"language"`
	URL         string   `bson:"url,omitempty" json:"url"`
	LastUpdated int64    `bson:"last_updated" json:"last_updated"`
}

// CreatedEntry is what the store returns after a successful creation.
type CreatedEntry struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CategoryKeywords maps one category to the substrings that vote for it.
// The table is ordered: the first category to reach the best score wins ties.
type CategoryKeywords struct {
	Name     string   `mapstructure:"name" json:"name"`
	Keywords []string `mapstructure:"keywords" json:"keywords"`
}
