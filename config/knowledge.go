package config

import "github.com/quentinbedos-gif/ops-help-raul/types"

// DefaultStopWords covers common French and English function words, greetings
// and politeness markers that carry no retrieval signal.
var DefaultStopWords = []string{
	// French
	"les", "des", "une", "dans", "pour", "avec", "sur", "est", "sont", "que",
	"qui", "quoi", "quand", "comment", "pourquoi", "mais", "donc", "car", "pas",
	"mon", "mes", "ton", "tes", "son", "ses", "nos", "vos", "leur", "leurs",
	"cette", "ces", "cet", "nous", "vous", "ils", "elles", "elle", "aux", "par",
	"peut", "peux", "faut", "fait", "faire", "être", "avoir", "tout", "tous",
	"bonjour", "salut", "hello", "merci", "svp", "stp", "plait", "urgent",
	"aide", "besoin", "question", "savoir", "quelqu'un",
	// English
	"the", "and", "for", "with", "that", "this", "what", "when", "where", "how",
	"why", "who", "can", "could", "would", "should", "does", "have",
	"has", "had", "you", "your", "our", "they", "them", "are", "was", "were",
	"please", "thanks", "help", "need", "know", "someone", "anyone",
}

// DefaultCategories is the ordered category table used by the classifier.
// Order matters: on a tied score the first category in the table wins.
var DefaultCategories = []types.CategoryKeywords{
	{Name: "Billing", Keywords: []string{
		"facture", "invoice", "paiement", "payment", "remboursement",
		"refund", "avoir", "credit note", "chargebee", "impaye", "unpaid",
		"rib", "tva", "adresse facturation", "chorus",
	}},
	{Name: "Lead", Keywords: []string{
		"lead", "conversion", "convertir", "siret", "account", "prospect",
	}},
	{Name: "Contract Change", Keywords: []string{
		"contract change", "changement contrat", "migration", "upsell",
		"downsell", "rollout", "discount", "remise", "approbation",
	}},
	{Name: "Churn", Keywords: []string{
		"churn", "resiliation", "reactivation", "reactiver",
	}},
	{Name: "Quote", Keywords: []string{
		"devis", "quote", "proposition",
	}},
	{Name: "Calendrier", Keywords: []string{
		"calendrier", "booking", "calendly", "rdv", "rendez-vous",
	}},
	{Name: "Opportunité", Keywords: []string{
		"opportunite", "opportunity", "pipeline",
	}},
	{Name: "Pricing", Keywords: []string{
		"prix", "pricing", "tarif", "grille", "plan",
	}},
	{Name: "Accès", Keywords: []string{
		"acces", "login", "mot de passe", "password", "permission",
	}},
	{Name: "Technique", Keywords: []string{
		"bug", "erreur", "sync", "automation", "workflow",
	}},
	{Name: "Subscription/MRR", Keywords: []string{
		"mrr", "subscription", "abonnement", "recurring",
	}},
	{Name: "Attribution", Keywords: []string{
		"attribution", "assignation", "owner", "transfert portefeuille",
	}},
	{Name: "Rapport", Keywords: []string{
		"rapport", "report", "dashboard", "kpi",
	}},
	{Name: "Intégration", Keywords: []string{
		"integration", "sync", "api", "stripe", "upflow",
	}},
}
