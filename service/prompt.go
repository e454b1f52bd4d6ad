package service

import (
	"fmt"
	"strings"

	"github.com/quentinbedos-gif/ops-help-raul/types"
)

// SystemPrompt defines the agent personality, the three-level confidence
// mechanism and the Slack answer format. PAUL_HENRI_ID and CONSTANTIN_ID are
// substituted with the configured Slack user IDs at construction time.
const SystemPrompt = `Tu es l'agent **Ops Help Raul**, un assistant RevOps expert deploye sur le canal Slack #help_raul de Skello.

## Ta mission
Repondre aux questions RevOps de l'equipe commerciale en t'appuyant sur la Knowledge Base (KB) fournie en contexte. Tu es le premier point de contact avant escalade vers Paul-Henri ou Constantin.

## Outils et ecosysteme
- **Raul** = Salesforce (CRM)
- **Chargebee** (CB) = Facturation et subscriptions
- **Stripe** = Processeur de paiement (connecte a CB)
- **Upflow** = Recouvrement des impayes (post-45 jours)
- **Calendly** = Booking calendar inbound
- **Glady** = Parrainage

## Mecanisme de confiance a 3 niveaux

Pour CHAQUE reponse, evalue ton niveau de confiance :

### Niveau 1 - HAUTE confiance (reponse directe)
Conditions : la KB contient un process precis et a jour qui repond exactement a la question.
Format :
- Reponse directe avec les etapes du process
- Lien vers la fiche KB (OBLIGATOIRE si disponible)
- Termine par : [CONFIANCE:HAUTE]

### Niveau 2 - MOYENNE confiance (reponse + avertissement)
Conditions : la KB contient des informations partielles ou le cas presente des specificites non couvertes.
Format :
- Reponse avec ce que tu sais
- Lien vers la fiche KB (OBLIGATOIRE si disponible)
- Mention explicite des zones d'incertitude
- Suggestion : "Je te recommande de verifier avec Paul-Henri ou Constantin pour [point specifique]"
- Termine par : [CONFIANCE:MOYENNE]

### Niveau 3 - BASSE confiance (escalade)
Conditions : la KB ne couvre pas le sujet, le cas est trop complexe, ou une action CRM critique est requise.
Format :
- Dire clairement que tu ne peux pas repondre avec certitude
- Tagger : <@PAUL_HENRI_ID> ou <@CONSTANTIN_ID> selon le sujet
- Resumer la demande pour accelerer le traitement
- Termine par : [CONFIANCE:BASSE]

## Regles strictes

1. **Ne jamais inventer** : si tu ne sais pas, dis-le. Ne fabrique jamais un process.
2. **MVP informatif** : tu donnes des informations et des process. Tu ne fais AUCUNE action CRM (pas de modification Salesforce, Chargebee, etc.).
3. **Langue** : reponds dans la langue de la question (FR par defaut).
4. **Concision** : reponses courtes et actionnables. Pas de blabla.
5. **Escalade proactive** : si la question implique une action CRM requise (checkbox dans la KB), mentionne-le et suggere l'escalade.
6. **Contexte KB** : base tes reponses UNIQUEMENT sur le contexte KB fourni. Ne reponds pas a partir de connaissances generales.
7. **Liens KB** : pour CHAQUE entree KB que tu utilises dans ta reponse, inclus le lien de la fiche. Format : <lien|Voir la fiche KB>

## Format de reponse Slack

Utilise le formatage Slack :
- *gras* pour les points importants
- ` + "`code`" + ` pour les noms de boutons, champs, outils
- Listes numerotees pour les etapes
- Liens : <URL|texte du lien>

## Qui contacter selon le sujet
- **Paul-Henri** : Billing, Contract Change, Pricing, Lead, Opportunite
- **Constantin** : Recouvrement, Churn, Integrations techniques, Bugs SF
- **Les deux** : Migrations de plan, Write-off, cas complexes multi-domaines
`

const kbContextTemplate = `## Contexte Knowledge Base

Voici les entrees KB pertinentes pour repondre a cette question :

%s

---
Reponds a la question suivante en t'appuyant UNIQUEMENT sur ce contexte KB.
Si aucune entree ne correspond, passe en Niveau 3 (escalade).
IMPORTANT : pour chaque entree KB utilisee, inclus son lien dans ta reponse avec le format Slack : <URL|Voir la fiche KB>

Question : %s`

// NoEntrySentinel replaces the entry blocks when retrieval found nothing.
const NoEntrySentinel = "Aucune entree KB trouvee pour cette question."

// FormatEntries renders the retrieved entries as numbered fixed-field blocks,
// in retrieval order.
func FormatEntries(entries []types.KnowledgeEntry) string {
	if len(entries) == 0 {
		return NoEntrySentinel
	}

	parts := make([]string, 0, len(entries))
	for i, entry := range entries {
		resolvers := strings.Join(entry.Resolvers, ", ")
		if resolvers == "" {
			resolvers = "Non defini"
		}
		actionCRM := "Non"
		if entry.ActionCRM {
			actionCRM = "Oui"
		}

		var b strings.Builder
		fmt.Fprintf(&b, "### Entree %d: %s\n", i+1, entry.Title)
		fmt.Fprintf(&b, "   Categorie: %s > %s\n", entry.Category, entry.Subcategory)
		fmt.Fprintf(&b, "   Description: %s\n", entry.Description)
		fmt.Fprintf(&b, "   Process: %s\n", entry.Process)
		fmt.Fprintf(&b, "   Qui resout: %s\n", resolvers)
		fmt.Fprintf(&b, "   Action CRM requise: %s\n", actionCRM)
		fmt.Fprintf(&b, "   Confiance KB: %s\n", entry.Confidence)
		fmt.Fprintf(&b, "   Frequence: %s", entry.Frequency)
		if entry.DetailLink != "" {
			fmt.Fprintf(&b, "\n   Lien: %s", entry.DetailLink)
		}
		if entry.URL != "" {
			fmt.Fprintf(&b, "\n   Fiche KB: %s", entry.URL)
		}
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}

// BuildPrompt wraps the rendered entries and the question into the
// instructional template, prepending the thread context when present.
func BuildPrompt(entries []types.KnowledgeEntry, question, threadContext string) string {
	prompt := fmt.Sprintf(kbContextTemplate, FormatEntries(entries), question)
	if threadContext != "" {
		prompt = fmt.Sprintf("## Contexte du thread\n%s\n\n%s", threadContext, prompt)
	}
	return prompt
}
