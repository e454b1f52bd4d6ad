package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/quentinbedos-gif/ops-help-raul/config"
	"github.com/quentinbedos-gif/ops-help-raul/utils"
)

const questionEchoLimit = 200

// Agent orchestrates one answer cycle: KB retrieval, prompt assembly, the
// generation call, and confidence-aware post-processing. It holds no state
// between calls; invocations may run concurrently.
type Agent struct {
	retriever    *Retriever
	ai           AIService
	post         *PostProcessor
	systemPrompt string
	escalation   config.EscalationConfig
}

func NewAgent(retriever *Retriever, ai AIService, post *PostProcessor, escalation config.EscalationConfig) *Agent {
	systemPrompt := strings.ReplaceAll(SystemPrompt, "PAUL_HENRI_ID", escalation.PaulHenriID)
	systemPrompt = strings.ReplaceAll(systemPrompt, "CONSTANTIN_ID", escalation.ConstantinID)
	return &Agent{
		retriever:    retriever,
		ai:           ai,
		post:         post,
		systemPrompt: systemPrompt,
		escalation:   escalation,
	}
}

// Answer responds to one question. threadContext carries the prior thread
// messages when the question was asked inside a thread, "" otherwise. It
// always returns a user-visible string: a generation failure maps to a fixed
// apology embedding the escalation contacts.
func (a *Agent) Answer(ctx context.Context, question, threadContext string) string {
	log.Printf("Recherche KB pour: %s", utils.Truncate(question, 80))
	entries := a.retriever.Retrieve(ctx, question)

	prompt := BuildPrompt(entries, question, threadContext)

	answer, err := a.ai.Generate(ctx, a.systemPrompt, prompt)
	if err != nil {
		log.Printf("Erreur appel generation: %v", err)
		return fmt.Sprintf(
			"Desole, je rencontre un probleme technique. <@%s> <@%s> pouvez-vous aider ?\n\n_Question originale: %s_",
			a.escalation.PaulHenriID,
			a.escalation.ConstantinID,
			utils.Truncate(question, questionEchoLimit),
		)
	}

	return a.post.Process(ctx, answer, entries, question)
}
