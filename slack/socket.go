package slack

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/quentinbedos-gif/ops-help-raul/service"
	"github.com/quentinbedos-gif/ops-help-raul/utils"
)

const (
	minQuestionLength   = 5
	threadContextWindow = 5
	reconnectDelay      = 3 * time.Second
)

// Listener runs the Socket Mode loop: it connects, acks every envelope, and
// dispatches message and mention events to the agent. Each event is handled
// in its own goroutine, so concurrent questions do not block each other.
type Listener struct {
	client    *Client
	agent     *service.Agent
	channelID string

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewListener creates a Socket Mode listener. channelID restricts the bot to
// one channel; empty means answer everywhere the bot is invited.
func NewListener(client *Client, agent *service.Agent, channelID string) *Listener {
	return &Listener{
		client:    client,
		agent:     agent,
		channelID: channelID,
	}
}

// Run connects and processes events until the context is cancelled,
// reconnecting when Slack closes the connection.
func (l *Listener) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := l.runOnce(ctx); err != nil {
			log.Printf("Socket Mode connection lost: %v", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

func (l *Listener) runOnce(ctx context.Context) error {
	wsURL, err := l.client.ConnectionsOpen(ctx)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	l.mu.Lock()
	l.conn = conn
	l.mu.Unlock()

	// Close the connection when the context is cancelled so ReadMessage
	// unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	log.Println("Bot Ops Help Raul demarre en Socket Mode...")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var envelope Envelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			log.Printf("Unparseable Socket Mode frame: %v", err)
			continue
		}

		// Every envelope with an id gets acked, even ignored ones.
		if envelope.EnvelopeID != "" {
			l.ack(envelope.EnvelopeID)
		}

		switch envelope.Type {
		case envelopeHello:
			continue
		case envelopeDisconnect:
			return nil
		case envelopeEventsAPI:
			var payload EventPayload
			if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
				log.Printf("Unparseable events_api payload: %v", err)
				continue
			}
			go l.handleEvent(ctx, payload.Event)
		}
	}
}

func (l *Listener) ack(envelopeID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn == nil {
		return
	}
	if err := l.conn.WriteJSON(Ack{EnvelopeID: envelopeID}); err != nil {
		log.Printf("Ack failed: %v", err)
	}
}

func (l *Listener) handleEvent(ctx context.Context, event Event) {
	// Never answer ourselves or message edits/joins.
	if event.BotID != "" || event.Subtype != "" {
		return
	}

	switch event.Type {
	case EventMessage:
		l.handleMessage(ctx, event)
	case EventAppMention:
		l.handleMention(ctx, event)
	}
}

func (l *Listener) handleMessage(ctx context.Context, event Event) {
	if l.channelID != "" && event.Channel != l.channelID {
		return
	}

	text := StripMentions(event.Text)
	if len(text) < minQuestionLength {
		return
	}
	if !IsQuestion(text) {
		return
	}

	log.Printf("Question de <@%s>: %s", event.User, utils.Truncate(text, 100))
	l.answer(ctx, event, text)
}

func (l *Listener) handleMention(ctx context.Context, event Event) {
	text := StripMentions(event.Text)
	if text == "" {
		l.reply(ctx, event, "Comment puis-je t'aider ? Pose-moi ta question RevOps.")
		return
	}

	log.Printf("Mention de <@%s>: %s", event.User, utils.Truncate(text, 100))
	l.answer(ctx, event, text)
}

func (l *Listener) answer(ctx context.Context, event Event, text string) {
	threadContext := ""
	if event.ThreadTS != "" {
		messages, err := l.client.ThreadReplies(ctx, event.Channel, event.ThreadTS, threadContextWindow)
		if err != nil {
			log.Printf("Erreur lecture thread: %v", err)
		} else {
			threadContext = RenderThreadContext(messages)
		}
	}

	response := l.agent.Answer(ctx, text, threadContext)
	l.reply(ctx, event, response)
	log.Printf("Reponse envoyee a <@%s>", event.User)
}

func (l *Listener) reply(ctx context.Context, event Event, text string) {
	if err := l.client.PostMessage(ctx, event.Channel, text, event.ReplyThreadTS()); err != nil {
		log.Printf("Erreur envoi reponse: %v", err)
	}
}
