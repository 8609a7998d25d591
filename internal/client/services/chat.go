package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/wardrobe/internal/client/client"
	"github.com/dmitrijs2005/wardrobe/internal/client/models"
	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/logging"
)

const chatGreeting = "Hi! I'm your outfit assistant. Ask me what to wear today or how to style something from your wardrobe."

// chatContextSize is how many earlier messages travel with each question.
const chatContextSize = 6

// ChatStore is the outfit assistant conversation.
type ChatStore struct {
	client client.Client
	cond   Conditions
	log    logging.Logger

	mu       sync.Mutex
	messages []models.ChatMessage
	sending  bool
	mounted  bool
}

func NewChatStore(c client.Client, cond Conditions, log logging.Logger) *ChatStore {
	return &ChatStore{
		client:   c,
		cond:     cond,
		log:      log,
		messages: []models.ChatMessage{{Role: models.ChatRoleAI, Content: chatGreeting}},
		mounted:  true,
	}
}

// Send posts text to the assistant and appends its answer. On failure the
// user's message stays in the conversation and the error is returned.
func (s *ChatStore) Send(ctx context.Context, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, fmt.Errorf("%w: message is empty", common.ErrValidation)
	}
	temperature := s.cond.Temperature()

	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return models.ChatMessage{}, common.ErrBusy
	}
	recent := s.recentLocked()
	s.messages = append(s.messages, models.ChatMessage{Role: models.ChatRoleUser, Content: text})
	s.sending = true
	s.mu.Unlock()

	req := client.ChatRequest{Message: text, Temperature: &temperature}
	if len(recent) > 0 {
		req.Context = map[string]any{"recent_messages": recent}
	}
	reply, err := s.client.OutfitChat(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sending = false

	if err != nil {
		return models.ChatMessage{}, err
	}

	msg := models.ChatMessage{Role: models.ChatRoleAI, Content: reply.Response, ImageURLs: reply.ImageURLs}
	if s.mounted {
		s.messages = append(s.messages, msg)
	}
	return msg, nil
}

func (s *ChatStore) recentLocked() []map[string]string {
	history := s.messages
	if len(history) > chatContextSize {
		history = history[len(history)-chatContextSize:]
	}
	out := make([]map[string]string, 0, len(history))
	for _, m := range history {
		out = append(out, map[string]string{"role": string(m.Role), "content": m.Content})
	}
	return out
}

// Messages returns the conversation so far, oldest first.
func (s *ChatStore) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.messages...)
}

func (s *ChatStore) Sending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}

func (s *ChatStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mounted = false
}
