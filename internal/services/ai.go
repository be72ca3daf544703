package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/briefmate/briefmate/internal/constants"
	"github.com/sashabaranov/go-openai"
)

// TaskSuggester proposes task titles for a brief.
type TaskSuggester interface {
	SuggestTasks(ctx context.Context, title, description string) ([]GeneratedTask, error)
}

type AIService struct {
	client *openai.Client
}

type GeneratedTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// SuggestTasks asks the model to break a brief down into concrete tasks
func (s *AIService) SuggestTasks(ctx context.Context, title, description string) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`Tu es un assistant de gestion de projet pour freelances. Découpe le brief suivant en tâches concrètes.

Titre du brief: %s

Description:
%s

Réponds uniquement avec un tableau JSON de la forme:
[
  {
    "title": "titre court de la tâche",
    "description": "précision optionnelle, chaîne vide sinon"
  }
]

Règles:
- Au plus %d tâches, dans l'ordre où elles doivent être réalisées
- Si le brief ne contient aucune tâche identifiable, renvoie []
- Pas de texte en dehors du JSON`, title, description, constants.MaxAIGeneratedTasks)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)

	var tasks []GeneratedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return tasks, nil
}

// stripCodeFence removes a surrounding ```json fence that models sometimes add
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
