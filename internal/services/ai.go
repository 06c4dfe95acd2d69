package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/task-tracker/internal/constants"
	apperrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/models"
)

var (
	ErrAIServiceNotConfigured = apperrors.Unavailable("AI service is not configured")
	ErrAINoTasksGenerated     = apperrors.Validation("AI did not generate any tasks")
	ErrAINoValidTasks         = apperrors.Validation("no valid tasks could be created from AI output")
)

type AIService struct {
	client *openai.Client
	model  string
}

// GeneratedTask is a draft extracted from free text. Drafts are not stored
// until they pass through AddTask.
type GeneratedTask struct {
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

func NewAIService(apiKey, model string) *AIService {
	return NewAIServiceWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewAIServiceWithConfig allows pointing the client at another base URL.
func NewAIServiceWithConfig(cfg openai.ClientConfig, model string) *AIService {
	if model == "" {
		model = openai.GPT4o
	}
	return &AIService{client: openai.NewClientWithConfig(cfg), model: model}
}

// GenerateTasksFromText asks the model to extract tasks from text
func (s *AIService) GenerateTasksFromText(ctx context.Context, text string, today time.Time) ([]GeneratedTask, error) {
	if s == nil || s.client == nil {
		return nil, ErrAIServiceNotConfigured
	}

	prompt := fmt.Sprintf(`You extract actionable tasks from text.

Today: %s

Text:
%s

Reply with a JSON array only, no prose:
[
  {
    "description": "short task description",
    "due_date": "YYYY-MM-DD; resolve relative dates like 'tomorrow'; use today if none is given",
    "category": "one of Work, Personal, Study, Other",
    "priority": "one of High, Medium, Low"
  }
]
Return [] if there are no tasks.`, today.Format(constants.DateLayout), text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
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

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var tasks []GeneratedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return tasks, nil
}

// GenerateTasks extracts drafts from text and keeps the ones AddTask would
// accept, normalized to known categories.
func (s *TaskService) GenerateTasks(ctx context.Context, ai *AIService, text string) ([]GeneratedTask, error) {
	if ai == nil {
		return nil, ErrAIServiceNotConfigured
	}

	drafts, err := ai.GenerateTasksFromText(ctx, text, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(drafts) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(drafts) > constants.MaxAIGeneratedTasks {
		return nil, apperrors.Validation(fmt.Sprintf("AI generated too many tasks (max %d)", constants.MaxAIGeneratedTasks))
	}

	valid := make([]GeneratedTask, 0, len(drafts))
	for _, draft := range drafts {
		draft.Description = strings.TrimSpace(draft.Description)
		if draft.Description == "" || !datePattern.MatchString(draft.DueDate) {
			continue
		}
		draft.Category = string(models.ParseCategory(draft.Category))
		valid = append(valid, draft)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}

	return valid, nil
}

// ToCreateInput turns a draft into AddTask input for the given assignee.
func (g GeneratedTask) ToCreateInput(assignee uint64) CreateTaskInput {
	return CreateTaskInput{
		Description: g.Description,
		Category:    models.ParseCategory(g.Category),
		DueDate:     g.DueDate,
		AssignedTo:  assignee,
		Priority:    g.Priority,
	}
}
