package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/campuspulse/faculty-feedback-backend/internal/models"
	"github.com/campuspulse/faculty-feedback-backend/utils"
)

const mappingSystemPrompt = `You are an assistant for a college feedback system administrator.
The admin describes class-faculty-subject assignments in natural language.
Respond with ONLY a JSON array, no prose and no markdown fences. Each element:
{"className": "...", "facultyId": "...", "subject": "..."}
className is the class/section label, facultyId the staff code, subject the course name.
If the description is ambiguous or contains no assignments, respond with [].`

type GroqService struct {
	client *openai.Client
	model  string
}

func NewGroqService() *GroqService {
	apiKey := strings.TrimSpace(os.Getenv("GROQ_API_KEY"))
	if apiKey == "" {
		panic("GROQ_API_KEY is not set; please add it to .env or deployment env")
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = "https://api.groq.com/openai/v1"

	model := strings.TrimSpace(os.Getenv("GROQ_MODEL"))
	if model == "" {
		model = "llama-3.1-70b-versatile"
	}

	return &GroqService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// GenerateMappings turns an admin's free-text description into mapping drafts.
// Drafts are never persisted here; the admin reviews and confirms each one
// through the normal mapping create endpoint.
func (g *GroqService) GenerateMappings(ctx context.Context, prompt string) ([]models.MappingDraft, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: mappingSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, fmt.Errorf("groq API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from Groq")
	}
	return ParseMappingDrafts(resp.Choices[0].Message.Content)
}

// ParseMappingDrafts decodes the model output into validated drafts. Models
// occasionally wrap JSON in markdown fences despite instructions, so fences
// are stripped before decoding. Drafts failing field validation are rejected
// as a whole: a half-parsed schema is worse than an error the admin can see.
func ParseMappingDrafts(raw string) ([]models.MappingDraft, error) {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var drafts []models.MappingDraft
	if err := json.Unmarshal([]byte(cleaned), &drafts); err != nil {
		return nil, fmt.Errorf("model returned invalid mapping JSON: %w", err)
	}

	for i := range drafts {
		drafts[i].ClassName = strings.TrimSpace(drafts[i].ClassName)
		drafts[i].FacultyID = strings.TrimSpace(drafts[i].FacultyID)
		drafts[i].Subject = strings.TrimSpace(drafts[i].Subject)
		if err := utils.Validate.Struct(drafts[i]); err != nil {
			return nil, fmt.Errorf("model returned invalid mapping draft: %w", err)
		}
	}
	return drafts, nil
}
