package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/vladimiradmaev/drink-helper/internal/auth"
	"github.com/vladimiradmaev/drink-helper/internal/cache"
	"github.com/vladimiradmaev/drink-helper/internal/domain"
	apperrors "github.com/vladimiradmaev/drink-helper/internal/errors"
	"github.com/vladimiradmaev/drink-helper/internal/logger"
	"github.com/vladimiradmaev/drink-helper/internal/stats"
	"github.com/vladimiradmaev/drink-helper/internal/utils"
)

// DefaultConsultationLimit is the page size of the consultation history.
const DefaultConsultationLimit = 50

const (
	// ApologyResponse is shown whenever no answer could be generated.
	ApologyResponse = "Sorry, a temporary error occurred. Please try again in a moment."
	// NotConfiguredResponse is shown when no AI provider is configured.
	NotConfiguredResponse = "Sorry, the AI assistant is not set up right now. Please contact the administrator."
)

// SystemPrompt sets the assistant's role for every conversation.
const SystemPrompt = `You are the AI health counselor of a drinking-habit tracking app.

Role:
- Talk with the user about their drinking habits in a friendly, understanding way
- Explain health information simply and give practical advice
- Never judge or blame; encourage positive change

Rules:
- Do not diagnose or prescribe
- Where appropriate, add a disclaimer such as "consider talking to a doctor"
- Keep a warm tone and use emoji sparingly
- Keep answers short, at most 3-4 sentences

Reference:
- Adult men: at most 40g of pure alcohol per day (about 4 glasses of soju)
- Adult women: at most 20g of pure alcohol per day (about 2 glasses of soju)
- At least 2 alcohol-free days per week are recommended
- Pure alcohol (g) = volume (ml) x ABV (%) x 0.8 / 100`

// ChatInput is one user message plus the turns before it.
type ChatInput struct {
	Message   string `json:"message"`
	History   []Turn `json:"history,omitempty"`
	AdWatched bool   `json:"adWatched"`
}

// ChatResult always carries a displayable response. Consultation is nil when
// the turn could not be stored.
type ChatResult struct {
	Response     string               `json:"response"`
	Consultation *domain.Consultation `json:"consultation,omitempty"`
}

type ConsultationService struct {
	consultations domain.ConsultationRepository
	users         domain.UserRepository
	stats         *StatsService
	generator     TextGenerator
	cache         *cache.QueryCache
}

func NewConsultationService(
	consultations domain.ConsultationRepository,
	users domain.UserRepository,
	statsService *StatsService,
	generator TextGenerator,
	queryCache *cache.QueryCache,
) *ConsultationService {
	return &ConsultationService{
		consultations: consultations,
		users:         users,
		stats:         statsService,
		generator:     generator,
		cache:         queryCache,
	}
}

// Chat answers a question with this week's drinking data and the user's
// biometrics as context, then stores the turn. Generation failures become
// ApologyResponse; they are logged, never returned.
func (s *ConsultationService) Chat(ctx context.Context, in ChatInput) (*ChatResult, error) {
	userID, err := auth.UserID(ctx, "chat")
	if err != nil {
		return nil, err
	}
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, apperrors.NewValidationError("message is required").WithContext("field", "message")
	}
	for _, turn := range in.History {
		if turn.Role != RoleUser && turn.Role != RoleModel {
			return nil, apperrors.NewValidationError("history roles must be user or model").WithContext("role", turn.Role)
		}
	}

	summary, err := s.stats.weekSummary(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "user", "chat")
	}

	response := s.generate(ctx, GenerateRequest{
		SystemInstruction: SystemPrompt,
		Context:           stats.FormatContext(summary, stats.UserContextFrom(user)),
		History:           in.History,
		Message:           message,
	})

	result := &ChatResult{Response: response}
	consultation, err := s.consultations.Create(ctx, domain.CreateConsultationParams{
		UserID:    userID,
		Question:  message,
		Response:  response,
		AdWatched: in.AdWatched,
	})
	if err != nil {
		logger.Error("Failed to store consultation", "user_id", userID, "error", err)
		return result, nil
	}

	s.cache.Invalidate(ctx, userID, cache.ScopeConsultations)
	result.Consultation = consultation
	return result, nil
}

func (s *ConsultationService) generate(ctx context.Context, req GenerateRequest) string {
	if s.generator == nil {
		return NotConfiguredResponse
	}

	text, err := s.generator.Generate(ctx, req)
	switch {
	case errors.Is(err, ErrNotConfigured):
		logger.Warn("AI provider not configured")
		return NotConfiguredResponse
	case err != nil:
		appErr := apperrors.NewExternalAPIError(err, "text generation")
		logger.Error("Chat generation failed", appErr.LogFields()...)
		return ApologyResponse
	case strings.TrimSpace(text) == "":
		logger.Warn("Chat generation returned no text")
		return ApologyResponse
	}
	return text
}

// Create stores a consultation produced elsewhere.
func (s *ConsultationService) Create(ctx context.Context, question, response string, adWatched bool) (*domain.Consultation, error) {
	userID, err := auth.UserID(ctx, "createConsultation")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(question) == "" || strings.TrimSpace(response) == "" {
		return nil, apperrors.NewValidationError("question and response are required")
	}

	c, err := s.consultations.Create(ctx, domain.CreateConsultationParams{
		UserID:    userID,
		Question:  question,
		Response:  response,
		AdWatched: adWatched,
	})
	if err != nil {
		return nil, storeError(err, "consultation", "createConsultation")
	}
	s.cache.Invalidate(ctx, userID, cache.ScopeConsultations)
	return c, nil
}

// List returns the newest consultations. A non-positive limit uses
// DefaultConsultationLimit.
func (s *ConsultationService) List(ctx context.Context, limit int) ([]domain.Consultation, error) {
	userID, err := auth.UserID(ctx, "getConsultations")
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultConsultationLimit
	}

	list, err := cache.Fetch(ctx, s.cache, cache.Key(userID, cache.ScopeConsultations, "list", strconv.Itoa(limit)),
		func(ctx context.Context) ([]domain.Consultation, error) {
			return s.consultations.ListByUser(ctx, userID, limit)
		})
	if err != nil {
		return nil, storeError(err, "consultation", "getConsultations")
	}
	return list, nil
}

// ByDateRange returns the consultations created between the start of start
// and the end of end, newest first.
func (s *ConsultationService) ByDateRange(ctx context.Context, start, end string) ([]domain.Consultation, error) {
	userID, err := auth.UserID(ctx, "getConsultationsByDateRange")
	if err != nil {
		return nil, err
	}
	from, err := utils.ParseDate(start)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithContext("field", "start")
	}
	until, err := utils.ParseDate(end)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithContext("field", "end")
	}
	to := until.Add(24*time.Hour - time.Second)

	list, err := s.consultations.ListByCreatedRange(ctx, userID, from, to)
	if err != nil {
		return nil, storeError(err, "consultation", "getConsultationsByDateRange")
	}
	return list, nil
}

func (s *ConsultationService) Delete(ctx context.Context, id string) error {
	userID, err := auth.UserID(ctx, "deleteConsultation")
	if err != nil {
		return err
	}
	if err := s.consultations.Delete(ctx, userID, id); err != nil {
		return storeError(err, "consultation", "deleteConsultation")
	}
	s.cache.Invalidate(ctx, userID, cache.ScopeConsultations)
	return nil
}
