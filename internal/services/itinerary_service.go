package services

import (
	"context"
	"strings"

	"travel-itinerary-service/internal/models"
	"travel-itinerary-service/internal/utils"

	"go.uber.org/zap"
)

// PromptBuilder renders a travel request into prompt text.
type PromptBuilder interface {
	Build(req models.TravelRequest) (string, error)
}

// ItineraryService runs the prompt → generation → relay pipeline for one request.
type ItineraryService struct {
	Builder    PromptBuilder
	Generator  TextGenerator
	Model      string
	RenderHTML bool
	log        *zap.Logger
}

func NewItineraryService(builder PromptBuilder, generator TextGenerator, model string, renderHTML bool, log *zap.Logger) *ItineraryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ItineraryService{
		Builder:    builder,
		Generator:  generator,
		Model:      model,
		RenderHTML: renderHTML,
		log:        log,
	}
}

func (s *ItineraryService) GeneratePlan(ctx context.Context, req models.TravelRequest) (*models.GeneratedItinerary, error) {
	prompt, err := s.Builder.Build(req)
	if err != nil {
		return nil, err
	}
	s.log.Debug("prompt built", zap.Int("chars", len(prompt)), zap.String("from", req.FromLocation))

	text, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	// Generators other than AIService may not trim.
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.ErrEmptyResult
	}

	itinerary := &models.GeneratedItinerary{Text: text, Model: s.Model}
	if s.RenderHTML {
		itinerary.HTML = utils.RenderMarkdown(text)
	}
	return itinerary, nil
}
