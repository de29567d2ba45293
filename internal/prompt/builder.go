// Package prompt renders travel requests into the text sent to the generator.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"travel-itinerary-service/internal/intake"
	"travel-itinerary-service/internal/models"
	"travel-itinerary-service/internal/utils"
)

//go:embed templates/itinerary.tmpl
var defaultTemplate string

const defaultCurrency = "INR"

// Builder renders TravelRequests through a fixed template.
type Builder struct {
	tmpl     *template.Template
	currency string
}

// NewBuilder parses the embedded template, or the one at templateFile when it
// is set.
func NewBuilder(templateFile, currency string) (*Builder, error) {
	text := defaultTemplate
	if templateFile != "" {
		custom, err := utils.LoadPromptFromFile(templateFile)
		if err != nil {
			return nil, fmt.Errorf("load prompt template: %w", err)
		}
		text = custom
	}

	tmpl, err := template.New("itinerary").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}
	if currency == "" {
		currency = defaultCurrency
	}
	return &Builder{tmpl: tmpl, currency: currency}, nil
}

// fields is what the template sees. Every value is already text.
type fields struct {
	FromLocation      string
	StartDate         string
	EndDate           string
	StartTime         string
	ReturnTime        string
	GroupSize         string
	TotalBudget       string
	PredefinedTheme   string
	NumDestinations   string
	TravelingMethod   string
	Destinations      string
	FirstDestination  string
	SecondDestination string
	Currency          string
}

// Build validates req and renders it. A missing field yields a
// *models.MissingFieldError.
func (b *Builder) Build(req models.TravelRequest) (string, error) {
	if err := intake.Validate(req); err != nil {
		return "", err
	}

	f := fields{
		FromLocation:      req.FromLocation,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		StartTime:         req.StartTime,
		ReturnTime:        req.ReturnTime,
		GroupSize:         strconv.Itoa(req.GroupSize),
		TotalBudget:       budgetText(req),
		PredefinedTheme:   req.PredefinedTheme,
		NumDestinations:   strconv.Itoa(req.NumDestinations),
		TravelingMethod:   req.TravelingMethod,
		Destinations:      JoinDestinations(req.Destinations),
		FirstDestination:  destinationName(req.Destinations, 0, "your first destination"),
		SecondDestination: destinationName(req.Destinations, 1, "your next destination"),
		Currency:          b.currency,
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, f); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}

func budgetText(req models.TravelRequest) string {
	if req.TotalBudgetText != "" {
		return req.TotalBudgetText
	}
	return strconv.FormatFloat(req.TotalBudget, 'f', -1, 64)
}

// JoinDestinations describes the destinations as one comma separated string,
// e.g. "Goa (hotel: Taj, travel: air, 3 days), Gokarna".
func JoinDestinations(dests []models.Destination) string {
	if len(dests) == 0 {
		return "none specified, suggest suitable destinations"
	}

	parts := make([]string, 0, len(dests))
	for _, d := range dests {
		var details []string
		if d.Hotel != "" {
			details = append(details, "hotel: "+d.Hotel)
		}
		if d.TravelPreference != "" {
			details = append(details, "travel: "+d.TravelPreference)
		}
		switch {
		case d.StayDays == 1:
			details = append(details, "1 day")
		case d.StayDays > 1:
			details = append(details, strconv.Itoa(d.StayDays)+" days")
		}

		if len(details) == 0 {
			parts = append(parts, d.Name)
			continue
		}
		parts = append(parts, d.Name+" ("+strings.Join(details, ", ")+")")
	}
	return strings.Join(parts, ", ")
}

func destinationName(dests []models.Destination, i int, fallback string) string {
	if i < len(dests) {
		return dests[i].Name
	}
	return fallback
}
