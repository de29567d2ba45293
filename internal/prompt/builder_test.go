package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"travel-itinerary-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleRequest() models.TravelRequest {
	return models.TravelRequest{
		FromLocation:    "Bengaluru",
		StartDate:       "2025-02-14",
		EndDate:         "2025-02-18",
		StartTime:       "05:45",
		ReturnTime:      "23:10",
		GroupSize:       3,
		TotalBudget:     72500.75,
		PredefinedTheme: "wildlife",
		NumDestinations: 2,
		TravelingMethod: "car",
		Destinations: []models.Destination{
			{Name: "Kabini", Hotel: "Orange County", StayDays: 2},
			{Name: "Coorg", TravelPreference: "car", StayDays: 1},
		},
	}
}

func TestBuildContainsEveryField(t *testing.T) {
	b, err := NewBuilder("", "")
	require.NoError(t, err)

	req := sampleRequest()
	text, err := b.Build(req)
	require.NoError(t, err)

	for _, want := range []string{
		req.FromLocation, req.StartDate, req.EndDate, req.StartTime, req.ReturnTime,
		"3", "72500.75", req.PredefinedTheme, "2", req.TravelingMethod,
		"Kabini", "Orange County", "Coorg", "INR",
	} {
		assert.Contains(t, text, want)
	}
	assert.Contains(t, text, "Destinations: Kabini (hotel: Orange County, 2 days), Coorg (travel: car, 1 day)")
}

func TestBuildKeepsSubmittedBudgetText(t *testing.T) {
	b, err := NewBuilder("", "")
	require.NoError(t, err)

	req := sampleRequest()
	req.TotalBudget = 1500.5
	req.TotalBudgetText = "1500.50"

	text, err := b.Build(req)
	require.NoError(t, err)
	assert.Contains(t, text, "1500.50")
}

func TestBuildMissingField(t *testing.T) {
	b, err := NewBuilder("", "")
	require.NoError(t, err)

	req := sampleRequest()
	req.PredefinedTheme = ""

	_, err = b.Build(req)
	var missing *models.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "predefinedTheme", missing.Field)
}

func TestBuildWithoutDestinations(t *testing.T) {
	b, err := NewBuilder("", "EUR")
	require.NoError(t, err)

	req := sampleRequest()
	req.Destinations = nil

	text, err := b.Build(req)
	require.NoError(t, err)
	assert.Contains(t, text, "your first destination")
	assert.Contains(t, text, "EUR")
	assert.False(t, strings.Contains(text, "<no value>"))
}

func TestBuildIsDeterministic(t *testing.T) {
	b, err := NewBuilder("", "")
	require.NoError(t, err)

	first, err := b.Build(sampleRequest())
	require.NoError(t, err)
	second, err := b.Build(sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildCustomTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.FromLocation}} -> {{.Destinations}} for {{.GroupSize}}"), 0o600))

	b, err := NewBuilder(path, "")
	require.NoError(t, err)

	text, err := b.Build(sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "Bengaluru -> Kabini (hotel: Orange County, 2 days), Coorg (travel: car, 1 day) for 3", text)
}

func TestNewBuilderErrors(t *testing.T) {
	_, err := NewBuilder(filepath.Join(t.TempDir(), "missing.tmpl"), "")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.FromLocation"), 0o600))
	_, err = NewBuilder(path, "")
	assert.Error(t, err)
}
