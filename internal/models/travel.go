package models

// Themes accepted for TravelRequest.PredefinedTheme.
var Themes = []string{
	"family", "honeymoon", "office_trip", "friends_trip", "adventure", "relaxation",
	"cultural", "nature", "beach", "historical", "wildlife", "food_wine", "luxury",
	"romantic_getaway", "solo_travel",
}

// TravelingMethods accepted for TravelRequest.TravelingMethod. "mix" lets each
// destination carry its own travel preference.
var TravelingMethods = []string{"air", "train", "bus", "car", "mix"}

// TravelRequest is the intake payload for a single itinerary. Dates and times stay
// in the textual form the client sent them in.
type TravelRequest struct {
	FromLocation    string        `json:"fromLocation" mapstructure:"fromLocation" validate:"required"`
	StartDate       string        `json:"startDate" mapstructure:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate         string        `json:"endDate" mapstructure:"endDate" validate:"required,datetime=2006-01-02"`
	StartTime       string        `json:"startTime" mapstructure:"startTime" validate:"required,datetime=15:04"`
	ReturnTime      string        `json:"returnTime" mapstructure:"returnTime" validate:"required,datetime=15:04"`
	GroupSize       int           `json:"groupSize" mapstructure:"groupSize" validate:"required,gt=0"`
	TotalBudget     float64       `json:"totalBudget" mapstructure:"totalBudget" validate:"required,gt=0"`
	PredefinedTheme string        `json:"predefinedTheme" mapstructure:"predefinedTheme" validate:"required,oneof=family honeymoon office_trip friends_trip adventure relaxation cultural nature beach historical wildlife food_wine luxury romantic_getaway solo_travel"`
	NumDestinations int           `json:"numDestinations" mapstructure:"numDestinations" validate:"required,gt=0"`
	TravelingMethod string        `json:"travelingMethod" mapstructure:"travelingMethod" validate:"required,oneof=air train bus car mix"`
	Destinations    []Destination `json:"destinations" mapstructure:"destinations" validate:"dive"`

	// TotalBudgetText is the budget exactly as submitted, e.g. "1500.50".
	TotalBudgetText string `json:"-" mapstructure:"-"`
}

type Destination struct {
	Name             string `json:"name" mapstructure:"name" validate:"required"`
	Hotel            string `json:"hotel,omitempty" mapstructure:"hotel"`
	TravelPreference string `json:"travel_preference,omitempty" mapstructure:"travel_preference" validate:"omitempty,oneof=air train bus car"`
	StayDays         int    `json:"stay_days,omitempty" mapstructure:"stay_days" validate:"gte=0"`
}
