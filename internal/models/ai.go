package models

// GeneratedItinerary is the relayed result of one generation call. It is never stored.
type GeneratedItinerary struct {
	Text  string `json:"text"`
	HTML  string `json:"html,omitempty"`
	Model string `json:"model,omitempty"`
}

// PlanResponse is the JSON envelope returned by the plan endpoints.
type PlanResponse struct {
	Success bool   `json:"success"`
	Plan    string `json:"plan,omitempty"`
	HTML    string `json:"html,omitempty"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}
