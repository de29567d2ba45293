// Package intake turns browser form posts and JSON bodies into validated
// travel requests.
package intake

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"travel-itinerary-service/internal/models"

	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap"
)

// Policy decides what happens when numDestinations disagrees with the number of
// destinations actually submitted.
type Policy string

const (
	PolicyTolerate Policy = "tolerate"
	PolicyReject   Policy = "reject"
)

// ParsePolicy maps a config value to a Policy, defaulting to PolicyTolerate.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyTolerate:
		return PolicyTolerate, nil
	case PolicyReject:
		return PolicyReject, nil
	default:
		return "", fmt.Errorf("unknown destination policy %q", s)
	}
}

const dateLayout = "2006-01-02"

var (
	// destination1, hotel1, travelPreference1, "Number od Days1" as posted by the dashboard script.
	flatDestinationKey = regexp.MustCompile(`^(destination|hotel|travelPreference|stayDays|Number o[df] Days)(\d+)$`)
	// destinations-0-hotel as posted by a server-rendered field list.
	listDestinationKey = regexp.MustCompile(`^destinations-(\d+)-(\w+)$`)
	decodeFieldName    = regexp.MustCompile(`'([A-Za-z0-9_.\[\]]+)'`)
)

var destinationFields = map[string]string{
	"destination":       "name",
	"name":              "name",
	"hotel":             "hotel",
	"travelPreference":  "travel_preference",
	"travel_preference": "travel_preference",
	"stayDays":          "stay_days",
	"stay_days":         "stay_days",
	"number_of_days":    "stay_days",
	"Number od Days":    "stay_days",
	"Number of Days":    "stay_days",
}

var snakeAliases = map[string]string{
	"from_location":    "fromLocation",
	"start_date":       "startDate",
	"end_date":         "endDate",
	"start_time":       "startTime",
	"return_time":      "returnTime",
	"group_size":       "groupSize",
	"total_budget":     "totalBudget",
	"predefined_theme": "predefinedTheme",
	"num_destinations": "numDestinations",
	"traveling_method": "travelingMethod",
}

// Decoder builds TravelRequests from loosely typed input.
type Decoder struct {
	policy Policy
	log    *zap.Logger
}

func NewDecoder(policy Policy, log *zap.Logger) *Decoder {
	if log == nil {
		log = zap.NewNop()
	}
	if policy == "" {
		policy = PolicyTolerate
	}
	return &Decoder{policy: policy, log: log}
}

// DecodeValues decodes a form post. Only the first value of each key is used.
func (d *Decoder) DecodeValues(values map[string][]string) (models.TravelRequest, error) {
	raw := make(map[string]any, len(values))
	for k, v := range values {
		if len(v) > 0 {
			raw[k] = v[0]
		}
	}
	return d.Decode(raw)
}

// Decode converts raw input into a validated TravelRequest. Numeric fields may
// arrive as strings.
func (d *Decoder) Decode(raw map[string]any) (models.TravelRequest, error) {
	var req models.TravelRequest

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.DecodeHookFuncType(strictNumberHook),
		TagName:          "mapstructure",
		Result:           &req,
	})
	if err != nil {
		return req, err
	}
	fields := normalize(raw)
	if err := dec.Decode(fields); err != nil {
		reason := "malformed value"
		var ne *numberError
		if errors.As(err, &ne) {
			reason = ne.reason
		}
		return req, &models.ValidationError{Field: decodeField(err), Reason: reason}
	}
	req.TotalBudgetText = numberText(fields["totalBudget"])

	if err := Validate(req); err != nil {
		return req, err
	}
	if err := checkDates(req); err != nil {
		return req, err
	}

	if len(req.Destinations) != req.NumDestinations {
		if d.policy == PolicyReject {
			return req, &models.ValidationError{
				Field:  "destinations",
				Reason: fmt.Sprintf("expected %d destinations, got %d", req.NumDestinations, len(req.Destinations)),
			}
		}
		d.log.Warn("destination count mismatch",
			zap.Int("numDestinations", req.NumDestinations),
			zap.Int("destinations", len(req.Destinations)))
	}
	return req, nil
}

type numberError struct {
	reason string
}

func (e *numberError) Error() string { return e.reason }

// strictNumberHook runs before weak decoding of numeric fields. Strings are read
// as base 10 only, fractional values never land in an int and booleans are not
// numbers.
func strictNumberHook(_, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return toWholeNumber(data)
	case reflect.Float32, reflect.Float64:
		if _, ok := data.(bool); ok {
			return nil, &numberError{reason: "must be a number"}
		}
		if n, ok := data.(json.Number); ok {
			return n.String(), nil
		}
	}
	return data, nil
}

func toWholeNumber(data any) (any, error) {
	switch v := data.(type) {
	case bool:
		return nil, &numberError{reason: "must be a whole number"}
	case json.Number:
		return parseWhole(v.String())
	case string:
		if strings.TrimSpace(v) == "" {
			return v, nil
		}
		return parseWhole(v)
	case float32:
		return wholeFloat(float64(v))
	case float64:
		return wholeFloat(v)
	}
	return data, nil
}

func parseWhole(s string) (any, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &numberError{reason: "must be a whole number"}
	}
	return wholeFloat(f)
}

func wholeFloat(f float64) (any, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return nil, &numberError{reason: "must be a whole number"}
	}
	return int64(f), nil
}

// numberText keeps a numeric field as the client wrote it.
func numberText(v any) string {
	switch n := v.(type) {
	case string:
		return strings.TrimSpace(n)
	case json.Number:
		return n.String()
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	}
	return ""
}

func checkDates(req models.TravelRequest) error {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return &models.ValidationError{Field: "startDate", Reason: "must be formatted as " + dateLayout}
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return &models.ValidationError{Field: "endDate", Reason: "must be formatted as " + dateLayout}
	}
	if end.Before(start) {
		return &models.ValidationError{Field: "endDate", Reason: "must not be before startDate"}
	}
	return nil
}

func decodeField(err error) string {
	if m := decodeFieldName.FindStringSubmatch(err.Error()); m != nil {
		return m[1]
	}
	return ""
}

// normalize renames snake_case keys and folds indexed destination keys into a
// destinations list. An explicit destinations value always wins.
func normalize(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	indexed := map[int]map[string]any{}

	for k, v := range raw {
		if alias, ok := snakeAliases[k]; ok {
			if _, taken := raw[alias]; !taken {
				out[alias] = v
			}
			continue
		}
		if m := flatDestinationKey.FindStringSubmatch(k); m != nil {
			addIndexed(indexed, m[2], destinationFields[m[1]], v)
			continue
		}
		if m := listDestinationKey.FindStringSubmatch(k); m != nil {
			if field, ok := destinationFields[m[2]]; ok {
				addIndexed(indexed, m[1], field, v)
			}
			continue
		}
		out[k] = v
	}

	if _, ok := out["destinations"]; ok || len(indexed) == 0 {
		return out
	}

	idx := make([]int, 0, len(indexed))
	for i := range indexed {
		idx = append(idx, i)
	}
	sort.Ints(idx)

	list := make([]any, 0, len(idx))
	for _, i := range idx {
		if blank(indexed[i]) {
			continue
		}
		list = append(list, indexed[i])
	}
	out["destinations"] = list
	return out
}

func addIndexed(indexed map[int]map[string]any, index, field string, v any) {
	i, err := strconv.Atoi(index)
	if err != nil || field == "" {
		return
	}
	if indexed[i] == nil {
		indexed[i] = map[string]any{}
	}
	indexed[i][field] = v
}

func blank(fields map[string]any) bool {
	for _, v := range fields {
		if s, ok := v.(string); !ok || strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
