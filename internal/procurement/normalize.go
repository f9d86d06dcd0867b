// FILE: internal/procurement/normalize.go
//
// The EIS parser output is not shape-stable across snapshot generations:
// chronology events name their label field differently, and deliveryPlaces
// arrives either as an array or a single object. Both ambiguities are kept
// raw at the DTO layer and resolved here, in one place.
package procurement

import (
	"encoding/json"
	"strings"

	"procurement-dashboard-be/internal/dto"
)

// ChronologyEvent is the normalized timeline entry.
type ChronologyEvent struct {
	Label string `json:"label"`
	Date  string `json:"date"`
}

// chronology label keys seen across snapshot generations, in priority order.
var chronologyLabelKeys = []string{"event", "type", "fieldName", "eventType"}

var chronologyDateKeys = []string{"date", "publishDate", "docDate"}

// NormalizeChronology accepts every known event shape; entries with no
// recognizable label are dropped rather than rendered blank.
func NormalizeChronology(raw []json.RawMessage) []ChronologyEvent {
	events := make([]ChronologyEvent, 0, len(raw))
	for _, item := range raw {
		var m map[string]json.RawMessage
		if err := json.Unmarshal(item, &m); err != nil {
			continue
		}

		label := firstString(m, chronologyLabelKeys)
		if label == "" {
			continue
		}

		events = append(events, ChronologyEvent{
			Label: label,
			Date:  firstString(m, chronologyDateKeys),
		})
	}
	return events
}

func firstString(m map[string]json.RawMessage, keys []string) string {
	for _, k := range keys {
		raw, ok := m[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

type deliveryPlaceObject struct {
	DeliveryPlace *string `json:"deliveryPlace"`
	Address       *string `json:"address"`
}

func (p deliveryPlaceObject) text() string {
	if p.DeliveryPlace != nil && strings.TrimSpace(*p.DeliveryPlace) != "" {
		return strings.TrimSpace(*p.DeliveryPlace)
	}
	if p.Address != nil && strings.TrimSpace(*p.Address) != "" {
		return strings.TrimSpace(*p.Address)
	}
	return ""
}

// NormalizeDeliveryPlaces flattens every observed deliveryPlaces shape —
// array of objects, single object, array of strings, bare string — into a
// list of address lines.
func NormalizeDeliveryPlaces(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var objects []deliveryPlaceObject
	if err := json.Unmarshal(raw, &objects); err == nil {
		return collectPlaces(objects)
	}

	var object deliveryPlaceObject
	if err := json.Unmarshal(raw, &object); err == nil {
		return collectPlaces([]deliveryPlaceObject{object})
	}

	var lines []string
	if err := json.Unmarshal(raw, &lines); err == nil {
		return trimNonEmpty(lines)
	}

	var line string
	if err := json.Unmarshal(raw, &line); err == nil {
		return trimNonEmpty([]string{line})
	}

	return nil
}

func collectPlaces(objects []deliveryPlaceObject) []string {
	out := make([]string, 0, len(objects))
	for _, o := range objects {
		if t := o.text(); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func trimNonEmpty(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// GuaranteeAmount resolves an enforcement amount: explicit value wins,
// otherwise it is derived from the percent share of the lot price.
func GuaranteeAmount(amount, part, basePrice *float64) *float64 {
	if amount != nil {
		return amount
	}
	if part != nil && basePrice != nil {
		derived := *basePrice * *part / 100
		return &derived
	}
	return nil
}

// PrimaryCustomer returns the first customer of a lot, if any.
func PrimaryCustomer(lot *dto.Lot) *dto.Customer {
	if lot == nil || len(lot.Customers.Customer) == 0 {
		return nil
	}
	return &lot.Customers.Customer[0]
}
