package domain

import (
	"encoding/json"
	"fmt"
)

// productJSONKeys lists the JSON keys owned by Product's typed fields
var productJSONKeys = []string{
	"id", "ledgerId", "assetId", "name", "description", "quantity",
	"price", "vat", "futurePrice", "futureVat", "createdAt",
}

// MarshalJSON flattens Attributes next to the typed fields
// Typed fields win when an attribute uses the same key
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	known, err := json.Marshal(alias(p))
	if err != nil {
		return nil, err
	}
	if len(p.Attributes) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(p.Attributes)+len(productJSONKeys))
	for key, value := range p.Attributes {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode product attribute %q: %w", key, err)
		}
		merged[key] = raw
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for key, raw := range fields {
		merged[key] = raw
	}

	return json.Marshal(merged)
}

// UnmarshalJSON fills the typed fields and keeps every other key in Attributes
// A typed key whose value has the wrong JSON type is kept in Attributes too
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Product
	typed := map[string]func(json.RawMessage) bool{
		"id":          func(v json.RawMessage) bool { return decodeField(v, &out.ID) },
		"ledgerId":    func(v json.RawMessage) bool { return decodeField(v, &out.LedgerID) },
		"assetId":     func(v json.RawMessage) bool { return decodeField(v, &out.AssetID) },
		"name":        func(v json.RawMessage) bool { return decodeField(v, &out.Name) },
		"description": func(v json.RawMessage) bool { return decodeField(v, &out.Description) },
		"quantity":    func(v json.RawMessage) bool { return decodeField(v, &out.Quantity) },
		"price":       func(v json.RawMessage) bool { return decodeField(v, &out.Price) },
		"vat":         func(v json.RawMessage) bool { return decodeField(v, &out.VAT) },
		"futurePrice": func(v json.RawMessage) bool { return decodeField(v, &out.FuturePrice) },
		"futureVat":   func(v json.RawMessage) bool { return decodeField(v, &out.FutureVAT) },
		"createdAt":   func(v json.RawMessage) bool { return decodeField(v, &out.CreatedAt) },
	}

	for key, value := range raw {
		if set, ok := typed[key]; ok && set(value) {
			continue
		}
		var attr any
		if err := json.Unmarshal(value, &attr); err != nil {
			return err
		}
		if out.Attributes == nil {
			out.Attributes = make(map[string]any)
		}
		out.Attributes[key] = attr
	}

	*p = out
	return nil
}

// decodeField sets *dst only when raw decodes cleanly into its type
func decodeField[T any](raw json.RawMessage, dst *T) bool {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	*dst = v
	return true
}
