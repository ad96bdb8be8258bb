package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// ParseDate reads a calendar day given as YYYY-MM-DD or as an RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return t, nil
}

// bodyDate decodes a JSON date field through ParseDate. A null or absent
// field leaves value nil.
type bodyDate struct {
	value *time.Time
}

func (d *bodyDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.value = &t
	return nil
}

func (r *CreateDraftRequest) UnmarshalJSON(data []byte) error {
	type plain CreateDraftRequest
	aux := struct {
		*plain
		Date bodyDate `json:"date"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Date = time.Time{}
	if aux.Date.value != nil {
		r.Date = *aux.Date.value
	}
	return nil
}

func (r *UpdateDraftRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateDraftRequest
	aux := struct {
		*plain
		Date bodyDate `json:"date"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Date = aux.Date.value
	return nil
}

func (r *ReverseEntryRequest) UnmarshalJSON(data []byte) error {
	type plain ReverseEntryRequest
	aux := struct {
		*plain
		Date bodyDate `json:"date"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Date = aux.Date.value
	return nil
}
