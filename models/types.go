// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"
)

// Response messages
const (
	MessagePollCreated  = "Poll created!"
	MessageVoteRecorded = "Vote recorded"
	MessagePollReset    = "Poll has been reset."
)

// Request types

var (
	ErrOptionsNotArray = errors.New("options is not an array")
	ErrOptionLabel     = errors.New("option cannot be used as a label")
)

// Options stays raw so a non-array value can be told apart from bad JSON.
type CreatePollRequest struct {
	Question string          `json:"question"`
	Options  json.RawMessage `json:"options"`
}

// OptionLabels decodes the options field into one label per element.
// Strings are used as-is; numbers and booleans are converted to text.
//
// ErrOptionsNotArray is returned when the field is missing, null or not an
// array. ErrOptionLabel is returned when an element is null, an object or an
// array; labels still has one entry per element so callers can check the
// option count first.
func (r CreatePollRequest) OptionLabels() ([]string, error) {
	if len(r.Options) == 0 || string(r.Options) == "null" {
		return nil, ErrOptionsNotArray
	}

	var items []json.RawMessage
	if err := json.Unmarshal(r.Options, &items); err != nil {
		return nil, ErrOptionsNotArray
	}

	labels := make([]string, len(items))
	var err error
	for i, item := range items {
		label, ok := optionLabel(item)
		if !ok {
			err = ErrOptionLabel
			continue
		}
		labels[i] = label
	}
	return labels, err
}

func optionLabel(raw json.RawMessage) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false
	}

	switch v := v.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case json.Number:
		// 2.0 and 2 both become "2"
		f, err := v.Float64()
		if err != nil {
			return v.String(), true
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true
	default:
		return "", false
	}
}

type VoteRequest struct {
	OptionID json.RawMessage `json:"optionId"`
}

// ID returns the requested option id. Integral numbers such as 2 or 2.0 are
// accepted. A missing or null id, a fraction, or any non-number yields
// ok == false.
func (r VoteRequest) ID() (id int, ok bool) {
	if len(r.OptionID) == 0 || string(r.OptionID) == "null" {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(r.OptionID, &f); err != nil {
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) > maxExactInt {
		return 0, false
	}
	return int(f), true
}

// maxExactInt is the largest integer a float64 holds exactly.
const maxExactInt = 1 << 53

// Response types

type PollResponse struct {
	Message string `json:"message"`
	Poll    *Poll  `json:"poll"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Domain types

type Option struct {
	ID    int    `json:"id" bson:"id"`
	Label string `json:"label" bson:"label"`
	Votes int    `json:"votes" bson:"votes"`
}

type Poll struct {
	ID        string    `json:"id" bson:"poll_id"`
	Question  string    `json:"question" bson:"question"`
	Options   []Option  `json:"options" bson:"options"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// Option returns the option with the given id, or nil.
func (p *Poll) Option(id int) *Option {
	for i := range p.Options {
		if p.Options[i].ID == id {
			return &p.Options[i]
		}
	}
	return nil
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
