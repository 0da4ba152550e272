package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingField is returned when a payload lacks a required field.
var ErrMissingField = errors.New("missing field")

// Payload is the JSON document carried by each message.
//
//	{"num_windows": 3, "cursor_position": {"x": 120, "y": 48}}
type Payload struct {
	NumWindows     *uint32         `json:"num_windows"`
	CursorPosition *CursorPosition `json:"cursor_position"`
}

// CursorPosition is a screen coordinate.
type CursorPosition struct {
	X *uint32 `json:"x"`
	Y *uint32 `json:"y"`
}

// PayloadWidth is the length of the vector produced by DecodePayload.
const PayloadWidth = 3

// DecodePayload parses a JSON payload into [num_windows, x, y].
//
// All three fields are required; unknown fields are ignored.
func DecodePayload(data []byte) ([]float64, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	switch {
	case p.NumWindows == nil:
		return nil, fmt.Errorf("%w: num_windows", ErrMissingField)
	case p.CursorPosition == nil:
		return nil, fmt.Errorf("%w: cursor_position", ErrMissingField)
	case p.CursorPosition.X == nil:
		return nil, fmt.Errorf("%w: cursor_position.x", ErrMissingField)
	case p.CursorPosition.Y == nil:
		return nil, fmt.Errorf("%w: cursor_position.y", ErrMissingField)
	}

	return []float64{
		float64(*p.NumWindows),
		float64(*p.CursorPosition.X),
		float64(*p.CursorPosition.Y),
	}, nil
}
