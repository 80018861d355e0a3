// models/api_models.go
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned when a FlexibleNumber holds neither a number nor a numeric string.
var ErrInvalidNumber = errors.New("invalid number")

// ChatRequest is the JSON body for /api/chat/.
type ChatRequest struct {
	ICAOCode       string         `json:"icao_code"`
	FlightDistance FlexibleNumber `json:"flight_distance"`
}

// ChatResponse carries either a message or an error.
type ChatResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DistanceRequest is the JSON body for /ajax/getDistance.
type DistanceRequest struct {
	Src  string `json:"src"`
	Dest string `json:"dest"`
}

// DistanceResponse is null when either code cannot be resolved.
type DistanceResponse struct {
	Distance *float64 `json:"distance"`
}

// FlexibleNumber accepts a JSON number or a numeric string ("1234.5").
// Set is false when the field was absent or null.
type FlexibleNumber struct {
	Value float64
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexibleNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = FlexibleNumber{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidNumber, err)
		}
		s = strings.TrimSpace(str)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w %q", ErrInvalidNumber, s)
	}
	*n = FlexibleNumber{Value: v, Set: true}
	return nil
}
