package validation

import (
	"encoding/json"
	"math"

	"github.com/spf13/cast"
)

// Coordinate is a lat/lng value that accepts json numbers & numeric strings.
// Anything that can't be read as a finite number becomes 0.
type Coordinate float64

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// cast reads true as 1
	if _, ok := raw.(bool); ok {
		*c = 0
		return nil
	}

	value, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		*c = 0
		return nil
	}

	*c = Coordinate(value)
	return nil
}

func (c Coordinate) Float64() float64 {
	return float64(c)
}
