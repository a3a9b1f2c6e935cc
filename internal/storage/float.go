package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Float is a float64 that keeps NaN and ±Inf across JSON and SQLite. JSON
// carries them as the strings "NaN", "+Inf" and "-Inf"; SQLite stores NaN as
// NULL, which reads back as NaN.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = Float(math.NaN())
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case "NaN":
			*f = Float(math.NaN())
		case "+Inf", "Inf":
			*f = Float(math.Inf(1))
		case "-Inf":
			*f = Float(math.Inf(-1))
		default:
			return fmt.Errorf("storage: invalid float %q", s)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// Scan implements sql.Scanner.
func (f *Float) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = Float(math.NaN())
	case float64:
		*f = Float(v)
	case int64:
		*f = Float(v)
	default:
		return fmt.Errorf("storage: cannot scan %T into Float", src)
	}
	return nil
}

func floats(v [3]float64) [3]Float {
	return [3]Float{Float(v[0]), Float(v[1]), Float(v[2])}
}
