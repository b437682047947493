package conf

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StringSize is a size that is unmarshaled from a string.
type StringSize uint64

// MarshalJSON implements json.Marshaler.
func (s StringSize) MarshalJSON() ([]byte, error) {
	v := uint64(s)

	switch {
	case v >= 1024*1024*1024 && v%(1024*1024*1024) == 0:
		return json.Marshal(strconv.FormatUint(v/(1024*1024*1024), 10) + "G")

	case v >= 1024*1024 && v%(1024*1024) == 0:
		return json.Marshal(strconv.FormatUint(v/(1024*1024), 10) + "M")

	case v >= 1024 && v%1024 == 0:
		return json.Marshal(strconv.FormatUint(v/1024, 10) + "K")
	}

	return json.Marshal(strconv.FormatUint(v, 10) + "B")
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringSize) UnmarshalJSON(b []byte) error {
	var in string
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}

	in = strings.ToUpper(strings.TrimSpace(in))
	if in == "" {
		return fmt.Errorf("invalid size")
	}

	multiplier := uint64(1)
	switch {
	case strings.HasSuffix(in, "G"):
		multiplier = 1024 * 1024 * 1024
		in = in[:len(in)-1]

	case strings.HasSuffix(in, "M"):
		multiplier = 1024 * 1024
		in = in[:len(in)-1]

	case strings.HasSuffix(in, "K"):
		multiplier = 1024
		in = in[:len(in)-1]

	case strings.HasSuffix(in, "B"):
		in = in[:len(in)-1]
	}

	v, err := strconv.ParseUint(strings.TrimSpace(in), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid size: '%s'", in)
	}

	*s = StringSize(v * multiplier)
	return nil
}

// UnmarshalEnv implements env.Unmarshaler.
func (s *StringSize) UnmarshalEnv(_ string, v string) error {
	return s.UnmarshalJSON([]byte(`"` + v + `"`))
}
