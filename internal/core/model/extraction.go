package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ListingPayload is the loosely-typed shape the extraction model returns.
// Field types are forgiving: models alternate between numbers and numeric
// strings, and between comma-joined tags and JSON arrays.
type ListingPayload struct {
	Title        string      `json:"title"`
	Price        FlexFloat   `json:"price"`
	LocationName string      `json:"location_name"`
	Lat          FlexFloat   `json:"lat"`
	Long         FlexFloat   `json:"long"`
	Type         string      `json:"type"`
	VibeFeatures FlexStrings `json:"vibe_features"`
	Description  string      `json:"description"`
}

// FlexFloat unmarshals from a JSON number, a numeric string, or null.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		str = strings.TrimSpace(strings.ReplaceAll(str, ",", ""))
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// FlexStrings unmarshals from a JSON string array or a delimited string.
type FlexStrings []string

func (t *FlexStrings) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*t = nil
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var arr []string
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		*t = arr
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*t = SplitTags(joined)
	return nil
}

// SplitTags splits a comma-joined tag string, trimming whitespace and
// dropping empties.
func SplitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}
