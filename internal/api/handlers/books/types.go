package books

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// flexInt accepts a JSON number or a numeric string and defaults to 0 on
// anything unparsable. The old clients sent quantity both ways, and the old
// backend persisted parseInt(q, 10) || 0; keep that sanitization.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	s := string(b)
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			*f = 0
			return nil
		}
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}

type bookBody struct {
	Name        string  `json:"name"`
	Author      string  `json:"author"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Rating      string  `json:"rating"`
	Description string  `json:"description"`
	Quantity    flexInt `json:"quantity"`
}
