package aiclient

import (
	"encoding/json"
	"fmt"
	"strings"

	"go-talentmatch-backend/internal/domain"
)

// parseResponse is the wire shape of POST /parse-resume. Older versions of
// the AI service returned experience and education as arrays of objects, the
// current one returns plain strings. Both are accepted and flattened to one
// internal shape before anything is persisted.
type parseResponse struct {
	Skills     []string       `json:"skills"`
	Experience []flexibleItem `json:"experience"`
	Education  []flexibleItem `json:"education"`
	Summary    string         `json:"summary"`
}

// flexibleItem decodes either a JSON string or an object with descriptive
// fields into a single display string.
type flexibleItem string

func (f *flexibleItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleItem(s)
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("experience/education entry is neither string nor object: %w", err)
	}

	// Legacy object shapes carried title/company/degree/institution fields in
	// no guaranteed combination; join whatever is present.
	var parts []string
	for _, key := range []string{"title", "position", "degree", "company", "institution", "duration", "years", "description"} {
		if v, ok := obj[key].(string); ok && v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		raw, _ := json.Marshal(obj)
		*f = flexibleItem(string(raw))
		return nil
	}
	*f = flexibleItem(strings.Join(parts, ", "))
	return nil
}

func (p *parseResponse) normalize() *domain.ParsedResume {
	out := &domain.ParsedResume{
		Skills:     p.Skills,
		Experience: make([]string, 0, len(p.Experience)),
		Education:  make([]string, 0, len(p.Education)),
		Summary:    p.Summary,
	}
	if out.Skills == nil {
		out.Skills = []string{}
	}
	for _, e := range p.Experience {
		out.Experience = append(out.Experience, string(e))
	}
	for _, e := range p.Education {
		out.Education = append(out.Education, string(e))
	}
	return out
}
