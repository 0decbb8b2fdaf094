// Package persona holds the read-only reference data a chat session is
// grounded in: persona records, per-city sentiment profiles, and per-city
// resource lists, all loaded once at startup.
package persona

import (
	"encoding/json"
	"fmt"
	"os"
)

type Demographics struct {
	Age        int    `json:"age"`
	City       string `json:"city"`
	Occupation string `json:"occupation"`
}

type LifeContext struct {
	Living  string `json:"living"`
	Commute string `json:"commute"`
	Family  string `json:"family"`
}

type Experiences struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
	Coping   []string `json:"coping"`
}

type Record struct {
	Name         string       `json:"name"`
	Demographics Demographics `json:"demographics"`
	LifeContext  LifeContext  `json:"life_context"`
	Experiences  Experiences  `json:"experiences"`
	Values       []string     `json:"values"`
	Tone         string       `json:"tone"`
}

// SentimentHint biases a persona's stated emotional baseline. Fields are
// pointers so a profile that omits a value falls back to the generic
// baseline line rather than reading as 0%.
type SentimentHint struct {
	Fear       *float64 `json:"fear"`
	Confidence *float64 `json:"confidence"`
}

type Resource struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// defaultResourceKey is the fallback group used when a city has no
// dedicated resource list.
const defaultResourceKey = "default"

// Store is an immutable lookup over the three reference documents. Safe for
// concurrent readers; never mutated after Load.
type Store struct {
	personas   map[string]Record
	order      []string
	sentiments map[string]SentimentHint
	resources  map[string][]Resource
}

func Load(personasPath, sentimentsPath, resourcesPath string) (*Store, error) {
	var records []Record
	if err := readJSON(personasPath, &records); err != nil {
		return nil, fmt.Errorf("load personas: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("load personas: %s contains no records", personasPath)
	}

	sentiments := map[string]SentimentHint{}
	if err := readJSON(sentimentsPath, &sentiments); err != nil {
		return nil, fmt.Errorf("load sentiment profiles: %w", err)
	}

	resources := map[string][]Resource{}
	if err := readJSON(resourcesPath, &resources); err != nil {
		return nil, fmt.Errorf("load city resources: %w", err)
	}

	s := &Store{
		personas:   make(map[string]Record, len(records)),
		sentiments: sentiments,
		resources:  resources,
	}
	for _, r := range records {
		if _, dup := s.personas[r.Name]; dup {
			return nil, fmt.Errorf("load personas: duplicate persona %q", r.Name)
		}
		s.personas[r.Name] = r
		s.order = append(s.order, r.Name)
	}
	return s, nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (s *Store) Get(name string) (Record, bool) {
	r, ok := s.personas[name]
	return r, ok
}

// Names returns persona names in file order.
func (s *Store) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// SentimentFor returns the city's sentiment profile, or nil when the city is
// unknown or empty.
func (s *Store) SentimentFor(city string) *SentimentHint {
	if city == "" {
		return nil
	}
	hint, ok := s.sentiments[city]
	if !ok {
		return nil
	}
	return &hint
}

// ResourcesFor returns the city's resource list, falling back to the
// "default" group when the city has none.
func (s *Store) ResourcesFor(city string) []Resource {
	if city != "" {
		if rs, ok := s.resources[city]; ok && len(rs) > 0 {
			return rs
		}
	}
	return s.resources[defaultResourceKey]
}
