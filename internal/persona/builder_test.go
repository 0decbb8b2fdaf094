package persona

import (
	"strings"
	"testing"
)

func testPersona() *Record {
	return &Record{
		Name: "Test Persona",
		Demographics: Demographics{
			Age:        29,
			City:       "Chennai",
			Occupation: "Analyst",
		},
		LifeContext: LifeContext{
			Living:  "Lives with roommates",
			Commute: "Uses metro",
		},
		Experiences: Experiences{
			Positive: []string{"Feels safe in crowded markets"},
			Negative: []string{"Avoids late-night buses"},
			Coping:   []string{"Shares live location"},
		},
		Values: []string{"community", "learning"},
		Tone:   "supportive, practical",
	}
}

func TestBuildPromptContent(t *testing.T) {
	resources := []Resource{
		{Title: "Sample Report", Summary: "Highlights key metro safety metrics.", URL: "https://example.com/report"},
	}

	prompt, err := BuildPrompt(testPersona(), "", nil, resources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Test Persona",
		"Chennai",
		"Speak in first person",
		"Sample Report",
		"https://example.com/report",
		"29-year-old Analyst based in Chennai",
		"Keep your tone supportive, practical.",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptNoRawStructureLeakage(t *testing.T) {
	p := &Record{
		Name: "Minimal",
		Demographics: Demographics{
			Age:        22,
			City:       "Mumbai",
			Occupation: "Student",
		},
		Tone: "neutral",
	}

	prompt, err := BuildPrompt(p, "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.ContainsAny(prompt, "{}") {
		t.Fatalf("prompt leaks structural delimiters:\n%s", prompt)
	}
}

func TestBuildPromptSkipsInvalidResources(t *testing.T) {
	resources := []Resource{
		{Title: "No URL Report", Summary: "missing link"},
		{URL: "https://example.com/untitled"},
		{Title: "Valid", URL: "https://example.com/valid"},
	}

	prompt, err := BuildPrompt(testPersona(), "", nil, resources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(prompt, "No URL Report") || strings.Contains(prompt, "untitled") {
		t.Fatalf("invalid resource leaked into prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- Valid (https://example.com/valid)") {
		t.Fatalf("valid resource missing from prompt:\n%s", prompt)
	}
}

func TestBuildPromptAllResourcesInvalid(t *testing.T) {
	resources := []Resource{{Title: "only title"}, {Summary: "only summary"}}
	prompt, err := BuildPrompt(testPersona(), "", nil, resources)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(prompt, "vetted sources") {
		t.Fatalf("resource instruction emitted without valid resources:\n%s", prompt)
	}
}

func TestBuildPromptSentimentHint(t *testing.T) {
	fear, confidence := 0.62, 0.48
	hint := &SentimentHint{Fear: &fear, Confidence: &confidence}

	prompt, err := BuildPrompt(testPersona(), "", hint, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "62% caution with 48% steadiness") {
		t.Fatalf("sentiment baseline missing:\n%s", prompt)
	}
}

func TestBuildPromptSentimentHintClamped(t *testing.T) {
	fear, confidence := 1.7, -0.2
	hint := &SentimentHint{Fear: &fear, Confidence: &confidence}

	prompt, err := BuildPrompt(testPersona(), "", hint, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "100% caution with 0% steadiness") {
		t.Fatalf("values not clamped to [0,1]:\n%s", prompt)
	}
}

func TestBuildPromptSentimentHintWithoutNumbers(t *testing.T) {
	prompt, err := BuildPrompt(testPersona(), "", &SentimentHint{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "Maintain a balanced emotional baseline informed by recent context.") {
		t.Fatalf("generic baseline line missing:\n%s", prompt)
	}
}

func TestBuildPromptMemorySummary(t *testing.T) {
	prompt, err := BuildPrompt(testPersona(), "Recent discussion: metro timing | Response mood: steady", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "Carry forward this recent context as lived memory: Recent discussion: metro timing") {
		t.Fatalf("memory line missing:\n%s", prompt)
	}
}

func TestBuildPromptBestEffortIntro(t *testing.T) {
	p := &Record{
		Name:         "Asha",
		Demographics: Demographics{Occupation: "Teacher", City: "Pune"},
	}
	prompt, err := BuildPrompt(p, "", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "You are Asha Teacher, and from Pune.") {
		t.Fatalf("best-effort intro wrong:\n%s", prompt)
	}
	// Tone defaults when the record has none.
	if !strings.Contains(prompt, "Keep your tone measured, calm.") {
		t.Fatalf("default tone missing:\n%s", prompt)
	}
}

func TestBuildPromptRejectsNilPersona(t *testing.T) {
	if _, err := BuildPrompt(nil, "", nil, nil); err == nil {
		t.Fatalf("expected error for nil persona")
	}
}

func TestBanner(t *testing.T) {
	p := &Record{
		Name: "Riya",
		Demographics: Demographics{
			Age:        26,
			City:       "Delhi",
			Occupation: "Marketing Professional",
		},
		Tone: "realistic, candid, empathetic",
	}
	banner, err := Banner(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Riya — 26, Delhi, Marketing Professional | tone: realistic, candid, empathetic"
	if banner != want {
		t.Fatalf("banner = %q, want %q", banner, want)
	}
}

func TestBannerDefaults(t *testing.T) {
	banner, err := Banner(&Record{Name: "Asha"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Asha — Age N/A, Unknown city, Unknown role | tone: neutral"
	if banner != want {
		t.Fatalf("banner = %q, want %q", banner, want)
	}
}

func TestBannerRejectsNilPersona(t *testing.T) {
	if _, err := Banner(nil); err == nil {
		t.Fatalf("expected error for nil persona")
	}
}

func TestHumanJoin(t *testing.T) {
	if got := humanJoin(nil); got != "" {
		t.Fatalf("empty join = %q", got)
	}
	if got := humanJoin([]string{" solo "}); got != "solo" {
		t.Fatalf("single join = %q", got)
	}
	if got := humanJoin([]string{"a", "", "b"}); got != "a, and b" {
		t.Fatalf("pair join = %q", got)
	}
	if got := humanJoin([]string{"a", "b", "c"}); got != "a, b, and c" {
		t.Fatalf("triple join = %q", got)
	}
}
