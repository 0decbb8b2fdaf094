package guardrails

import "testing"

func TestPostProcessBlocksExplicitContent(t *testing.T) {
	got := PostProcess("This includes explicit rape details")
	if got != RefusalMessage {
		t.Fatalf("expected refusal message, got %q", got)
	}
}

func TestPostProcessBlocksSelfHarmAndPII(t *testing.T) {
	cases := []string{
		"you could reach me at 555-123-4567 anytime",
		"my address is jane.doe@example.com",
		"I keep thinking about suicide",
		"methods of self-harm",
	}
	for _, in := range cases {
		if got := PostProcess(in); got != RefusalMessage {
			t.Fatalf("PostProcess(%q) = %q, expected refusal", in, got)
		}
	}
}

func TestPostProcessPassesBenignText(t *testing.T) {
	in := "The metro feels safer when the platform is well lit."
	if got := PostProcess(in); got != in {
		t.Fatalf("benign text was altered: %q", got)
	}
}

func TestPostProcessEmptyInput(t *testing.T) {
	if got := PostProcess(""); got != "" {
		t.Fatalf("empty input should pass through, got %q", got)
	}
}

func TestSanitizeRedactsPhoneNumber(t *testing.T) {
	got := Sanitize("call me at 555-123-4567")
	want := "call me at " + RedactionMarker
	if got != want {
		t.Fatalf("Sanitize = %q, want %q", got, want)
	}
}

func TestSanitizeRedactsEmailAndKeepsRest(t *testing.T) {
	got := Sanitize("  write to riya@example.com about the survey  ")
	want := "write to " + RedactionMarker + " about the survey"
	if got != want {
		t.Fatalf("Sanitize = %q, want %q", got, want)
	}
}

func TestSanitizeEmptyInput(t *testing.T) {
	if got := Sanitize(""); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestScanReportsCategory(t *testing.T) {
	category, ok := Scan("contains graphic detail of the event")
	if !ok || category != CategoryExplicit {
		t.Fatalf("Scan = (%v, %v), want (explicit, true)", category, ok)
	}
	category, ok = Scan("I might kill myself")
	if !ok || category != CategorySelfHarm {
		t.Fatalf("Scan = (%v, %v), want (self-harm, true)", category, ok)
	}
	if _, ok := Scan("a calm evening walk"); ok {
		t.Fatalf("Scan matched benign text")
	}
}
