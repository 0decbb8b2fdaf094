package persona

import (
	"errors"
	"fmt"
	"strings"
)

var errNilPersona = errors.New("persona must be a non-empty record")

// BuildPrompt renders a persona record, an optional rolling memory summary,
// an optional sentiment hint, and an optional resource list into one
// system-instruction string. Every fact is woven into natural language; the
// output never contains raw structural delimiters from the data files.
// Optional sections disappear entirely rather than leaving blank lines.
func BuildPrompt(p *Record, memorySummary string, hint *SentimentHint, resources []Resource) (string, error) {
	if p == nil {
		return "", errNilPersona
	}

	name := p.Name
	if name == "" {
		name = "The persona"
	}
	tone := p.Tone
	if tone == "" {
		tone = "measured, calm"
	}

	age := p.Demographics.Age
	city := p.Demographics.City
	occupation := p.Demographics.Occupation

	var intro string
	switch {
	case age > 0 && city != "" && occupation != "":
		intro = fmt.Sprintf("You are %s, a %d-year-old %s based in %s.", name, age, occupation, city)
	case age > 0 || city != "" || occupation != "":
		var ageDesc string
		if age > 0 {
			ageDesc = fmt.Sprintf("%d-year-old", age)
		}
		var cityDesc string
		if city != "" {
			cityDesc = "from " + city
		}
		descriptors := humanJoin([]string{ageDesc, occupation, cityDesc})
		if descriptors != "" {
			intro = fmt.Sprintf("You are %s %s.", name, descriptors)
		} else {
			intro = fmt.Sprintf("You are %s.", name)
		}
	default:
		intro = fmt.Sprintf("You are %s.", name)
	}

	var contextLines []string
	if p.LifeContext.Living != "" {
		contextLines = append(contextLines, fmt.Sprintf("You describe your living situation as: %s.", p.LifeContext.Living))
	}
	if p.LifeContext.Commute != "" {
		contextLines = append(contextLines, fmt.Sprintf("Your usual commute looks like: %s.", p.LifeContext.Commute))
	}
	if p.LifeContext.Family != "" {
		contextLines = append(contextLines, fmt.Sprintf("Family context that colors your outlook: %s.", p.LifeContext.Family))
	}
	if joined := humanJoin(p.Experiences.Positive); joined != "" {
		contextLines = append(contextLines, fmt.Sprintf("You draw strength from %s.", joined))
	}
	if joined := humanJoin(p.Experiences.Negative); joined != "" {
		contextLines = append(contextLines, fmt.Sprintf("You stay cautious about %s.", joined))
	}
	if joined := humanJoin(p.Experiences.Coping); joined != "" {
		contextLines = append(contextLines, fmt.Sprintf("You cope by %s.", joined))
	}
	if joined := humanJoin(p.Values); joined != "" {
		contextLines = append(contextLines, fmt.Sprintf("You place high importance on %s.", joined))
	}

	var sentimentLine string
	if hint != nil {
		if hint.Fear != nil && hint.Confidence != nil {
			fear := clamp01(*hint.Fear)
			confidence := clamp01(*hint.Confidence)
			sentimentLine = fmt.Sprintf(
				"Begin with an emotional baseline that balances %.0f%% caution with %.0f%% steadiness.",
				fear*100, confidence*100)
		} else {
			sentimentLine = "Maintain a balanced emotional baseline informed by recent context."
		}
	}

	var memoryLine string
	if memorySummary != "" {
		memoryLine = fmt.Sprintf("Carry forward this recent context as lived memory: %s.", strings.TrimSpace(memorySummary))
	}

	var resourceLines []string
	var bullets []string
	for _, r := range resources {
		if r.Title == "" || r.URL == "" {
			continue
		}
		detail := ""
		if r.Summary != "" {
			detail = " – " + strings.TrimSpace(r.Summary)
		}
		bullets = append(bullets, fmt.Sprintf("- %s%s (%s)", r.Title, detail, r.URL))
	}
	if len(bullets) > 0 {
		resourceLines = append(resourceLines,
			"Ground every reply in at least one real-world data point from the vetted sources below. "+
				"Cite the source with a Markdown link such as [Title](URL); never invent references. "+
				"Clearly label community anecdotes (e.g., Reddit threads) as lived experiences rather than official statistics.")
		resourceLines = append(resourceLines, bullets...)
	}

	var cityInstruction string
	if city != "" {
		cityInstruction = fmt.Sprintf(
			"Keep grounding every reflection in the daily realities of %s: refer to familiar transit, public "+
				"spaces, and civic programs the sources mention so it feels unmistakably local.", city)
	}

	actionLine := "When the user asks for interventions, priorities, or how you would use resources like a city budget, " +
		"provide one clear, actionable priority that fits your daily realities (commute, family responsibilities, role, and values). " +
		"Name the personal experience that motivates it, and cite the most relevant source from the list to justify it. " +
		"Prioritise sources tagged for your city; use the general resources only if nothing local applies."

	guardrailLine := "Stay conversational and first-person. Avoid explicit or graphic detail; " +
		"keep safety talk general. Never reveal personal identifiers, real names, or engage in doxxing. " +
		"Offer only general guidance, not medical or legal advice. If confronted with an unsafe or explicit request, " +
		"decline politely and steer toward constructive safety discussion. Use only the provided sources when citing data."

	sections := []string{
		"You are to role-play the described persona in first-person voice.",
		"Speak in first person at all times with lived-experience detail.",
		intro,
	}
	sections = append(sections, contextLines...)
	sections = append(sections,
		"Continuously weave these personal circumstances into your answers so they feel specific to you, not generic.",
		cityInstruction,
		fmt.Sprintf("Keep your tone %s.", tone),
		sentimentLine,
		memoryLine,
	)
	sections = append(sections, resourceLines...)
	sections = append(sections, actionLine, guardrailLine)

	var kept []string
	for _, line := range sections {
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n")), nil
}

// Banner renders a short human-readable line like
// "Riya — 26, Delhi, Marketing Professional | tone: realistic, candid, empathetic".
func Banner(p *Record) (string, error) {
	if p == nil {
		return "", errNilPersona
	}

	name := p.Name
	if name == "" {
		name = "Persona"
	}
	ageFragment := "Age N/A"
	if p.Demographics.Age > 0 {
		ageFragment = fmt.Sprintf("%d", p.Demographics.Age)
	}
	city := p.Demographics.City
	if city == "" {
		city = "Unknown city"
	}
	occupation := p.Demographics.Occupation
	if occupation == "" {
		occupation = "Unknown role"
	}
	tone := p.Tone
	if tone == "" {
		tone = "neutral"
	}

	return strings.TrimSpace(fmt.Sprintf("%s — %s, %s, %s | tone: %s", name, ageFragment, city, occupation, tone)), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// humanJoin filters blank entries and joins the rest as natural language:
// "a", "a, and b", "a, b, and c".
func humanJoin(values []string) string {
	var filtered []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			filtered = append(filtered, v)
		}
	}
	switch len(filtered) {
	case 0:
		return ""
	case 1:
		return filtered[0]
	default:
		return strings.Join(filtered[:len(filtered)-1], ", ") + ", and " + filtered[len(filtered)-1]
	}
}
