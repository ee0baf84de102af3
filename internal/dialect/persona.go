package dialect

import (
	"fmt"
	"strings"
)

// Persona defines the personality of a dialect hint message.
type Persona struct {
	Name     string
	Greeting string
	LeadIn   string
	CoreHint string
	Closing  string
}

// RenderInput provides data for rendering an alien hint message.
type RenderInput struct {
	Detected     string
	StoryExample string
}

// RenderAlienHint builds a friendly, persona-based one-line message for an
// alien hint. It is deterministic.
func RenderAlienHint(d Kind, in RenderInput) string {
	p := personaFor(d)
	return p.Render(in)
}

// Example returns a StoryScript snippet showing the supported spelling for d.
func Example(d Kind) string {
	switch d {
	case Legacy:
		return `room hall { when entered { say "Hi"; goto("yard"); } }`
	case Ink:
		return `goto("knot");`
	case Python:
		return `function greet(who) { if (who == "") { say "nobody"; } else { say who; } }`
	case JavaScript:
		return `var x = 1; if (a and b) { say x; }`
	default:
		return ""
	}
}

func personaFor(d Kind) Persona {
	switch d {
	case Legacy:
		return Persona{
			Name:     "legacy",
			Greeting: "Welcome back, old-timer.",
			LeadIn:   "This looks like the table-driven StoryScript dialect (%s).",
			CoreHint: "storyc reads rooms, items and functions; `story`, `choice` and `option` are gone, and `goto` takes a parenthesised destination.",
			Closing:  "Try:",
		}
	case Ink:
		return Persona{
			Name:     "ink",
			LeadIn:   "Ink syntax detected (%s).",
			CoreHint: "StoryScript diverts with `goto(...)` and declares variables with `var`.",
			Closing:  "Try:",
		}
	case Python:
		return Persona{
			Name:     "python",
			Greeting: "Hello, Pythonista.",
			LeadIn:   "I see %s.",
			CoreHint: "StoryScript uses `function`, braces and `true`/`false`.",
			Closing:  "Try:",
		}
	case JavaScript:
		return Persona{
			Name:     "javascript",
			LeadIn:   "JavaScript %s detected.",
			CoreHint: "StoryScript declares with `var` and spells logic as `and`/`or`/`not`.",
			Closing:  "Try:",
		}
	default:
		return Persona{
			Name:   "unknown",
			LeadIn: "Foreign-language syntax detected.",
		}
	}
}

// Render produces the final hint message string.
func (p *Persona) Render(in RenderInput) string {
	parts := make([]string, 0, 5)
	if g := strings.TrimSpace(p.Greeting); g != "" {
		parts = append(parts, g)
	}
	if leadIn := formatTemplate(p.LeadIn, in.Detected); leadIn != "" {
		parts = append(parts, leadIn)
	}
	if core := strings.TrimSpace(p.CoreHint); core != "" {
		parts = append(parts, core)
	}
	if example := strings.TrimSpace(in.StoryExample); example != "" {
		if closing := strings.TrimSpace(p.Closing); closing != "" {
			parts = append(parts, closing)
		}
		parts = append(parts, "`"+example+"`")
	}
	return strings.Join(parts, " ")
}

func formatTemplate(tmpl, detected string) string {
	tmpl = strings.TrimSpace(tmpl)
	if tmpl == "" {
		return ""
	}
	if strings.Contains(tmpl, "%s") {
		if detected == "" {
			detected = "this"
		}
		return fmt.Sprintf(tmpl, detected)
	}
	return tmpl
}
