package dialect

import "fmt"

// Kind represents a foreign "dialect" that a .story file may resemble.
type Kind uint8

const (
	Unknown Kind = iota
	// Legacy is the old table-driven StoryScript surface (`story { }`, `choice`/`option`).
	Legacy
	Ink
	Python
	JavaScript

	kindCount
)

func (k Kind) String() string {
	switch k {
	case Legacy:
		return "legacy"
	case Ink:
		return "ink"
	case Python:
		return "python"
	case JavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

func (k Kind) GoString() string {
	return fmt.Sprintf("dialect.Kind(%s)", k.String())
}
