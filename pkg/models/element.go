package models

import "fmt"

// Element is one of the five phases (오행). The constant order follows the
// generative cycle: Wood → Fire → Earth → Metal → Water → Wood.
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

var elementLabels = [...]string{"목", "화", "토", "금", "수"}

// AllElements returns the five elements in generative order.
func AllElements() []Element {
	return []Element{Wood, Fire, Earth, Metal, Water}
}

// String returns the Korean label (목, 화, 토, 금, 수).
func (e Element) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementLabels[e]
}

// Valid reports whether e is one of the five elements.
func (e Element) Valid() bool { return e >= Wood && e <= Water }

// Generates returns the element this one produces in the generative cycle.
func (e Element) Generates() Element { return Element(mod(int(e)+1, 5)) }

// Controls returns the element this one overcomes in the controlling cycle.
func (e Element) Controls() Element { return Element(mod(int(e)+2, 5)) }

// ControlledBy returns the element that overcomes this one.
func (e Element) ControlledBy() Element { return Element(mod(int(e)+3, 5)) }

// GeneratedBy returns the element that produces this one.
func (e Element) GeneratedBy() Element { return Element(mod(int(e)+4, 5)) }

// MarshalText encodes the element as its Korean label.
func (e Element) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// UnmarshalText decodes a Korean element label.
func (e *Element) UnmarshalText(b []byte) error {
	v, err := ParseElement(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ParseElement resolves a Korean element label.
func ParseElement(s string) (Element, error) {
	i, err := parseLabel(elementLabels[:], s, "element")
	return Element(i), err
}

// Polarity is the yin/yang attribute of a stem.
type Polarity int

const (
	Yang Polarity = iota
	Yin
)

// String returns 양 or 음.
func (p Polarity) String() string {
	if p == Yang {
		return "양"
	}
	return "음"
}

// MarshalText encodes the polarity as its Korean label.
func (p Polarity) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText decodes 양 or 음.
func (p *Polarity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "양":
		*p = Yang
	case "음":
		*p = Yin
	default:
		return fmt.Errorf("unknown polarity %q", string(b))
	}
	return nil
}

// parseLabel returns the index of s in labels.
func parseLabel(labels []string, s, kind string) (int, error) {
	for i, l := range labels {
		if l == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

// mod returns a mod n in the range [0, n).
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
