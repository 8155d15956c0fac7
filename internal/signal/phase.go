package signal

import "fmt"

// Phase is the state of the signal. The zero value is Red.
type Phase uint32

const (
	// Red stops traffic. A new Controller starts Red.
	Red Phase = iota
	// Green lets traffic through.
	Green
)

// Toggle returns the phase that follows p.
func (p Phase) Toggle() Phase {
	if p == Green {
		return Red
	}
	return Green
}

func (p Phase) String() string {
	switch p {
	case Red:
		return "red"
	case Green:
		return "green"
	default:
		return fmt.Sprintf("phase(%d)", uint32(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	switch p {
	case Red, Green:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("signal: unknown phase %d", uint32(p))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "red":
		*p = Red
	case "green":
		*p = Green
	default:
		return fmt.Errorf("signal: unknown phase %q", text)
	}
	return nil
}
