package editor

// Mode is the input-interpretation state of a session.
type Mode int

const (
	ModeNormal Mode = iota
	ModeVisual
	ModeInsert
	ModeCommand
	// ModeExit is absorbing: once reached, no key leaves it.
	ModeExit
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeVisual:
		return "VISUAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	case ModeExit:
		return "EXIT"
	default:
		return "UNKNOWN"
	}
}
