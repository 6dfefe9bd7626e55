package view

// Button identifies the mouse button behind a press or release. Only the
// left and right buttons drive the editor.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

// Event is one input occurrence, already translated to display units.
type Event interface {
	isEvent()
}

// Quit asks the editor to stop.
type Quit struct{}

// SaveRequest asks the editor to write the grid through its Saver.
type SaveRequest struct{}

// ButtonDown is a mouse press at display coordinates (X, Y).
type ButtonDown struct {
	Button Button
	X, Y   int
}

// ButtonUp is a mouse release at display coordinates (X, Y).
type ButtonUp struct {
	Button Button
	X, Y   int
}

// Motion reports the pointer position after it moved.
type Motion struct {
	X, Y int
}

func (Quit) isEvent()        {}
func (SaveRequest) isEvent() {}
func (ButtonDown) isEvent()  {}
func (ButtonUp) isEvent()    {}
func (Motion) isEvent()      {}

// Outcome tells the front end what an event did.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeToggled
	OutcomePanned
	OutcomeSaved
	OutcomeQuit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeToggled:
		return "toggled"
	case OutcomePanned:
		return "panned"
	case OutcomeSaved:
		return "saved"
	case OutcomeQuit:
		return "quit"
	default:
		return "none"
	}
}
