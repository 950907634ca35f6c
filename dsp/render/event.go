package render

// EventKind discriminates the payload of an Event.
type EventKind uint8

const (
	// EventParameter is an immediate parameter change.
	EventParameter EventKind = iota
	// EventParameterRamp is a parameter change interpolated over a number
	// of frames.
	EventParameterRamp
	// EventMIDI is a raw MIDI message.
	EventMIDI
)

// ParameterEvent carries a scheduled parameter change.
type ParameterEvent struct {
	Address      uint64
	Value        float64
	RampDuration int
}

// MIDIEvent carries a raw MIDI message.
type MIDIEvent struct {
	Cable  uint8
	Length uint8
	Data   [3]byte
}

// Event is one node of the host-supplied, time-ordered event list handed to
// a render call. Events at identical sample times apply in list order.
type Event struct {
	Next       *Event
	SampleTime int64
	Kind       EventKind
	Parameter  ParameterEvent
	MIDI       MIDIEvent
}
