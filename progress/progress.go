// Package progress defines the best-effort progress sink the codec reports
// load and save milestones to. It's a one-method interface rather than a
// callback threaded through every record, passed as an explicit parameter
// to the codec's load and save entry points.
package progress

// State identifies a progress milestone.
type State int

const (
	Loading State = iota
	LoadingFinish
	Saving
	SavingFinish
	ResourcesLoad
	ResourcesSave
	TextureLoad
	TextureSave
)

// TexturePayload is reported alongside State.TextureLoad / TextureSave: a
// completion percentage and the index of the texture it refers to.
type TexturePayload struct {
	Percent float64
	Index   int
}

// Sink receives progress reports. Implementations must not block
// indefinitely; a slow sink stalls the load or save that's reporting to it.
type Sink interface {
	Report(state State, payload any)
}

// NoOp is a Sink that discards every report. It is the default sink used
// when a caller doesn't supply one.
type NoOp struct{}

func (NoOp) Report(State, any) {}
