package store

type State int

const (
	IDLE State = iota
	LOADING
	READY
	ERROR
)

func (s State) String() string {
	return [...]string{"IDLE", "LOADING", "READY", "ERROR"}[s]
}
