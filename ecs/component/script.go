package component

// Script is a tengo input script attached to a player. The script system
// runs it once per frame and feeds the events it emits to the input queue.
type Script struct {
	Name   string
	Source []byte
	// Done is set once the script reports it has finished.
	Done bool
}

var ScriptComponent = NewComponent[Script]()
