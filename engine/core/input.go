package core

// Input tracks key state fed from window events.
type Input struct {
	down    map[Key]bool
	pressed map[Key]bool
}

func NewInput() *Input {
	return &Input{down: map[Key]bool{}, pressed: map[Key]bool{}}
}

func (in *Input) Handle(ev Event) {
	e, ok := ev.(EventKey)
	if !ok {
		return
	}
	if e.Down && !in.down[e.Key] {
		in.pressed[e.Key] = true
	}
	in.down[e.Key] = e.Down
}

func (in *Input) IsKeyDown(k Key) bool { return in.down[k] }

// WasPressed reports whether k went down since the last call for k.
// Key repeats do not count.
func (in *Input) WasPressed(k Key) bool {
	p := in.pressed[k]
	delete(in.pressed, k)
	return p
}
