package input

// Button names the eight bits of a standard controller shift register, in
// the order the host pushes them.
type Button int

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller is a standard NES controller: a pair of closures (poll, push)
// over an opaque state, per the serial-shift protocol at $4016/$4017. While
// strobe is high the state is reloaded from the poll closure on every
// write and every read; on a strobe-high-to-low transition the bit index
// is held at 0 so the next eight reads shift out A, B, Select, Start, Up,
// Down, Left, Right in order. Past the eighth read the controller returns
// 1; while strobe is high every read returns the A button's state.
type Controller struct {
	state  [8]bool
	strobe bool
	index  uint8

	poll func() [8]bool
}

// NewController creates a Controller with no poll closure installed; hosts
// may instead drive it directly via Push/SetButton.
func NewController() *Controller {
	return &Controller{}
}

// SetPollFunc installs the closure invoked to refresh the controller's
// state on strobe-high writes and reads.
func (c *Controller) SetPollFunc(poll func() [8]bool) {
	c.poll = poll
}

// Push loads the controller's state directly, in {A, B, Select, Start, Up,
// Down, Left, Right} order, bypassing the poll closure.
func (c *Controller) Push(buttons [8]bool) {
	c.state = buttons
}

// SetButton sets a single button's state directly.
func (c *Controller) SetButton(button Button, pressed bool) {
	if button < 0 || int(button) >= len(c.state) {
		return
	}
	c.state[button] = pressed
}

func (c *Controller) reload() {
	if c.poll != nil {
		c.state = c.poll()
	}
}

func (c *Controller) setStrobe(asserted bool) {
	c.strobe = asserted
	if c.strobe {
		c.index = 0
		c.reload()
	}
}

// Read returns the boolean at the current bit index and post-increments it;
// once past index 7 reads return 1.
func (c *Controller) Read() uint8 {
	if c.strobe {
		c.reload()
		c.index = 0
	}
	if c.index >= uint8(len(c.state)) {
		return 1
	}
	var bit uint8
	if c.state[c.index] {
		bit = 1
	}
	if !c.strobe {
		c.index++
	}
	return bit
}

// System is the pair of standard controller ports addressed at
// $4016 (port 1) and $4017 (port 2).
type System struct {
	Port1 *Controller
	Port2 *Controller
}

// New creates a System with both ports idle.
func New() *System {
	return &System{
		Port1: NewController(),
		Port2: NewController(),
	}
}

// WriteStrobe handles a $4016 write: bit 0 latches both ports
// simultaneously, since the strobe line is wired to every controller port.
func (s *System) WriteStrobe(value uint8) {
	asserted := value&1 != 0
	s.Port1.setStrobe(asserted)
	s.Port2.setStrobe(asserted)
}

// ReadPort1 reads the next bit from controller 1 ($4016 reads).
func (s *System) ReadPort1() uint8 {
	return s.Port1.Read()
}

// ReadPort2 reads the next bit from controller 2 ($4017 reads).
func (s *System) ReadPort2() uint8 {
	return s.Port2.Read()
}

// SetButton is a direct-push convenience for hosts, such as a keyboard-
// driven GUI, that track individual button state rather than registering a
// poll closure. controllerIndex selects port 1 (0) or port 2 (1).
func (s *System) SetButton(controllerIndex int, button Button, pressed bool) {
	switch controllerIndex {
	case 0:
		s.Port1.SetButton(button, pressed)
	case 1:
		s.Port2.SetButton(button, pressed)
	}
}
