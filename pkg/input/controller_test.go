package input

import "testing"

func TestController_StrobeReloadsContinuously(t *testing.T) {
	c := NewController()
	c.SetButton(ButtonA, true)

	c.setStrobe(true)
	for i := 0; i < 3; i++ {
		if got := c.Read(); got != 1 {
			t.Fatalf("read %d while strobe held high: got %d, want 1 (A pressed)", i, got)
		}
	}
}

func TestController_SerialReadOrder(t *testing.T) {
	c := NewController()
	c.SetButton(ButtonA, true)
	c.SetButton(ButtonSelect, true)
	c.SetButton(ButtonRight, true)

	c.setStrobe(true)
	c.setStrobe(false)

	want := []uint8{1, 0, 1, 0, 0, 0, 0, 1}
	for i, w := range want {
		if got := c.Read(); got != w {
			t.Errorf("bit %d: got %d, want %d", i, got, w)
		}
	}
}

func TestController_ReadPastEightReturnsOne(t *testing.T) {
	c := NewController()
	c.setStrobe(true)
	c.setStrobe(false)

	for i := 0; i < 8; i++ {
		c.Read()
	}
	for i := 0; i < 3; i++ {
		if got := c.Read(); got != 1 {
			t.Errorf("read past bit 8: got %d, want 1", got)
		}
	}
}

func TestController_PollFuncUsedOnReload(t *testing.T) {
	c := NewController()
	c.SetPollFunc(func() [8]bool {
		return [8]bool{true, false, false, false, false, false, false, false}
	})

	c.setStrobe(true)
	c.setStrobe(false)

	if got := c.Read(); got != 1 {
		t.Errorf("poll func should supply A=pressed: got %d", got)
	}
}

func TestSystem_StrobeBroadcastsToBothPorts(t *testing.T) {
	s := New()
	s.Port1.SetButton(ButtonB, true)
	s.Port2.SetButton(ButtonStart, true)

	s.WriteStrobe(1)
	s.WriteStrobe(0)

	if got := s.ReadPort1(); got != 0 {
		t.Errorf("port1 bit 0 (A): got %d, want 0", got)
	}
	if got := s.Port1.Read(); got != 1 {
		t.Errorf("port1 bit 1 (B): got %d, want 1", got)
	}

	// Port2's first bit is A, third is Select, fourth is Start.
	s.ReadPort2() // A
	s.ReadPort2() // B
	s.ReadPort2() // Select
	if got := s.ReadPort2(); got != 1 {
		t.Errorf("port2 bit 3 (Start): got %d, want 1", got)
	}
}

func TestSystem_SetButtonRoutesByControllerIndex(t *testing.T) {
	s := New()
	s.SetButton(0, ButtonUp, true)
	s.SetButton(1, ButtonDown, true)

	if !s.Port1.state[ButtonUp] {
		t.Error("SetButton(0, ...) should set port 1's state")
	}
	if !s.Port2.state[ButtonDown] {
		t.Error("SetButton(1, ...) should set port 2's state")
	}
}
