package cpu

// opHalt: running = false.
func opHalt(s *State) StepResult {
	s.Running = false
	return StepResult{Outcome: Halted, PC: s.PC}
}

// opPrintChar: byte c -> Surface.
func opPrintChar(s *State) StepResult {
	c, ok := s.fetchByte()
	if !ok {
		return truncated(s)
	}
	if s.Surface != nil {
		s.Surface.Write(c)
	}
	return continued(s)
}

// opPrintStr: emits memory bytes from PC until a NUL, consuming the NUL.
func opPrintStr(s *State) StepResult {
	for {
		c, ok := s.fetchByte()
		if !ok {
			return truncated(s)
		}
		if c == 0 {
			break
		}
		if s.Surface != nil {
			s.Surface.Write(c)
		}
	}
	return continued(s)
}

func opClearScreen(s *State) StepResult {
	if s.Surface != nil {
		s.Surface.ClearText()
	}
	return continued(s)
}

func opSetColor(s *State) StepResult {
	c, ok := s.fetchByte()
	if !ok {
		return truncated(s)
	}
	if c < 16 && s.Surface != nil {
		s.Surface.SetColor(c)
	}
	return continued(s)
}

func opGetCursor(s *State) StepResult {
	rx, ok := s.fetchByte()
	if !ok {
		return truncated(s)
	}
	ry, ok := s.fetchByte()
	if !ok {
		return truncated(s)
	}
	if s.Surface != nil {
		x, y := s.Surface.Cursor()
		if regValid(rx) {
			s.Regs[rx] = uint16(x)
		}
		if regValid(ry) {
			s.Regs[ry] = uint16(y)
		}
	}
	return continued(s)
}

func opSetCursor(s *State) StepResult {
	x, ok := s.fetchByte()
	if !ok {
		return truncated(s)
	}
	y, ok := s.fetchByte()
	if !ok {
		return truncated(s)
	}
	if s.Surface != nil {
		s.Surface.SetCursor(int(x), int(y))
	}
	return continued(s)
}

// opReadChar blocks (spins, cooperatively) until a character arrives on the
// input bus, then stores its code in regs[r].
func opReadChar(s *State) StepResult {
	r, ok := s.fetchByte()
	if !ok {
		return truncated(s)
	}
	if s.Input == nil {
		return continued(s)
	}
	c, gotChar := s.Input.ReadChar(func() bool { return s.Running })
	if gotChar && regValid(r) {
		s.Regs[r] = uint16(c)
	}
	return continued(s)
}

func opKeyPressed(s *State) StepResult {
	r, ok := s.fetchByte()
	if !ok {
		return truncated(s)
	}
	if regValid(r) {
		if s.Input != nil && s.Input.CharReady() {
			s.Regs[r] = 1
		} else {
			s.Regs[r] = 0
		}
	}
	return continued(s)
}
