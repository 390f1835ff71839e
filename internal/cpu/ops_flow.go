package cpu

func opJmp(s *State) StepResult {
	addr, ok := s.fetchU16()
	if !ok {
		return truncated(s)
	}
	s.PC = addr
	return continued(s)
}

func opJz(s *State) StepResult {
	addr, ok := s.fetchU16()
	if !ok {
		return truncated(s)
	}
	if s.Flags&FlagZero != 0 {
		s.PC = addr
	}
	return continued(s)
}

func opJnz(s *State) StepResult {
	addr, ok := s.fetchU16()
	if !ok {
		return truncated(s)
	}
	if s.Flags&FlagZero == 0 {
		s.PC = addr
	}
	return continued(s)
}

func opJg(s *State) StepResult {
	addr, ok := s.fetchU16()
	if !ok {
		return truncated(s)
	}
	if s.Flags&FlagGreater != 0 {
		s.PC = addr
	}
	return continued(s)
}

func opJl(s *State) StepResult {
	addr, ok := s.fetchU16()
	if !ok {
		return truncated(s)
	}
	if s.Flags&FlagLess != 0 {
		s.PC = addr
	}
	return continued(s)
}

// pushReturnAddr and popReturnAddr are deliberately separate from opPush/opPop
// rather than sharing code with PUSH/POP. CALL writes the high byte,
// decrements, writes the low byte, decrements, so that RET's two increments
// read the low byte and then the high byte back — the same order PUSH/POP
// happen to use today, but CALL/RET are kept independent of the generic
// register push/pop encoding so a future change to one cannot silently break
// the other.
func pushReturnAddr(s *State, addr uint16) {
	if s.SP == 0 {
		return
	}
	s.Memory[stackAddr(s.SP)] = byte(addr >> 8)
	s.SP--
	s.Memory[stackAddr(s.SP)] = byte(addr)
	s.SP--
}

func popReturnAddr(s *State) (uint16, bool) {
	if s.SP >= StackSize-1 {
		return 0, false
	}
	s.SP++
	lo := s.Memory[stackAddr(s.SP)]
	s.SP++
	hi := s.Memory[stackAddr(s.SP)]
	return uint16(lo) | uint16(hi)<<8, true
}

// opCall: push the address of the instruction following CALL, then jump.
func opCall(s *State) StepResult {
	addr, ok := s.fetchU16()
	if !ok {
		return truncated(s)
	}
	if s.SP > 1 {
		pushReturnAddr(s, s.PC)
		s.PC = addr
	}
	return continued(s)
}

// opRet: pop the return address into PC.
func opRet(s *State) StepResult {
	if addr, ok := popReturnAddr(s); ok {
		s.PC = addr
	}
	return continued(s)
}
