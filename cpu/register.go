package cpu

const (
	REGISTER_COUNT = 8 // General purpose registers, R0..R7.
	SP             = 7 // R7 doubles as the stack pointer.
)

// Flags is the comparison flag register, written only by CMP.
type Flags struct {
	Lt bool // Less than.
	Gt bool // Greater than.
	Eq bool // Equal.
}

// Compare sets the flag matching a against b.
// The other flags keep whatever a previous compare left in them.
func (fl *Flags) Compare(a, b byte) {
	switch {
	case a == b:
		fl.Eq = true
	case a < b:
		fl.Lt = true
	case a > b:
		fl.Gt = true
	default:
		fl.Clear()
	}
}

// Clear resets all flags.
func (fl *Flags) Clear() {
	*fl = Flags{}
}

// Byte packs the flags as the LS-8 FL register, 0b00000LGE.
func (fl Flags) Byte() (value byte) {
	if fl.Lt {
		value |= 0b100
	}
	if fl.Gt {
		value |= 0b010
	}
	if fl.Eq {
		value |= 0b001
	}
	return
}

// String returns the flags as "LGE", with '-' for each clear flag.
func (fl Flags) String() string {
	text := []byte("---")
	if fl.Lt {
		text[0] = 'L'
	}
	if fl.Gt {
		text[1] = 'G'
	}
	if fl.Eq {
		text[2] = 'E'
	}
	return string(text)
}
