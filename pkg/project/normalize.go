package project

// Address lengths up to which a line or device address is still in its short,
// unqualified form. Longer addresses are treated as already normalized.
const (
	maxShortLineAddress   = 1
	maxShortDeviceAddress = 3
)

// NormalizeAddresses rewrites line and device addresses into their dotted form:
// a line "1" in area "1" becomes "1.1", a device "1" on that line becomes "1.1.1".
//
// Addresses longer than the short form are left untouched, so running the pass
// on an already normalized topology is a no-op. Empty addresses are kept empty.
// The length test makes multi-digit short addresses ambiguous: a line "12" in
// area "1" is longer than the short form and stays "12".
func (t *Topology) NormalizeAddresses() {
	for _, a := range t.Areas {
		for _, l := range a.Lines {
			if l.Address != "" && len(l.Address) <= maxShortLineAddress {
				l.Address = a.Address + "." + l.Address
			}

			for _, d := range l.Devices {
				if d.Address != "" && len(d.Address) <= maxShortDeviceAddress {
					d.Address = l.Address + "." + d.Address
				}
			}
		}
	}
}
