package style

// LegacyMode is one of the two historical mode names. Only LegacyStandard
// and LegacyJuridical can be constructed outside this package.
type LegacyMode struct {
	name string
}

var (
	LegacyStandard  = LegacyMode{name: "standard"}
	LegacyJuridical = LegacyMode{name: "juridical"}
)

func (m LegacyMode) String() string {
	if m.name == "" {
		return LegacyStandard.name
	}
	return m.name
}

// ParseLegacyMode reports whether s is a legacy mode name.
func ParseLegacyMode(s string) (LegacyMode, bool) {
	switch s {
	case LegacyStandard.name:
		return LegacyStandard, true
	case LegacyJuridical.name:
		return LegacyJuridical, true
	default:
		return LegacyMode{}, false
	}
}

// ResolveLegacyMode maps a legacy mode onto its current style id.
func ResolveLegacyMode(m LegacyMode) ID {
	if m == LegacyJuridical {
		return JuridicalElite
	}
	return StandardPremium
}

// Canonical resolves a legacy mode name to its style id and returns any
// other string unchanged as an ID. It does not check registration.
func Canonical(s string) ID {
	if m, ok := ParseLegacyMode(s); ok {
		return ResolveLegacyMode(m)
	}
	return ID(s)
}
