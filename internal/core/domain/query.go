package domain

// WebUsage is the caller's three-way web-search preference. WebAuto lets the
// engine decide from the question text; the forced values override that
// decision, though even WebForcedOn cannot enable an unconfigured capability.
type WebUsage int

const (
	WebAuto WebUsage = iota
	WebForcedOn
	WebForcedOff
)

func (u WebUsage) String() string {
	switch u {
	case WebForcedOn:
		return "forced_on"
	case WebForcedOff:
		return "forced_off"
	default:
		return "auto"
	}
}
