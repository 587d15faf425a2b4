package vessel

import "strconv"

// UWP is a star system's Universal World Profile, e.g. "A788899C".
// The first character is the starport class; the eighth character is the
// tech level as a base-16 digit.
type UWP string

const techLevelIndex = 7

// StarportCode returns the starport class character, or "" when absent
func (u UWP) StarportCode() string {
	if len(u) == 0 {
		return ""
	}
	return string(u[0])
}

// TechLevel parses the tech level digit as hex.
// ok is false when the profile is too short or the character is not hex,
// so a "-" in that position reads as no tech level.
func (u UWP) TechLevel() (level int, ok bool) {
	if len(u) <= techLevelIndex {
		return 0, false
	}
	v, err := strconv.ParseUint(string(u[techLevelIndex]), 16, 8)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

func (u UWP) String() string {
	return string(u)
}
