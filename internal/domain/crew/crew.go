// Package crew models the ship's crew roster: members with their
// characteristics, trained skills and duty assignments.
package crew

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Characteristics are a member's six core attributes
type Characteristics struct {
	STR int
	DEX int
	END int
	INT int
	EDU int
	SOC int
}

// Member is one crew member. Charisma is nil when the service leaves it
// blank; Portrait is base64 PNG data, empty when none is stored.
type Member struct {
	ID              int
	FirstName       string
	LastName        string
	Characteristics Characteristics
	Charisma        *int
	CFI             int
	FCM             int
	FDM             int
	Fatigued        bool
	Bank            decimal.Decimal
	Portrait        string
}

// Name is the member's full name
func (m Member) Name() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// Skill is a trained skill and its level
type Skill struct {
	MemberID int
	Name     string
	Level    int
}

// Assignment is a duty a member currently holds aboard
type Assignment struct {
	MemberID int
	Duty     string
}

// Modifier converts a characteristic value into its dice modifier
func Modifier(value int) int {
	switch {
	case value < 1:
		return -3
	case value <= 2:
		return -2
	case value <= 5:
		return -1
	case value <= 8:
		return 0
	case value <= 11:
		return 1
	case value <= 14:
		return 2
	default:
		return 3
	}
}

// ModifierString renders a value's modifier with an explicit sign, e.g. "+1"
func ModifierString(value int) string {
	return fmt.Sprintf("%+d", Modifier(value))
}

// SortSkills returns a copy of skills ordered by name
func SortSkills(skills []Skill) []Skill {
	sorted := make([]Skill, len(skills))
	copy(sorted, skills)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted
}
