package crew_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/traveller-go/internal/domain/crew"
)

func TestModifier_TranslationTable(t *testing.T) {
	cases := map[int]int{
		0:  -3,
		1:  -2,
		2:  -2,
		3:  -1,
		5:  -1,
		6:  0,
		8:  0,
		9:  1,
		11: 1,
		12: 2,
		14: 2,
		15: 3,
		20: 3,
	}

	for value, want := range cases {
		assert.Equal(t, want, crew.Modifier(value), "value %d", value)
	}
}

func TestModifierString(t *testing.T) {
	assert.Equal(t, "+0", crew.ModifierString(7))
	assert.Equal(t, "+2", crew.ModifierString(13))
	assert.Equal(t, "-1", crew.ModifierString(4))
}

func TestSortSkills_ByNameWithoutTouchingInput(t *testing.T) {
	// Arrange
	skills := []crew.Skill{
		{MemberID: 1, Name: "Pilot", Level: 2},
		{MemberID: 1, Name: "Broker", Level: 1},
		{MemberID: 1, Name: "Engineering", Level: 0},
	}

	// Act
	sorted := crew.SortSkills(skills)

	// Assert
	names := make([]string, len(sorted))
	for i, s := range sorted {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Broker", "Engineering", "Pilot"}, names)
	assert.Equal(t, "Pilot", skills[0].Name)
}

func TestMember_Name(t *testing.T) {
	assert.Equal(t, "Marc Hault", crew.Member{FirstName: "Marc", LastName: "Hault"}.Name())
	assert.Equal(t, "Ysolde", crew.Member{FirstName: "Ysolde"}.Name())
}
