package vessel

import (
	"fmt"
	"sort"
)

// Encounter is a space encounter logged while the ship moved through a
// system. Stardate.Time carries the logged "HH:MM:SS" time.
type Encounter struct {
	Name     string
	Rolled   int
	System   string
	UWP      UWP
	SectorID int
	SystemID int
	Stardate Stardate
}

// LoggedAt renders the encounter date as year, zero-padded day of year and
// time, e.g. "1105-012 08:00:00"
func (e Encounter) LoggedAt() string {
	return fmt.Sprintf("%d-%03d %s", e.Stardate.Year, e.Stardate.Day, e.Stardate.Time)
}

// Before orders encounters by year, day, then logged time
func (e Encounter) Before(o Encounter) bool {
	if e.Stardate.Year != o.Stardate.Year {
		return e.Stardate.Year < o.Stardate.Year
	}
	if e.Stardate.Day != o.Stardate.Day {
		return e.Stardate.Day < o.Stardate.Day
	}
	return e.Stardate.Time < o.Stardate.Time
}

// Chronological returns a copy of encounters ordered oldest first. Entries
// logged at the same moment keep their service order.
func Chronological(encounters []Encounter) []Encounter {
	sorted := make([]Encounter, len(encounters))
	copy(sorted, encounters)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })
	return sorted
}
