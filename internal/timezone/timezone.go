package timezone

import "time"

// Le garage travaille en heure de Paris ; toutes les dates saisies par les
// formulaires sont interprétées dans ce fuseau.
const Default = "Europe/Paris"

func Location() *time.Location {
	loc, err := time.LoadLocation(Default)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

func ParseDateTime(dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		Location(),
	)
}
