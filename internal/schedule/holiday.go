package schedule

import "time"

// HolidayFunc reports whether a date is a public holiday. The scraper takes
// the calendar as an injected oracle so the country set is swappable.
type HolidayFunc func(Date) bool

// DanishHolidays returns the conservative Danish national holiday set:
// Nytårsdag, Skærtorsdag, Langfredag, Påskedag, 2. Påskedag,
// Kristi Himmelfart, Pinsedag, 2. Pinsedag, Juledag and 2. Juledag.
// Computed sets are cached per year.
func DanishHolidays() HolidayFunc {
	cache := make(map[int]map[string]bool)
	return func(d Date) bool {
		year := d.Year()
		set, ok := cache[year]
		if !ok {
			set = danishHolidaySet(year)
			cache[year] = set
		}
		return set[d.String()]
	}
}

func danishHolidaySet(year int) map[string]bool {
	easter := easterSunday(year)
	days := []Date{
		NewDate(year, time.January, 1),
		easter.addDays(-3), // Skærtorsdag
		easter.addDays(-2), // Langfredag
		easter,
		easter.addDays(1),  // 2. Påskedag
		easter.addDays(39), // Kristi Himmelfart
		easter.addDays(49), // Pinsedag
		easter.addDays(50), // 2. Pinsedag
		NewDate(year, time.December, 25),
		NewDate(year, time.December, 26),
	}
	set := make(map[string]bool, len(days))
	for _, d := range days {
		set[d.String()] = true
	}
	return set
}

func (d Date) addDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

// easterSunday computes Gregorian Easter with the anonymous computus.
func easterSunday(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return NewDate(year, time.Month(month), day)
}
