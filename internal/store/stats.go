package store

import (
	"context"
	"time"

	"github.com/genricoloni/ledboard/internal/domain"
)

var weekdayNames = [...]string{"Yakshanba", "Dushanba", "Seshanba", "Chorshanba", "Payshanba", "Juma", "Shanba"}

// TomorrowBirthdays counts the people from allowed departments born tomorrow
func (s *Store) TomorrowBirthdays(ctx context.Context) (int, error) {
	employees, err := s.employeesBornOn(ctx, s.clock.Now().AddDate(0, 0, 1))
	if err != nil {
		return 0, err
	}
	return len(employees), nil
}

// WeekBirthdays returns seven days of birthdays starting today
func (s *Store) WeekBirthdays(ctx context.Context) ([]domain.DayBirthdays, error) {
	today := s.clock.Now()
	week := make([]domain.DayBirthdays, 0, 7)

	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, i)

		employees, err := s.employeesBornOn(ctx, day)
		if err != nil {
			return nil, err
		}

		entry := domain.DayBirthdays{
			Date:    day.Format("02.01"),
			DayName: dayName(i, day),
			Count:   len(employees),
			People:  make([]domain.BirthdaySummary, 0, len(employees)),
		}
		for _, e := range employees {
			entry.People = append(entry.People, domain.BirthdaySummary{
				Name:       shortName(e.Name),
				Department: e.Department,
			})
		}
		week = append(week, entry)
	}

	return week, nil
}

func dayName(offset int, day time.Time) string {
	switch offset {
	case 0:
		return "Bugun"
	case 1:
		return "Ertaga"
	default:
		return weekdayNames[day.Weekday()]
	}
}
