package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/genricoloni/ledboard/internal/domain"
	"go.uber.org/zap"
)

// FetchRoster returns today's birthdays from allowed departments, ordered by name
func (s *Store) FetchRoster(ctx context.Context) ([]domain.Person, error) {
	employees, err := s.employeesBornOn(ctx, s.clock.Now())
	if err != nil {
		return nil, err
	}

	people := make([]domain.Person, 0, len(employees))
	for _, e := range employees {
		people = append(people, domain.Person{
			ID:         e.ID,
			Name:       shortName(e.Name),
			Department: e.Department,
			Position:   e.Position,
		})
	}

	s.logger.Debug("Roster fetched", zap.Int("people", len(people)))
	return people, nil
}

// AddPerson records someone celebrating today
func (s *Store) AddPerson(ctx context.Context, name, position string) (domain.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Person{}, fmt.Errorf("failed to add person: %w", ErrInvalidInput)
	}

	e := Employee{
		Name:       name,
		Department: adminDepartment,
		Position:   strings.TrimSpace(position),
		BirthDate:  "2000" + monthDaySuffix(s.clock.Now()),
	}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return domain.Person{}, fmt.Errorf("failed to add person: %w", err)
	}

	s.logger.Info("Person added", zap.String("id", e.ID), zap.String("name", e.Name))
	s.notify()

	return domain.Person{ID: e.ID, Name: e.Name, Department: e.Department, Position: e.Position}, nil
}

// RemovePerson deletes a person by id
func (s *Store) RemovePerson(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Employee{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove person: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to remove person %s: %w", id, ErrNotFound)
	}

	s.logger.Info("Person removed", zap.String("id", id))
	s.notify()
	return nil
}

// UpdatePerson changes a person's name and position
func (s *Store) UpdatePerson(ctx context.Context, id, name, position string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("failed to update person: %w", ErrInvalidInput)
	}

	res := s.db.WithContext(ctx).Model(&Employee{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "position": strings.TrimSpace(position)})
	if res.Error != nil {
		return fmt.Errorf("failed to update person: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to update person %s: %w", id, ErrNotFound)
	}

	s.logger.Info("Person updated", zap.String("id", id))
	s.notify()
	return nil
}

// employeesBornOn reads the whole table page by page and keeps allowed matches for day's month and day
func (s *Store) employeesBornOn(ctx context.Context, day time.Time) ([]Employee, error) {
	suffix := monthDaySuffix(day)
	var matched []Employee

	for offset := 0; ; offset += pageSize {
		var batch []Employee
		err := s.db.WithContext(ctx).
			Where("birth_date LIKE ?", "%"+suffix).
			Order("name ASC").
			Offset(offset).
			Limit(pageSize).
			Find(&batch).Error
		if err != nil {
			return nil, fmt.Errorf("failed to fetch employees: %w", err)
		}

		for _, e := range batch {
			if DepartmentAllowed(e.Department) {
				matched = append(matched, e)
			}
		}

		if len(batch) < pageSize {
			break
		}
	}

	return matched, nil
}

// monthDaySuffix formats t as the "-MM-DD" tail of a birth date
func monthDaySuffix(t time.Time) string {
	return t.Format("-01-02")
}

// shortName keeps the first two words of a full name
func shortName(name string) string {
	parts := strings.Fields(name)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, " ")
}
