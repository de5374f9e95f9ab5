// Package seed наполняет список пользователя демонстрационными записями.
package seed

import (
	"Watchlist/internal/format"
	"Watchlist/internal/service"
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

// DefaultCount сколько записей создаётся по умолчанию
const DefaultCount = 100

type sample struct {
	Title, Type, Director, Budget, Location, Duration, YearTime, Description string
}

var baseData = []sample{
	{"Inception", "Movie", "Christopher Nolan", "$160M", "LA, Paris, Tokyo", "148 min", "2010",
		"A mind-bending thriller about dreams within dreams"},
	{"Breaking Bad", "TV Show", "Vince Gilligan", "$3M/ep", "Albuquerque", "49 min/ep", "2008-2013",
		"A high school chemistry teacher turned methamphetamine manufacturer"},
	{"The Dark Knight", "Movie", "Christopher Nolan", "$185M", "Chicago, Pittsburgh", "152 min", "2008",
		"Batman faces the Joker in this acclaimed superhero film"},
	{"Stranger Things", "TV Show", "The Duffer Brothers", "$8M/ep", "Atlanta (as Hawkins)", "50 min/ep", "2016-2025",
		"Supernatural events in a small town in the 1980s"},
	{"Pulp Fiction", "Movie", "Quentin Tarantino", "$8.5M", "Los Angeles", "154 min", "1994",
		"Interconnected stories of crime in Los Angeles"},
}

// SampleEntries размножает базовый набор: к названию добавляется номер,
// год сдвигается на i%30 от года начала.
func SampleEntries(count int) []service.EntryInput {
	out := make([]service.EntryInput, 0, count)
	for i := 0; i < count; i++ {
		base := baseData[i%len(baseData)]
		startYear, _ := strconv.Atoi(base.YearTime[:4])
		desc := base.Description
		out = append(out, service.EntryInput{
			Title:       fmt.Sprintf("%s (%d)", base.Title, i+1),
			Type:        base.Type,
			Director:    base.Director,
			Budget:      base.Budget,
			Location:    base.Location,
			Duration:    base.Duration,
			YearTime:    strconv.Itoa(startYear + i%30),
			Description: &desc,
		})
	}
	return out
}

// Seeder пишет записи через сервисы, поэтому проходят те же проверки, что и у API.
type Seeder struct {
	Users   *service.UserService
	Entries *service.EntryService
	Logger  *zap.SugaredLogger
}

// Run добавляет count записей пользователю с указанным email. Возвращает число созданных.
func (s *Seeder) Run(ctx context.Context, email string, count int) (int, error) {
	owner, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("find user %q: %w", email, err)
	}

	created := 0
	for _, in := range SampleEntries(count) {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		if _, err := s.Entries.Create(ctx, owner.ID, in); err != nil {
			return created, fmt.Errorf("add %q: %w", in.Title, err)
		}
		created++
		s.Logger.Infow("Added", "title", in.Title, "budget", format.FormatBudget(in.Budget))
	}
	return created, nil
}
