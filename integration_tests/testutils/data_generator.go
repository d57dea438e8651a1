//go:build integration

package testutils

import (
	"fmt"
	"time"

	courseservice "github.com/Black-And-White-Club/trip-scorer/app/modules/course/application"
	playerservice "github.com/Black-And-White-Club/trip-scorer/app/modules/player/application"
	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator builds request payloads with realistic values.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  uint64
}

// NewTestDataGenerator creates a generator. Without a seed the clock is used.
func NewTestDataGenerator(seed ...uint64) *TestDataGenerator {
	s := uint64(time.Now().UnixNano())
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(s), seed: s}
}

// Seed returns the seed, for reproducing a failing run.
func (g *TestDataGenerator) Seed() uint64 { return g.seed }

// Players returns n player requests with distinct names.
func (g *TestDataGenerator) Players(n int) []playerservice.CreatePlayerRequest {
	players := make([]playerservice.CreatePlayerRequest, n)
	for i := range players {
		players[i] = playerservice.CreatePlayerRequest{
			Name:     fmt.Sprintf("%s %s %d", g.faker.FirstName(), g.faker.LastName(), i+1),
			Nickname: fmt.Sprintf("%s%d", g.faker.Adjective(), i+1),
			Handicap: float64(g.faker.IntRange(0, 36)),
		}
	}
	return players
}

// Course returns a course with the given pars, one per hole in order.
func (g *TestDataGenerator) Course(pars ...int) courseservice.CreateCourseRequest {
	holes := make([]courseservice.HoleRequest, len(pars))
	for i, par := range pars {
		holes[i] = courseservice.HoleRequest{HoleNumber: i + 1, Par: par}
	}
	return courseservice.CreateCourseRequest{
		Name:     fmt.Sprintf("%s Links %d", g.faker.City(), g.faker.IntRange(1, 9999)),
		NumHoles: len(pars),
		Holes:    holes,
	}
}

// RandomPars returns n pars between 3 and 5.
func (g *TestDataGenerator) RandomPars(n int) []int {
	pars := make([]int, n)
	for i := range pars {
		pars[i] = g.faker.IntRange(3, 5)
	}
	return pars
}
