package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	firstUserCardNumber = 100000
	firstBookSerial     = 500000
	maxRecords          = 400000
	maxBorrowAgeDays    = 30
)

var (
	errInvalidSeedConfig = errors.New("invalid seed configuration")

	firstNames = []string{"Ada", "Grace", "Alan", "Barbara", "Edsger", "Margaret", "Donald", "Frances", "Ken", "Radia"}
	lastNames  = []string{"Lovelace", "Hopper", "Turing", "Liskov", "Dijkstra", "Hamilton", "Knuth", "Allen", "Thompson", "Perlman"}
	titles     = []string{
		"Learning Domain-Driven Design",
		"Domain-Driven Design",
		"Implementing Domain-Driven Design",
		"Refactoring",
		"Working Effectively with Legacy Code",
		"The Go Programming Language",
		"Designing Data-Intensive Applications",
		"Release It!",
	}
	authors = []string{"Vlad Khononov", "Eric Evans", "Vaughn Vernon", "Martin Fowler", "Michael Feathers", "Alan Donovan", "Martin Kleppmann", "Michael Nygard"}
)

type seedConfig struct {
	NumUsers    int
	NumBooks    int
	BorrowRatio float64
	RandomSeed  uint64
	Today       time.Time
}

type plannedUser struct {
	CardNumber string
	FirstName  string
	LastName   string
}

type plannedBook struct {
	SerialNumber string
	Title        string
	Author       string
}

type plannedLending struct {
	SerialNumber string
	CardNumber   string
	BorrowDate   time.Time
}

type plan struct {
	Users    []plannedUser
	Books    []plannedBook
	Lendings []plannedLending
}

// newPlan generates the records to seed. The same config always yields the same plan.
func newPlan(cfg seedConfig) (plan, error) {
	if cfg.NumUsers < 0 || cfg.NumUsers > maxRecords || cfg.NumBooks < 0 || cfg.NumBooks > maxRecords {
		return plan{}, errors.Join(errInvalidSeedConfig, fmt.Errorf("users and books must be between 0 and %d", maxRecords))
	}

	if cfg.BorrowRatio < 0 || cfg.BorrowRatio > 1 {
		return plan{}, errors.Join(errInvalidSeedConfig, errors.New("borrow ratio must be between 0.0 and 1.0"))
	}

	rng := rand.New(rand.NewPCG(cfg.RandomSeed, cfg.RandomSeed)) //nolint:gosec

	result := plan{
		Users: make([]plannedUser, 0, cfg.NumUsers),
		Books: make([]plannedBook, 0, cfg.NumBooks),
	}

	for i := range cfg.NumUsers {
		result.Users = append(result.Users, plannedUser{
			CardNumber: fmt.Sprintf("%06d", firstUserCardNumber+i),
			FirstName:  firstNames[rng.IntN(len(firstNames))],
			LastName:   lastNames[rng.IntN(len(lastNames))],
		})
	}

	for i := range cfg.NumBooks {
		book := plannedBook{
			SerialNumber: fmt.Sprintf("%06d", firstBookSerial+i),
			Title:        titles[rng.IntN(len(titles))],
			Author:       authors[rng.IntN(len(authors))],
		}
		result.Books = append(result.Books, book)

		if cfg.NumUsers == 0 || rng.Float64() >= cfg.BorrowRatio {
			continue
		}

		result.Lendings = append(result.Lendings, plannedLending{
			SerialNumber: book.SerialNumber,
			CardNumber:   result.Users[rng.IntN(cfg.NumUsers)].CardNumber,
			BorrowDate:   cfg.Today.AddDate(0, 0, -rng.IntN(maxBorrowAgeDays)),
		})
	}

	return result, nil
}
