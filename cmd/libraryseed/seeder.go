package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-records-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-records-go/library/features/command/changebookstatus"
	"github.com/AntonStoeckl/library-records-go/library/features/command/registeruser"
	"github.com/AntonStoeckl/library-records-go/recordstore"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
)

type seedStats struct {
	UsersRegistered int
	BooksAdded      int
	BooksBorrowed   int
	Skipped         int
}

type seeder struct {
	registerUser     registeruser.CommandHandler
	addBook          addbook.CommandHandler
	changeBookStatus changebookstatus.CommandHandler
}

func newSeeder(store *postgresengine.Store) seeder {
	return seeder{
		registerUser:     registeruser.NewCommandHandler(store),
		addBook:          addbook.NewCommandHandler(store),
		changeBookStatus: changebookstatus.NewCommandHandler(store),
	}
}

// Seed writes the plan. Users and books which already exist and books which are already borrowed are skipped.
func (s seeder) Seed(ctx context.Context, p plan) (seedStats, error) {
	stats := seedStats{}

	for _, user := range p.Users {
		command, err := registeruser.BuildCommand(user.CardNumber, user.FirstName, user.LastName)
		if err != nil {
			return stats, err
		}

		if err = s.apply(ctx, &stats, &stats.UsersRegistered, func(ctx context.Context) error {
			_, handleErr := s.registerUser.Handle(ctx, command)
			return handleErr
		}); err != nil {
			return stats, fmt.Errorf("register user %s: %w", user.CardNumber, err)
		}
	}

	for _, book := range p.Books {
		command, err := addbook.BuildCommand(book.SerialNumber, book.Title, book.Author)
		if err != nil {
			return stats, err
		}

		if err = s.apply(ctx, &stats, &stats.BooksAdded, func(ctx context.Context) error {
			_, handleErr := s.addBook.Handle(ctx, command)
			return handleErr
		}); err != nil {
			return stats, fmt.Errorf("add book %s: %w", book.SerialNumber, err)
		}
	}

	for _, lending := range p.Lendings {
		borrowDate := lending.BorrowDate
		card := lending.CardNumber

		command, err := changebookstatus.BuildCommand(lending.SerialNumber, true, &borrowDate, &card)
		if err != nil {
			return stats, err
		}

		if err = s.apply(ctx, &stats, &stats.BooksBorrowed, func(ctx context.Context) error {
			_, handleErr := s.changeBookStatus.Handle(ctx, command)
			return handleErr
		}); err != nil {
			return stats, fmt.Errorf("lend book %s: %w", lending.SerialNumber, err)
		}
	}

	return stats, nil
}

func (s seeder) apply(ctx context.Context, stats *seedStats, counter *int, write func(ctx context.Context) error) error {
	err := write(ctx)

	switch {
	case err == nil:
		*counter++
		return nil

	case errors.Is(err, recordstore.ErrDuplicateKey), errors.Is(err, recordstore.ErrBookAlreadyBorrowed):
		stats.Skipped++
		return nil

	default:
		return err
	}
}
