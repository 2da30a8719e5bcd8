// Package userbycard implements the User By Card Number query use case.
//
// It returns one registered user, or recordstore.ErrUserNotFound.
package userbycard
