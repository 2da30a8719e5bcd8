// Package registeruser implements the Register User use case.
//
// A user is identified by a six digit card number which must not be taken yet.
package registeruser
