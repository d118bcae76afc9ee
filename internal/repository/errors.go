// Package repository implements MySQL-backed persistence for the
// booking service.  Repositories satisfy the store interfaces declared
// in the booking package; domain failures surface as the booking
// package's error types so handlers never inspect SQL errors.
package repository

import "errors"

// ErrEmailExists is returned when registration hits the unique email
// constraint.  Handlers translate it into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrMovieNotFound is returned when a catalog lookup references a
// movie that does not exist.
var ErrMovieNotFound = errors.New("movie not found")
