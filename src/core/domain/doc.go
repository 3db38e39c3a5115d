// Package domain contains the core domain model for the application.
//
// This package defines:
//   - Entities: Core business objects with identity (User, Joke)
//   - Domain Errors: Business rule violation errors
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
//
// The ownership model is one-to-many: a User exclusively owns zero or more
// Jokes, and a Joke back-references its owner for authorization checks and
// serialization only. Deleting a Joke never affects its User.
package domain
