package domain

import "time"

// User represents a registered account.
// PasswordHash is a one-way bcrypt derivation and never leaves the server.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Joke represents a joke in a user's collection.
//
// ExternalID is set only for jokes ingested from the external feed; it is nil
// for user-authored jokes. OwnerID is nullable: records created without an
// owner context are treated as unclaimed and remain writable by any
// authenticated user, while owned records are writable only by their owner.
type Joke struct {
	ID         int64
	ExternalID *string
	Value      string
	Category   *string
	OwnerID    *int64
	CreatedAt  time.Time

	// OwnerUsername is resolved from the owning user for serialization.
	// Nil when the joke has no owner.
	OwnerUsername *string
}

// OwnedBy reports whether the joke belongs to the given user.
// An unclaimed joke (nil owner) belongs to nobody.
func (j *Joke) OwnedBy(userID int64) bool {
	return j.OwnerID != nil && *j.OwnerID == userID
}
