package identity

import (
	"fmt"
	"math/rand"
	"time"
)

const guestPrefix = "Guest"

// CookieName carries the signed identity token between page loads and
// websocket connects.
const CookieName = "chat_identity"

// Assign returns existing unchanged when present, otherwise a fresh guest
// name. Nothing enforces uniqueness; the random suffix only makes collisions
// unlikely.
func Assign(existing string) string {
	if existing != "" {
		return existing
	}
	return NewGuestName()
}

// NewGuestName builds "Guest" + current HHMM + a random number in
// [1000, 9999].
func NewGuestName() string {
	now := time.Now()
	return fmt.Sprintf("%s%02d%02d%d", guestPrefix, now.Hour(), now.Minute(), 1000+rand.Intn(9000))
}
