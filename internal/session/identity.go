package session

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var adjectives = []string{
	"Blue", "Red", "Green", "Golden", "Silver", "Cosmic", "Swift", "Brave",
	"Clever", "Mighty", "Silent", "Wild", "Fierce", "Noble", "Mystic", "Bright",
	"Dark", "Storm", "Fire", "Ice", "Thunder", "Shadow", "Crystal", "Royal",
}

var animals = []string{
	"Tiger", "Eagle", "Wolf", "Dragon", "Phoenix", "Lion", "Bear", "Hawk",
	"Panther", "Falcon", "Raven", "Fox", "Shark", "Cobra", "Lynx", "Jaguar",
	"Owl", "Viper", "Leopard", "Puma", "Orca", "Rhino", "Bison", "Stallion",
}

// roomCodeAlphabet excludes easily-confused characters (I, O, 0, 1).
const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const roomCodeLength = 6

var usernamePattern = regexp.MustCompile(`^[A-Z][a-z]+[A-Z][a-z]+\d{1,2}$`)

// GeneratePlayerID returns a new unique player id.
func GeneratePlayerID() string {
	return fmt.Sprintf("player_%d_%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}

// GenerateUsername returns a random AdjectiveAnimalNumber display name,
// e.g. "BlueTiger42".
func GenerateUsername() string {
	adjective := adjectives[rand.Intn(len(adjectives))]
	animal := animals[rand.Intn(len(animals))]
	number := rand.Intn(100)
	return fmt.Sprintf("%s%s%d", adjective, animal, number)
}

// ValidateUsername reports whether a name matches the generated
// AdjectiveAnimalNumber shape.
func ValidateUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// GenerateRoomCode returns a random 6-character room code.
func GenerateRoomCode() string {
	code := make([]byte, roomCodeLength)
	for i := range code {
		code[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
	}
	return string(code)
}
