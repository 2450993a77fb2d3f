package hashing

import (
	"crypto/rand"
	"fmt"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/models"
)

// GenerateSalt returns 16 bytes from the operating system CSPRNG.
// It panics if the entropy source fails.
func GenerateSalt() models.Salt {
	var s models.Salt
	if _, err := rand.Read(s[:]); err != nil {
		panic(fmt.Sprintf("hashing: reading system entropy: %v", err))
	}
	return s
}
