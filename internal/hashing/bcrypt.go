package hashing

import (
	"fmt"

	"golang.org/x/crypto/blowfish"
)

// magicCipherData is "OrpheanBeholderScryDoubt".
var magicCipherData = []byte{
	0x4f, 0x72, 0x70, 0x68,
	0x65, 0x61, 0x6e, 0x42,
	0x65, 0x68, 0x6f, 0x6c,
	0x64, 0x65, 0x72, 0x53,
	0x63, 0x72, 0x79, 0x44,
	0x6f, 0x75, 0x62, 0x74,
}

// eksBlowfish is the bcrypt core without the modular-crypt encoding: all 24
// ciphertext bytes are returned and the key is used as given, with no
// trailing NUL appended.
func eksBlowfish(cost uint32, salt, key []byte) ([]byte, error) {
	c, err := blowfish.NewSaltedCipher(key, salt)
	if err != nil {
		return nil, fmt.Errorf("blowfish setup: %w", err)
	}

	rounds := uint64(1) << cost
	for i := uint64(0); i < rounds; i++ {
		blowfish.ExpandKey(key, c)
		blowfish.ExpandKey(salt, c)
	}

	out := make([]byte, len(magicCipherData))
	copy(out, magicCipherData)
	for i := 0; i < len(out); i += blowfish.BlockSize {
		for j := 0; j < 64; j++ {
			c.Encrypt(out[i:i+blowfish.BlockSize], out[i:i+blowfish.BlockSize])
		}
	}
	return out, nil
}
