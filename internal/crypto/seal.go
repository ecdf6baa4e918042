package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const (
	// The current supported version of the sealed envelope format.
	envelopeVersion = 1
	saltBytes       = 16

	// Upper bounds on scrypt parameters read from an envelope. N = 1<<20 with
	// r = 16 already needs 2 GiB; anything larger is refused unopened.
	maxScryptN = 1 << 20
	maxScryptR = 16
	maxScryptP = 4
)

var (
	// Returned when the passphrase is incorrect or the ciphertext has been modified / corrupted.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted secret")
	// ErrNotSealed is returned by Open for input that is not an envelope.
	ErrNotSealed = errors.New("value is not a sealed secret")
)

// envelope is the JSON structure holding the ciphertext and KDF parameters.
type envelope struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }

// Seal encrypts plaintext under a key derived from passphrase and returns
// the envelope as standard base64.
func Seal(passphrase string, plaintext []byte) (string, error) {
	if passphrase == "" {
		return "", errors.New("seal: passphrase required")
	}
	var salt [saltBytes]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return "", err
	}
	N, r, p := scryptParamsDefault()
	key, err := scrypt.Key([]byte(passphrase), salt[:], N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return "", err
	}
	defer Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return "", err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; salt‑bound key guarantees uniqueness
	ct := aead.Seal(nil, nonce[:], plaintext, salt[:])

	b, err := json.Marshal(envelope{
		V:      envelopeVersion,
		Salt:   salt[:],
		N:      N,
		R:      r,
		P:      p,
		Cipher: ct,
	})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Open reverses Seal.
func Open(passphrase, sealed string) ([]byte, error) {
	env, err := parse(sealed)
	if err != nil {
		return nil, err
	}
	if env.V > envelopeVersion {
		return nil, fmt.Errorf("unsupported envelope version %d", env.V)
	}

	key, err := scrypt.Key([]byte(passphrase), env.Salt, env.N, env.R, env.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], env.Cipher, env.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

// IsSealed reports whether s looks like the output of Seal.
func IsSealed(s string) bool {
	_, err := parse(s)
	return err == nil
}

func parse(s string) (envelope, error) {
	var env envelope
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return env, ErrNotSealed
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return env, ErrNotSealed
	}
	if env.V == 0 || len(env.Salt) != saltBytes || len(env.Cipher) == 0 {
		return env, ErrNotSealed
	}
	if env.N < 2 || env.N > maxScryptN || env.R < 1 || env.R > maxScryptR || env.P < 1 || env.P > maxScryptP {
		return env, fmt.Errorf("%w: scrypt parameters N=%d r=%d p=%d out of range", ErrNotSealed, env.N, env.R, env.P)
	}
	return env, nil
}
