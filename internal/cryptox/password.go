// Package cryptox implements the password schemes an account record can be
// stored under.
//
// The default scheme is plain: the record keeps the password as typed, which
// matches the historical local-storage layout. argon2id and bcrypt are opt-in.
// Each record carries the name of the scheme it was stored under and Verify
// dispatches on that name, never on the stored value's shape, so a plain
// password that looks like a hash still verifies and changing the configured
// scheme never locks out older records.
package cryptox

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophprofile/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Scheme names accepted by NewHasher.
const (
	SchemePlain    = "plain"
	SchemeArgon2id = "argon2id"
	SchemeBcrypt   = "bcrypt"
)

const (
	argonPrefix  = SchemeArgon2id + "$"
	argonSaltLen = 16
	argonKeyLen  = 32
)

// Hasher turns a password into its stored form under Scheme and checks
// candidates against values it produced.
type Hasher interface {
	Scheme() string
	Hash(password string) (string, error)
	Verify(stored, candidate string) bool
}

// NewHasher returns the Hasher for the named scheme.
func NewHasher(scheme string) (Hasher, error) {
	switch scheme {
	case SchemePlain, "":
		return plainHasher{}, nil
	case SchemeArgon2id:
		return argonHasher{}, nil
	case SchemeBcrypt:
		return bcryptHasher{cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

// Verify checks candidate against stored, which was written under scheme.
// An empty scheme means plain. An unknown scheme never verifies.
func Verify(scheme, stored, candidate string) bool {
	switch scheme {
	case SchemePlain, "":
		return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
	case SchemeArgon2id:
		return verifyArgon(stored, candidate)
	case SchemeBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	default:
		return false
	}
}

type plainHasher struct{}

func (plainHasher) Scheme() string                       { return SchemePlain }
func (plainHasher) Hash(password string) (string, error) { return password, nil }
func (plainHasher) Verify(stored, candidate string) bool {
	return Verify(SchemePlain, stored, candidate)
}

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, argonKeyLen)
}

type argonHasher struct{}

func (argonHasher) Scheme() string { return SchemeArgon2id }

func (argonHasher) Hash(password string) (string, error) {
	salt := common.GenerateRandByteArray(argonSaltLen)
	pw := []byte(password)
	defer common.WipeByteArray(pw)

	key := DeriveKey(pw, salt)
	return argonPrefix + hex.EncodeToString(salt) + "$" + hex.EncodeToString(key), nil
}

func (argonHasher) Verify(stored, candidate string) bool {
	return Verify(SchemeArgon2id, stored, candidate)
}

func verifyArgon(stored, candidate string) bool {
	if !strings.HasPrefix(stored, argonPrefix) {
		return false
	}
	parts := strings.Split(strings.TrimPrefix(stored, argonPrefix), "$")
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	got := DeriveKey([]byte(candidate), salt)
	return subtle.ConstantTimeCompare(got, want) == 1
}

type bcryptHasher struct {
	cost int
}

func (bcryptHasher) Scheme() string { return SchemeBcrypt }

func (b bcryptHasher) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(h), nil
}

func (bcryptHasher) Verify(stored, candidate string) bool {
	return Verify(SchemeBcrypt, stored, candidate)
}
