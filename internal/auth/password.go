package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher はパスワードのハッシュ化と照合を提供します。
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify は一致すれば true を返します。ハッシュが壊れている場合のみエラーを返します。
	Verify(hash, password string) (bool, error)
}

// BcryptHasher は bcrypt による PasswordHasher です。
// bcrypt は 72 バイトを超える入力を扱えないため、SHA-256 の base64 表現（44 バイト）をハッシュ化します。
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher は BcryptHasher を作成します。cost が範囲外の場合は既定値を使います。
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), prehash(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(encoded, sum[:])
	return encoded
}
