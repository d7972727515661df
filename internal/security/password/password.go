// Package password — проверка учётных данных поверх bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher хэширует и сверяет пароли. Нулевое значение использует bcrypt.DefaultCost.
type Hasher struct {
	Cost int
}

// NewHasher возвращает Hasher с cost, зажатым в границы bcrypt.
func NewHasher(cost int) Hasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}

	return Hasher{Cost: cost}
}

// Hash хэширует пароль с помощью bcrypt.
func (h Hasher) Hash(plain string) (string, error) {
	const op = "security.password.Hash"

	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(b), nil
}

// Verify сверяет пароль с хэшем. Повреждённый хэш — это просто несовпадение.
func (h Hasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
