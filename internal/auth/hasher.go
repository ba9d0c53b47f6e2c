package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashCost — фиксированная стоимость bcrypt (10 раундов)
const HashCost = 10

var (
	ErrMismatchedPassword = errors.New("password does not match")
	ErrPasswordTooLong    = bcrypt.ErrPasswordTooLong
)

// Hasher хеширует и сверяет пароли через bcrypt.
// Одновременно выполняется не больше concurrency операций, остальные ждут слот
// или отмены контекста, поэтому всплеск логинов не занимает все ядра.
type Hasher struct {
	cost  int
	slots chan struct{}

	// хеш для CompareDummy считается заранее, чтобы первый вызов не был медленнее остальных
	dummyHash []byte
	dummyErr  error
}

func NewHasher(concurrency int) *Hasher {
	if concurrency <= 0 {
		concurrency = 1
	}
	h := &Hasher{
		cost:  HashCost,
		slots: make(chan struct{}, concurrency),
	}
	h.dummyHash, h.dummyErr = bcrypt.GenerateFromPassword([]byte("dummy-password"), h.cost)
	return h
}

// Hash возвращает bcrypt-хеш пароля
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.acquire(ctx); err != nil {
		return "", err
	}
	defer h.release()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Compare сверяет пароль с хешем, при несовпадении возвращает ErrMismatchedPassword
func (h *Hasher) Compare(ctx context.Context, hash, password string) error {
	if err := h.acquire(ctx); err != nil {
		return err
	}
	defer h.release()

	return compare([]byte(hash), password)
}

// CompareDummy тратит на проверку столько же времени, сколько Compare,
// но всегда завершается неудачей. Используется, когда пользователь не найден.
func (h *Hasher) CompareDummy(ctx context.Context, password string) error {
	if h.dummyErr != nil {
		return fmt.Errorf("dummy hash: %w", h.dummyErr)
	}

	if err := h.acquire(ctx); err != nil {
		return err
	}
	defer h.release()

	_ = compare(h.dummyHash, password)
	return ErrMismatchedPassword
}

func compare(hash []byte, password string) error {
	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatchedPassword
	}
	if err != nil {
		return fmt.Errorf("compare password: %w", err)
	}
	return nil
}

func (h *Hasher) acquire(ctx context.Context) error {
	select {
	case h.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hasher) release() {
	<-h.slots
}
