package services

import (
	"context"
	"strings"
	"sync"

	"travel-itinerary-service/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type memoryAccount struct {
	user models.UserRecord
	hash []byte
}

// MemoryIdentityProvider keeps accounts in process memory with bcrypt hashed
// passwords. Accounts are lost on restart.
type MemoryIdentityProvider struct {
	mu       sync.RWMutex
	accounts map[string]memoryAccount
	cost     int
}

func NewMemoryIdentityProvider() *MemoryIdentityProvider {
	return &MemoryIdentityProvider{
		accounts: make(map[string]memoryAccount),
		cost:     bcrypt.DefaultCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *MemoryIdentityProvider) FindUserByEmail(_ context.Context, email string) (models.UserRecord, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	acct, ok := p.accounts[normalizeEmail(email)]
	if !ok {
		return models.UserRecord{}, models.ErrUserNotFound
	}
	return acct.user, nil
}

func (p *MemoryIdentityProvider) CreateUser(_ context.Context, nu models.NewUser) (models.UserRecord, error) {
	if len(nu.Password) < 8 {
		return models.UserRecord{}, models.ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), p.cost)
	if err != nil {
		// bcrypt refuses passwords longer than 72 bytes.
		return models.UserRecord{}, models.ErrWeakPassword
	}

	key := normalizeEmail(nu.Email)
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.accounts[key]; exists {
		return models.UserRecord{}, models.ErrUserExists
	}
	user := models.UserRecord{
		ID:          uuid.NewString(),
		Email:       key,
		DisplayName: strings.TrimSpace(nu.Name),
	}
	p.accounts[key] = memoryAccount{user: user, hash: hash}
	return user, nil
}

func (p *MemoryIdentityProvider) VerifyCredentials(_ context.Context, email, password string) (models.UserRecord, error) {
	p.mu.RLock()
	acct, ok := p.accounts[normalizeEmail(email)]
	p.mu.RUnlock()

	if !ok {
		return models.UserRecord{}, models.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(password)); err != nil {
		return models.UserRecord{}, models.ErrInvalidCredentials
	}
	return acct.user, nil
}
