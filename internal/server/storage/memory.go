// Package storage keeps the stub backend's state in process memory.
package storage

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmitrijs2005/paydesk/internal/common"
	"github.com/dmitrijs2005/paydesk/internal/server/models"
)

var (
	ErrUsernameTaken = errors.New("username taken")
	ErrEmailTaken    = errors.New("email taken")
)

// Memory is a goroutine-safe in-memory store. Returned records are copies.
type Memory struct {
	mu           sync.RWMutex
	users        map[int64]models.User
	samples      []models.Sample
	transactions []models.Transaction

	nextUserID   int64
	nextSampleID int64
	nextTxID     int64

	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{users: make(map[int64]models.User), now: time.Now}
}

// CreateUser assigns an id to u and stores it. Usernames are unique
// case-insensitively; so are non-empty emails.
func (m *Memory) CreateUser(_ context.Context, u models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return models.User{}, ErrUsernameTaken
		}
		if u.Email != "" && strings.EqualFold(existing.Email, u.Email) {
			return models.User{}, ErrEmailTaken
		}
	}

	m.nextUserID++
	u.ID = m.nextUserID
	m.users[u.ID] = u
	return u, nil
}

func (m *Memory) UserByID(_ context.Context, id int64) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return models.User{}, common.ErrorNotFound
	}
	return u, nil
}

func (m *Memory) findUser(match func(models.User) bool) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, common.ErrorNotFound
}

func (m *Memory) UserByUsername(_ context.Context, username string) (models.User, error) {
	return m.findUser(func(u models.User) bool { return strings.EqualFold(u.Username, username) })
}

func (m *Memory) UserByEmail(_ context.Context, email string) (models.User, error) {
	return m.findUser(func(u models.User) bool { return email != "" && strings.EqualFold(u.Email, email) })
}

func (m *Memory) UserByGoogleSubject(_ context.Context, sub string) (models.User, error) {
	return m.findUser(func(u models.User) bool { return sub != "" && u.GoogleSubject == sub })
}

// LinkGoogle records the identity-provider subject on an existing user.
func (m *Memory) LinkGoogle(_ context.Context, id int64, sub string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.GoogleSubject = sub
	m.users[id] = u
	return nil
}

func (m *Memory) AddSample(_ context.Context, name string, age int) models.Sample {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSampleID++
	s := models.Sample{ID: m.nextSampleID, Name: name, Age: age}
	m.samples = append(m.samples, s)
	return s
}

func (m *Memory) Samples(_ context.Context) []models.Sample {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Sample, len(m.samples))
	copy(out, m.samples)
	return out
}

// AddTransaction stores tx with a fresh id and creation time.
func (m *Memory) AddTransaction(_ context.Context, tx models.Transaction) models.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextTxID++
	tx.ID = m.nextTxID
	tx.CreatedAt = m.now().UTC()
	m.transactions = append(m.transactions, tx)
	return tx
}

// Transactions returns userID's transactions, newest first.
func (m *Memory) Transactions(_ context.Context, userID int64) []models.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Transaction, 0)
	for i := len(m.transactions) - 1; i >= 0; i-- {
		if m.transactions[i].UserID == userID {
			out = append(out, m.transactions[i])
		}
	}
	return out
}

// CompleteTransaction marks a pending transaction completed and credits its
// user in one step. Completing twice is a no-op.
func (m *Memory) CompleteTransaction(_ context.Context, transactionID string) (models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.transactions {
		tx := &m.transactions[i]
		if tx.TransactionID != transactionID {
			continue
		}
		if tx.Status == models.StatusPending {
			tx.Status = models.StatusCompleted
			if u, ok := m.users[tx.UserID]; ok {
				u.AccountValue = u.AccountValue.Add(decimal.NewFromInt(int64(tx.Credits)))
				m.users[u.ID] = u
			}
		}
		return *tx, nil
	}
	return models.Transaction{}, common.ErrorNotFound
}
