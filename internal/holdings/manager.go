// Package holdings is the user position ledger: file-backed CRUD for the
// assets the portfolio analyzer runs over.
package holdings

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"CoinSentinel/internal/model"
)

// ErrNotFound is returned when a holding id is unknown.
var ErrNotFound = fmt.Errorf("holding not found")

// Manager handles ledger operations with concurrency safety. Every
// mutation is persisted to disk before it returns.
type Manager struct {
	mu       sync.Mutex
	ledger   *model.Ledger
	filePath string
	log      *logrus.Entry
}

// NewManager creates a Manager, loading existing state from disk.
func NewManager(filePath string, log *logrus.Logger) (*Manager, error) {
	ledger, err := LoadLedger(filePath)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return &Manager{
		ledger:   ledger,
		filePath: filePath,
		log:      log.WithField("component", "holdings"),
	}, nil
}

// List returns a copy of all holdings.
func (m *Manager) List() []model.Holding {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Holding, len(m.ledger.Holdings))
	copy(out, m.ledger.Holdings)
	return out
}

// Get returns the holding with the given id.
func (m *Manager) Get(id string) (model.Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.ledger.Holdings {
		if h.ID == id {
			return h, nil
		}
	}
	return model.Holding{}, ErrNotFound
}

// Add creates a new holding and persists the ledger.
func (m *Manager) Add(assetID, symbol, name string, quantity, avgBuyPrice float64) (model.Holding, error) {
	if quantity <= 0 {
		return model.Holding{}, fmt.Errorf("quantity must be positive")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	h := model.Holding{
		ID:          uuid.NewString(),
		AssetID:     assetID,
		Symbol:      symbol,
		Name:        name,
		Quantity:    quantity,
		AvgBuyPrice: avgBuyPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.ledger.Holdings = append(m.ledger.Holdings, h)

	if err := m.save(); err != nil {
		// Roll the in-memory state back so memory and disk agree.
		m.ledger.Holdings = m.ledger.Holdings[:len(m.ledger.Holdings)-1]
		return model.Holding{}, err
	}

	m.log.WithFields(logrus.Fields{"asset": assetID, "quantity": quantity}).Info("holding added")
	return h, nil
}

// Update changes quantity and average buy price of an existing holding.
func (m *Manager) Update(id string, quantity, avgBuyPrice float64) (model.Holding, error) {
	if quantity <= 0 {
		return model.Holding{}, fmt.Errorf("quantity must be positive")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.ledger.Holdings {
		if m.ledger.Holdings[i].ID != id {
			continue
		}
		prev := m.ledger.Holdings[i]
		m.ledger.Holdings[i].Quantity = quantity
		m.ledger.Holdings[i].AvgBuyPrice = avgBuyPrice
		m.ledger.Holdings[i].UpdatedAt = time.Now()

		if err := m.save(); err != nil {
			m.ledger.Holdings[i] = prev
			return model.Holding{}, err
		}
		return m.ledger.Holdings[i], nil
	}
	return model.Holding{}, ErrNotFound
}

// Remove deletes a holding and persists the ledger.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.ledger.Holdings {
		if m.ledger.Holdings[i].ID != id {
			continue
		}
		removed := m.ledger.Holdings[i]
		m.ledger.Holdings = append(m.ledger.Holdings[:i], m.ledger.Holdings[i+1:]...)

		if err := m.save(); err != nil {
			m.ledger.Holdings = append(m.ledger.Holdings, removed)
			return err
		}
		m.log.WithField("asset", removed.AssetID).Info("holding removed")
		return nil
	}
	return ErrNotFound
}

// AssetIDs returns the distinct asset identifiers across all holdings, in
// first-seen order.
func (m *Manager) AssetIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool)
	var ids []string
	for _, h := range m.ledger.Holdings {
		if !seen[h.AssetID] {
			seen[h.AssetID] = true
			ids = append(ids, h.AssetID)
		}
	}
	return ids
}

func (m *Manager) save() error {
	return SaveLedger(m.filePath, m.ledger)
}
