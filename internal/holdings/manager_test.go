package holdings

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	m, err := NewManager(filepath.Join(t.TempDir(), "holdings.json"), log)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return m
}

func TestAddListGet(t *testing.T) {
	m := newTestManager(t)

	h, err := m.Add("bitcoin", "btc", "Bitcoin", 0.5, 40000)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if h.ID == "" {
		t.Error("expected generated id")
	}

	list := m.List()
	if len(list) != 1 {
		t.Fatalf("expected 1 holding, got %d", len(list))
	}

	got, err := m.Get(h.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AssetID != "bitcoin" || got.Quantity != 0.5 {
		t.Errorf("unexpected holding: %+v", got)
	}
}

func TestAdd_RejectsNonPositiveQuantity(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.Add("bitcoin", "btc", "Bitcoin", 0, 40000); err == nil {
		t.Error("expected error for zero quantity")
	}
	if _, err := m.Add("bitcoin", "btc", "Bitcoin", -1, 40000); err == nil {
		t.Error("expected error for negative quantity")
	}
}

func TestUpdate(t *testing.T) {
	m := newTestManager(t)
	h, _ := m.Add("ethereum", "eth", "Ethereum", 2, 2000)

	updated, err := m.Update(h.ID, 3, 2100)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Quantity != 3 || updated.AvgBuyPrice != 2100 {
		t.Errorf("unexpected update result: %+v", updated)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && updated.UpdatedAt != updated.CreatedAt {
		t.Error("updated_at must not precede created_at")
	}

	if _, err := m.Update("nonexistent", 1, 1); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	m := newTestManager(t)
	h, _ := m.Add("bitcoin", "btc", "Bitcoin", 1, 40000)

	if err := m.Remove(h.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(m.List()) != 0 {
		t.Error("expected empty ledger after removal")
	}
	if err := m.Remove(h.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPersistenceAcrossManagers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holdings.json")
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	first, err := NewManager(path, log)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if _, err := first.Add("bitcoin", "btc", "Bitcoin", 1, 40000); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := first.Add("ethereum", "eth", "Ethereum", 10, 2000); err != nil {
		t.Fatalf("add: %v", err)
	}

	second, err := NewManager(path, log)
	if err != nil {
		t.Fatalf("reopen manager: %v", err)
	}
	if len(second.List()) != 2 {
		t.Errorf("expected 2 holdings after reload, got %d", len(second.List()))
	}
}

func TestAssetIDs_Distinct(t *testing.T) {
	m := newTestManager(t)
	m.Add("bitcoin", "btc", "Bitcoin", 1, 40000)
	m.Add("bitcoin", "btc", "Bitcoin", 2, 35000)
	m.Add("ethereum", "eth", "Ethereum", 5, 2000)

	ids := m.AssetIDs()
	if len(ids) != 2 {
		t.Fatalf("expected 2 distinct asset ids, got %d", len(ids))
	}
	if ids[0] != "bitcoin" || ids[1] != "ethereum" {
		t.Errorf("expected first-seen order, got %v", ids)
	}
}
