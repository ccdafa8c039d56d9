package model

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
)

func TestNewMarket(t *testing.T) {
	t.Run("valid market", func(t *testing.T) {
		m, err := NewMarket("  Ferry Plaza  ", "1 Ferry Building", "farmers")
		if err != nil {
			t.Fatalf("NewMarket: %v", err)
		}
		if m.Name() != "Ferry Plaza" {
			t.Errorf("name = %q, want trimmed %q", m.Name(), "Ferry Plaza")
		}
		if m.Deleted() {
			t.Error("new market must not be deleted")
		}
	})

	t.Run("name required", func(t *testing.T) {
		if _, err := NewMarket("   ", "addr", "farmers"); !errors.Is(err, domainerror.ErrMarketNameRequired) {
			t.Errorf("err = %v, want ErrMarketNameRequired", err)
		}
	})
}

func TestReconstructMarketDeleted(t *testing.T) {
	deletedAt := time.Now().UTC()
	m := ReconstructMarket("m1", "Old Market", "addr", "farmers", &deletedAt, time.Now().UTC())
	if !m.Deleted() {
		t.Error("expected reconstructed market with deletedAt to be deleted")
	}
}
