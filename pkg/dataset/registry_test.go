package dataset

import "testing"

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	rows := []Row{{"a": "1"}}
	entry := r.Register("orders", rows)
	if entry.ID == "" {
		t.Fatal("expected a non-empty assigned ID")
	}

	got, ok := r.Get("orders")
	if !ok {
		t.Fatal("expected dataset to be found")
	}
	if got.ID != entry.ID || len(got.Rows) != 1 {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestGetMissingReturnsFalse(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("nope"); ok {
		t.Fatal("expected missing dataset to report not found")
	}
}

func TestRegisterReplacesExistingName(t *testing.T) {
	r := NewRegistry()
	first := r.Register("orders", []Row{{"a": "1"}})
	second := r.Register("orders", []Row{{"a": "1"}, {"a": "2"}})
	if first.ID == second.ID {
		t.Fatal("expected re-registering to assign a fresh ID")
	}
	got, _ := r.Get("orders")
	if len(got.Rows) != 2 {
		t.Fatalf("expected replaced dataset to have 2 rows, got %d", len(got.Rows))
	}
}

func TestListReturnsAllEntries(t *testing.T) {
	r := NewRegistry()
	r.Register("a", nil)
	r.Register("b", nil)
	if got := len(r.List()); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
}
