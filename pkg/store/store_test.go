package store

import (
	"context"
	"testing"
)

// backends lists the stores testable without external services.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	file, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return map[string]Store{
		"Memory": NewMemory(),
		"File":   file,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			rec, err := s.Save(ctx, "eyJ2IjoxfQ")
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			if rec.ID == "" {
				t.Fatal("Save returned empty id")
			}
			if rec.CreatedAt.IsZero() {
				t.Error("CreatedAt not set")
			}

			got, err := s.Get(ctx, rec.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Token != "eyJ2IjoxfQ" {
				t.Errorf("token = %q", got.Token)
			}

			if err := s.Delete(ctx, rec.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get(ctx, rec.ID); err != ErrNotFound {
				t.Errorf("Get after delete = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStoreRejectsEmptyToken(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			if _, err := s.Save(ctx, ""); err != ErrEmptyToken {
				t.Errorf("Save(\"\") = %v, want ErrEmptyToken", err)
			}
		})
	}
}

func TestStoreUnknownID(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()
			if _, err := s.Get(ctx, "no-such-id"); err != ErrNotFound {
				t.Errorf("Get = %v, want ErrNotFound", err)
			}
			// Deleting an absent id is not an error.
			if err := s.Delete(ctx, "no-such-id"); err != nil {
				t.Errorf("Delete = %v, want nil", err)
			}
		})
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
