// internal/status/batch_test.go
package status

import (
	"context"
	"errors"
	"testing"
)

func TestExtractBatch_PreservesOrder(t *testing.T) {
	dir1, repo1 := initRepo(t)
	commitFile(t, repo1, dir1, "a.txt", "one", "first")
	plain := t.TempDir()
	dir2, repo2 := initRepo(t)
	commitFile(t, repo2, dir2, "b.txt", "two", "second")

	paths := []string{dir1, plain, dir2}

	infos, err := ExtractBatch(context.Background(), NewReader(), paths, 2)
	if err != nil {
		t.Fatalf("ExtractBatch() error = %v", err)
	}
	if len(infos) != len(paths) {
		t.Fatalf("got %d infos, want %d", len(infos), len(paths))
	}

	for i, want := range paths {
		if infos[i].Path != want {
			t.Errorf("infos[%d].Path = %q, want %q", i, infos[i].Path, want)
		}
	}

	if infos[0].Err != nil {
		t.Errorf("infos[0].Err = %v, want nil", infos[0].Err)
	}
	if !errors.Is(infos[1].Err, ErrNotRepository) {
		t.Errorf("infos[1].Err = %v, want ErrNotRepository", infos[1].Err)
	}
	if infos[2].Err != nil {
		t.Errorf("infos[2].Err = %v, want nil", infos[2].Err)
	}
}

func TestExtractBatch_DefaultLimit(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "one", "first")

	infos, err := ExtractBatch(context.Background(), NewReader(), []string{dir}, 0)
	if err != nil {
		t.Fatalf("ExtractBatch() error = %v", err)
	}
	if len(infos) != 1 || infos[0].Err != nil {
		t.Fatalf("infos = %+v, want one clean result", infos)
	}
}

func TestExtractBatch_Empty(t *testing.T) {
	infos, err := ExtractBatch(context.Background(), NewReader(), nil, 4)
	if err != nil {
		t.Fatalf("ExtractBatch() error = %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("got %d infos, want 0", len(infos))
	}
}

func TestExtractBatch_CancelledContext(t *testing.T) {
	dir, repo := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "one", "first")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ExtractBatch(ctx, NewReader(), []string{dir, dir, dir}, 1); err == nil {
		t.Fatal("ExtractBatch() with a cancelled context succeeded, want error")
	}
}
