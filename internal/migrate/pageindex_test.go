package migrate

import (
	"strings"
	"testing"

	"spip2jekyll/internal/db"
)

func TestPageIndex_PathNested(t *testing.T) {
	idx := BuildPageIndex([]db.ArticleStub{
		{ID: 1, Title: "About"},
		{ID: 2, Title: "The Team", Parent: 1},
	})

	got, err := idx.Path(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "about/the-team/" {
		t.Errorf("got %q, want %q", got, "about/the-team/")
	}
}

func TestPageIndex_PathRoot(t *testing.T) {
	idx := BuildPageIndex([]db.ArticleStub{{ID: 3, Title: "About"}})

	got, err := idx.Path(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "about/" {
		t.Errorf("got %q, want %q", got, "about/")
	}
}

func TestPageIndex_UnknownIDIsEmpty(t *testing.T) {
	idx := BuildPageIndex(nil)

	got, err := idx.Path(99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty path", got)
	}
}

func TestPageIndex_MissingParentStopsWalk(t *testing.T) {
	idx := BuildPageIndex([]db.ArticleStub{{ID: 2, Title: "Orphan", Parent: 42}})

	got, err := idx.Path(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "orphan/" {
		t.Errorf("got %q, want %q", got, "orphan/")
	}
}

func TestPageIndex_CycleFails(t *testing.T) {
	idx := BuildPageIndex([]db.ArticleStub{
		{ID: 1, Title: "A", Parent: 2},
		{ID: 2, Title: "B", Parent: 1},
	})

	_, err := idx.Path(1)
	if err == nil {
		t.Fatal("expected error for parent cycle")
	}
	if !strings.Contains(err.Error(), "cycle") {
		t.Errorf("error should mention a cycle, got: %v", err)
	}
}
