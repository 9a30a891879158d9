package research

import (
	"context"
	"testing"
	"time"

	"github.com/bulldozer-ai/bulldozer-backend/internal/data/repos/testutil"
	types "github.com/bulldozer-ai/bulldozer-backend/internal/domain/research"
)

func TestFindingRepoNewestFirstAndSourceDocuments(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewFindingRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	p := testutil.SeedProject(t, ctx, gdb, "proj")
	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"early", "late"} {
		f := &types.ResearchFinding{
			ProjectID:       p.ID,
			Title:           title,
			Content:         "body",
			Category:        types.CategoryFact,
			Confidence:      0.8,
			SourceDocuments: types.DocumentIDs{3, 7},
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, f); err != nil {
			t.Fatalf("Create(%s): %v", title, err)
		}
	}

	list, err := repo.ListByProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(list) != 2 || list[0].Title != "late" || list[1].Title != "early" {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if len(list[0].SourceDocuments) != 2 || list[0].SourceDocuments[0] != 3 {
		t.Fatalf("source documents did not round-trip: %+v", list[0].SourceDocuments)
	}
}

// The store does not clamp confidence; [0,1] is a caller contract only.
// This pins the known gap rather than silently "fixing" it.
func TestFindingRepoAcceptsOutOfRangeConfidence(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewFindingRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	p := testutil.SeedProject(t, ctx, gdb, "proj")
	f := &types.ResearchFinding{
		ProjectID:  p.ID,
		Title:      "overconfident",
		Content:    "body",
		Category:   types.CategoryHypothesis,
		Confidence: 1.7,
	}
	if err := repo.Create(ctx, f); err != nil {
		t.Fatalf("Create: %v", err)
	}
	list, err := repo.ListByProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(list) != 1 || list[0].Confidence != 1.7 {
		t.Fatalf("expected stored confidence 1.7, got %+v", list)
	}
}

func TestDocumentRepoNewestFirst(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewDocumentRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	p := testutil.SeedProject(t, ctx, gdb, "proj")
	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"first", "second", "third"} {
		d := &types.ResearchDocument{
			ProjectID:    p.ID,
			Title:        title,
			DocumentType: "web",
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("Create(%s): %v", title, err)
		}
	}

	list, err := repo.ListByProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(list))
	}
	for i, want := range []string{"third", "second", "first"} {
		if list[i].Title != want {
			t.Fatalf("list[%d]: got %q, want %q", i, list[i].Title, want)
		}
	}
}

func TestChunkRepoOrdersByIndexNotCreation(t *testing.T) {
	gdb := testutil.DB(t)
	repo := NewChunkRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	p := testutil.SeedProject(t, ctx, gdb, "proj")
	d := testutil.SeedDocument(t, ctx, gdb, p.ID, "doc")

	// Inserted out of index order on purpose.
	base := time.Now().Add(-time.Minute)
	chunks := []*types.DocumentChunk{
		{DocumentID: d.ID, Content: "two", ChunkIndex: 2, CreatedAt: base},
		{DocumentID: d.ID, Content: "zero", ChunkIndex: 0, CreatedAt: base.Add(time.Second)},
		{DocumentID: d.ID, Content: "one", ChunkIndex: 1, CreatedAt: base.Add(2 * time.Second)},
	}
	if err := repo.CreateBatch(ctx, chunks); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}

	list, err := repo.ListByDocument(ctx, d.ID)
	if err != nil {
		t.Fatalf("ListByDocument: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(list))
	}
	for i, want := range []string{"zero", "one", "two"} {
		if list[i].Content != want {
			t.Fatalf("list[%d]: got %q, want %q", i, list[i].Content, want)
		}
	}

	if err := repo.CreateBatch(ctx, nil); err != nil {
		t.Fatalf("CreateBatch (empty): %v", err)
	}
}
