package action

import (
	"strings"
	"testing"

	"github.com/quickvc/commit-control/internal/vcs"
)

func TestCommitItemsAlignsColumns(t *testing.T) {
	items := CommitItems([]vcs.Commit{
		{ID: "aaaaaaaaaaaa", Comment: "first change", Position: 0},
		{ID: "bbbbbbbbbbbb", Comment: "second", Position: 1},
	})
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "aaaaaaaaaaaa" {
		t.Fatalf("item must carry the full identifier, got %q", items[0].ID)
	}
	if !strings.Contains(items[0].Label, "aaaaaaaa") {
		t.Fatalf("label must show the short identifier: %q", items[0].Label)
	}
	if !strings.Contains(items[0].Label, "1") || !strings.Contains(items[1].Label, "2") {
		t.Fatalf("labels must show 1-based positions: %q %q", items[0].Label, items[1].Label)
	}
}

func TestCommitItemsPlaceholderForEmptyComment(t *testing.T) {
	items := CommitItems([]vcs.Commit{{ID: "cccccccccccc", Comment: ""}})
	if !strings.Contains(items[0].Label, "(no comment)") {
		t.Fatalf("expected placeholder comment, got %q", items[0].Label)
	}
}

func TestCommitItemsEmptyList(t *testing.T) {
	if items := CommitItems(nil); items != nil {
		t.Fatalf("expected nil for empty input, got %v", items)
	}
}
