package table

import "testing"

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"1", "abcd", "short"},
		{"10", "ab", "a much longer comment"},
	}
	out := Format(rows, []Alignment{AlignRight, AlignLeft, AlignLeft})
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	if out[0] != " 1  abcd  short" {
		t.Fatalf("unexpected first row: %q", out[0])
	}
	if out[1] != "10  ab    a much longer comment" {
		t.Fatalf("unexpected second row: %q", out[1])
	}
}

func TestFormatEmpty(t *testing.T) {
	if out := Format(nil, nil); out != nil {
		t.Fatalf("expected nil for empty rows, got %v", out)
	}
}

func TestFormatDefaultsToLeftAlignment(t *testing.T) {
	out := Format([][]string{{"a", "b"}, {"aa", "bb"}}, nil)
	if out[0] != "a   b" {
		t.Fatalf("unexpected row: %q", out[0])
	}
}
