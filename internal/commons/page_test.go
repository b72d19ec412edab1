package commons

import "testing"

func TestNewPageComputesTotalPages(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, 0, 3, 7)

	if page.Page.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", page.Page.TotalPages)
	}
	if page.Page.TotalElements != 7 {
		t.Fatalf("expected 7 total elements, got %d", page.Page.TotalElements)
	}
}

func TestNewPageEmptyResult(t *testing.T) {
	page := NewPage([]int{}, 0, 20, 0)

	if page.Page.TotalPages != 0 {
		t.Fatalf("expected 0 total pages, got %d", page.Page.TotalPages)
	}
	if len(page.Content) != 0 {
		t.Fatalf("expected no content, got %d", len(page.Content))
	}
}
