package pagination

import "testing"

func TestDefaults(t *testing.T) {
	p := PageRequest{}
	p.Defaults()
	if p.Page != 1 || p.PageSize != DefaultPageSize {
		t.Errorf("expected 1/%d, got %d/%d", DefaultPageSize, p.Page, p.PageSize)
	}

	p = PageRequest{Page: 3, PageSize: 500}
	p.Defaults()
	if p.PageSize != MaxPageSize {
		t.Errorf("expected page size capped at %d, got %d", MaxPageSize, p.PageSize)
	}
	if p.Offset() != 200 {
		t.Errorf("expected offset 200, got %d", p.Offset())
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[int](nil, 1, 20, 41)
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.TotalPages)
	}
	if resp.Data == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestPageSlice(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	t.Run("middle_page", func(t *testing.T) {
		resp := PageSlice(items, PageRequest{Page: 2, PageSize: 2})
		if len(resp.Data) != 2 || resp.Data[0] != "c" || resp.Data[1] != "d" {
			t.Errorf("expected [c d], got %v", resp.Data)
		}
		if resp.TotalItems != 5 || resp.TotalPages != 3 {
			t.Errorf("expected 5 items over 3 pages, got %d/%d", resp.TotalItems, resp.TotalPages)
		}
	})

	t.Run("past_the_end", func(t *testing.T) {
		resp := PageSlice(items, PageRequest{Page: 9, PageSize: 2})
		if len(resp.Data) != 0 {
			t.Errorf("expected empty page, got %v", resp.Data)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		resp := PageSlice(items, PageRequest{})
		if len(resp.Data) != 5 || resp.Page != 1 {
			t.Errorf("expected all items on page 1, got %v on %d", resp.Data, resp.Page)
		}
	})
}
