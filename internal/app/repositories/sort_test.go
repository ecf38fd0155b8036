package repositories

import "testing"

func TestOrderByAllowList(t *testing.T) {
	allowList := map[string]string{
		"firstName": "s.first_name",
		"email":     "s.email",
	}

	tests := []struct {
		sortBy    string
		sortOrder string
		want      string
	}{
		{"firstName", "asc", "s.first_name ASC"},
		{"email", "desc", "s.email DESC"},
		{"email", "DESC", "s.email DESC"},
		// unknown fields fall back to the default column
		{"password", "asc", "s.first_name ASC"},
		{"1; DROP TABLE students", "asc", "s.first_name ASC"},
		{"", "bogus", "s.first_name ASC"},
	}

	for _, tt := range tests {
		got := orderBy(allowList, tt.sortBy, "s.first_name", tt.sortOrder)
		if got != tt.want {
			t.Errorf("orderBy(%q, %q) = %q, want %q", tt.sortBy, tt.sortOrder, got, tt.want)
		}
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		page, pageSize int
		wantOffset     uint64
		wantLimit      int
	}{
		{1, 10, 0, 10},
		{3, 25, 50, 25},
		{0, 10, 0, 10},
		{-5, 10, 0, 10},
		{2, 0, 10, 10},
		{2, 1000, 10, 10},
	}

	for _, tt := range tests {
		offset, limit := pageWindow(tt.page, tt.pageSize)
		if offset != tt.wantOffset || limit != tt.wantLimit {
			t.Errorf("pageWindow(%d, %d) = (%d, %d), want (%d, %d)",
				tt.page, tt.pageSize, offset, limit, tt.wantOffset, tt.wantLimit)
		}
	}
}
