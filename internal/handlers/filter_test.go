package handlers

import "testing"

func TestMatchesQuery(t *testing.T) {
	testCases := []struct {
		name   string
		query  string
		fields []string
		want   bool
	}{
		{"empty query matches everything", "", []string{"anything"}, true},
		{"empty query matches no fields", "", nil, true},
		{"case-insensitive match", "GULBERG", []string{"Gulberg Office Floor"}, true},
		{"substring match", "town", []string{"Wapda Town House"}, true},
		{"matches any field", "lahore", []string{"House 12", "Lahore"}, true},
		{"no match", "karachi", []string{"Wapda Town House", "Lahore"}, false},
		{"query against empty fields", "x", []string{"", ""}, false},
	}

	for _, tc := range testCases {
		if got := matchesQuery(tc.query, tc.fields...); got != tc.want {
			t.Errorf("%s: matchesQuery(%q, %v) = %v, want %v", tc.name, tc.query, tc.fields, got, tc.want)
		}
	}
}
