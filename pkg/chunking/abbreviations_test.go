package chunking

import "testing"

func TestAbbreviationSet(t *testing.T) {
	s := NewAbbreviationSet("fl.", " Tel. ")

	testCases := []struct {
		token    string
		expected bool
	}{
		{"Dr.", true},
		{"dr.", true},
		{"DR.", true},
		{"Sra.", true},
		{"etc.", true},
		{"fl.", true},
		{"tel.", true},
		{"arrived.", false},
		{"Smith.", false},
		{"", false},
	}

	for _, tc := range testCases {
		if got := s.Contains(tc.token); got != tc.expected {
			t.Errorf("Contains(%q) = %v, want %v", tc.token, got, tc.expected)
		}
	}
}
