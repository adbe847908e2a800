// Tests for text normalization.

package extract

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \n\t \n ", ""},
		{"plain", "hello", "hello"},
		{"nbsp and unicode spaces", "a b c d e", "a b c d e"},
		{"windows line endings", "a\r\nb\rc", "a\nb\nc"},
		{"trailing spaces per line", "a  \nb\t\nc", "a\nb\nc"},
		{"two blank lines kept", "a\n\n\nb", "a\n\n\nb"},
		{"three blank lines collapse", "a\n\n\n\nb", "a\n\nb"},
		{"many blank lines collapse", "a\n\n\n\n\n\n\nb", "a\n\nb"},
		{"leading trailing blanks stripped", "\n\na\n\n", "a"},
		{"blank lines of spaces collapse", "a\n  \n \n\t\n\nb", "a\n\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"a  \r\nb  \n\n\n\n\nc\n\n",
		"\n\n\n\nx\n\n\n\n",
		"mixed\ttabs  and\r spaces ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
