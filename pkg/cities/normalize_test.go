package cities

import "testing"

func TestRejectName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reject bool
	}{
		{
			name:   "plain city",
			input:  "Berlin",
			reject: false,
		},
		{
			name:   "blacklist word station",
			input:  "Central Station",
			reject: true,
		},
		{
			name:   "blacklist is case insensitive",
			input:  "MONITORING site",
			reject: true,
		},
		{
			name:   "blacklist word with diacritics",
			input:  "Zóne Est",
			reject: true,
		},
		{
			name:   "blacklist word as substring is kept",
			input:  "Zonetown",
			reject: false,
		},
		{
			name:   "digit anywhere rejects",
			input:  "Station 42",
			reject: true,
		},
		{
			name:   "digit without blacklist word rejects",
			input:  "Sector7",
			reject: true,
		},
		{
			name:   "powerplant",
			input:  "Powerplant North",
			reject: true,
		},
		{
			name:   "unknown placeholder",
			input:  "unknown",
			reject: true,
		},
		{
			name:   "city with diacritics is kept",
			input:  "Zürich",
			reject: false,
		},
		{
			name:   "empty name is kept",
			input:  "",
			reject: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rejectName(tt.input); got != tt.reject {
				t.Errorf("rejectName(%q) = %v, want %v", tt.input, got, tt.reject)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "diacritics and parenthetical",
			input: "Zürich (City)",
			want:  "Zurich",
		},
		{
			name:  "already normalized",
			input: "Zurich",
			want:  "Zurich",
		},
		{
			name:  "title case per word",
			input: "new york",
			want:  "New York",
		},
		{
			name:  "mixed casing flattened first",
			input: "SÃO PAULO",
			want:  "Sao Paulo",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  lisbon  ",
			want:  "Lisbon",
		},
		{
			name:  "inner parenthetical removed with whitespace",
			input: "Frankfurt (am Main)",
			want:  "Frankfurt",
		},
		{
			name:  "name that becomes empty",
			input: "(Region)",
			want:  "",
		},
		{
			name:  "combining marks stripped",
			input: "Córdoba",
			want:  "Cordoba",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	inputs := []string{
		"Zürich (City)",
		"new york",
		"Córdoba",
		"  lisbon  ",
		"São Tomé",
	}

	for _, input := range inputs {
		once := NormalizeName(input)
		twice := NormalizeName(once)
		if once != twice {
			t.Errorf("NormalizeName not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestStripDiacritics(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Zürich", "Zurich"},
		{"São Paulo", "Sao Paulo"},
		{"Malmö", "Malmo"},
		{"London", "London"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := stripDiacritics(tt.input); got != tt.want {
				t.Errorf("stripDiacritics(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
