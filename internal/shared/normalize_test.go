package shared

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tc := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "basic normalization",
			title: "Manga Title",
			want:  "manga title",
		},
		{
			name:  "extra whitespace",
			title: "  Manga   Title  ",
			want:  "manga title",
		},
		{
			name:  "mixed case",
			title: "MaNgA TiTlE",
			want:  "manga title",
		},
		{
			name:  "diacritics folded",
			title: "Héroes del Mañana",
			want:  "heroes del manana",
		},
		{
			name:  "empty string",
			title: "",
			want:  "",
		},
		{
			name:  "non-latin untouched",
			title: "進撃の巨人",
			want:  "進撃の巨人",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTitle(tt.title)
			if got != tt.want {
				t.Errorf("NormalizeTitle() = %v, want %v", got, tt.want)
			}
		})
	}
}
