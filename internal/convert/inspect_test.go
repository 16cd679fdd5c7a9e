// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "testing"

func TestInspect(t *testing.T) {
	tests := []struct {
		name      string
		markdown  string
		wantTitle string
		wantWords int
	}{
		{
			name:      "empty document",
			markdown:  "",
			wantTitle: "",
			wantWords: 0,
		},
		{
			name:      "title and body",
			markdown:  "# Annual Report\n\nRevenue grew steadily.\n",
			wantTitle: "Annual Report",
			wantWords: 5,
		},
		{
			name:      "no level-one heading",
			markdown:  "## Section\n\nBody text.\n",
			wantTitle: "",
			wantWords: 3,
		},
		{
			name:      "first level-one heading wins",
			markdown:  "## Preface\n\n# Real Title\n\n# Second Title\n",
			wantTitle: "Real Title",
			wantWords: 5,
		},
		{
			name:      "code blocks are not prose",
			markdown:  "# Title\n\n```\nfunc main() { panic(\"x\") }\n```\n\nTwo words.\n",
			wantTitle: "Title",
			wantWords: 3,
		},
		{
			name:      "emphasis does not split the count",
			markdown:  "Plain *emphasized* tail.\n",
			wantTitle: "",
			wantWords: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, words := inspect(tt.markdown)
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if words != tt.wantWords {
				t.Errorf("words = %d, want %d", words, tt.wantWords)
			}
		})
	}
}
