package mongo

import (
	"regexp"
	"testing"
)

func TestSearchRegex_QuotesMetacharacters(t *testing.T) {
	cases := []struct {
		name   string
		search string
	}{
		{"plus signs", "c++"},
		{"unbalanced paren", "logo ("},
		{"dot star", ".*"},
		{"anchors", "^design$"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := searchRegex(tc.search)
			if r.Options != "i" {
				t.Fatalf("expected case-insensitive option, got %q", r.Options)
			}

			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				t.Fatalf("pattern %q does not compile: %v", r.Pattern, err)
			}
			if !re.MatchString(tc.search) {
				t.Errorf("pattern %q must match the literal input %q", r.Pattern, tc.search)
			}
			if tc.search == ".*" && re.MatchString("anything") {
				t.Error("metacharacters must be treated literally")
			}
		})
	}
}
