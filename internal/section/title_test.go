package section

import "testing"

func TestIsTitle(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Intro", true},
		{"Vegetarian Recipes", true},
		{"MEAT DISHES", true},
		{"2.3 Data Collection", true},
		{"• Coastal Adventures", true},
		{"Tips for Dinner:", true},
		{"Ingredients:", false},
		{"Instructions", false},
		{"2 cups cooked quinoa", false},
		{"The Best Beaches", false},
		{"Mix everything together.", false},
		{"lowercase heading", false},
		{"Combine the rice and beans in a large bowl", false},
		{"ab", false},
	}
	for _, tt := range tests {
		if got := isTitle(tt.line, 100); got != tt.want {
			t.Errorf("isTitle(%q): expected %v, got %v", tt.line, tt.want, got)
		}
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"• Coastal Adventures", "Coastal Adventures"},
		{"Tips for Dinner:", "Tips for Dinner"},
		{"1. Introduction", "1. Introduction"},
	}
	for _, tt := range tests {
		if got := cleanTitle(tt.in); got != tt.want {
			t.Errorf("cleanTitle(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestSynthesizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"first meaningful line", []string{"ok", "Falafel wraps, served warm!", "more"}, "Falafel wraps served warm"},
		{"skips sub-headings", []string{"Ingredients for two", "Chickpea salad bowl"}, "Chickpea salad bowl"},
		{"first six long words", []string{"a", "b", "cc", "ddd eeee fffff gggggg hhhhhhh iiiiiiii jjjjjjjjj kkkkkkkkkk llllllllll mmmmmmmmmmmm"}, "ddd eeee fffff gggggg hhhhhhh iiiiiiii"},
		{"fallback", []string{"a", "bc"}, FallbackTitle},
	}
	for _, tt := range tests {
		if got := SynthesizeTitle(tt.lines); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestIsBoilerplate(t *testing.T) {
	for _, line := range []string{"12", "Page 3", "page 3 of 10", "- 4 -", "© 2024 Acme", "(c) 2024 Acme", "(C)2023 Foo", "Copyright 2023 Foo", "All rights reserved.", "* * *"} {
		if !isBoilerplate(line) {
			t.Errorf("expected %q to be boilerplate", line)
		}
	}
	for _, line := range []string{"Page Layout Tips", "3 ways to cook rice", "Intro", "(c) Season the stew with cumin and simmer.", "(C) Fold in the herbs"} {
		if isBoilerplate(line) {
			t.Errorf("expected %q not to be boilerplate", line)
		}
	}
}
