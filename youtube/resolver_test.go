package youtube

import (
	"errors"
	"testing"

	"studynotes/common"
)

func TestResolveReference(t *testing.T) {
	cases := []struct {
		name    string
		locator string
		wantID  string
	}{
		{"watch url", "https://www.youtube.com/watch?v=ABCDEFGHIJK", "ABCDEFGHIJK"},
		{"short url", "https://youtu.be/ABCDEFGHIJK", "ABCDEFGHIJK"},
		{"watch with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"param order", "https://www.youtube.com/watch?feature=share&v=a-b_c-d_e-f", "a-b_c-d_e-f"},
		{"short url with query", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ"},
		{"embed path", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts path", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"live path", "https://www.youtube.com/live/dQw4w9WgXcQ?feature=share", "dQw4w9WgXcQ"},
		{"mobile host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"surrounding whitespace", "  https://youtu.be/ABCDEFGHIJK \n", "ABCDEFGHIJK"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ref, err := ResolveReference(c.locator)
			if err != nil {
				t.Fatalf("ResolveReference(%q) error: %v", c.locator, err)
			}
			if ref.ID != c.wantID {
				t.Fatalf("ResolveReference(%q) = %q; want %q", c.locator, ref.ID, c.wantID)
			}
			if ref.Locator != c.locator {
				t.Fatalf("locator not preserved: %q", ref.Locator)
			}
		})
	}
}

func TestResolveReferenceRejectsUnknownShapes(t *testing.T) {
	cases := []string{
		"https://www.youtube.com/",
		"https://www.youtube.com/watch?v=short",
		"https://example.com/abcdefghijklmnop",
		"https://www.youtube.com/playlist?list=PL1234567890",
		"ABCDEFGHIJK",
		"not a url at all",
	}

	for _, locator := range cases {
		t.Run(locator, func(t *testing.T) {
			_, err := ResolveReference(locator)
			if !errors.Is(err, common.ErrInvalidReference) {
				t.Fatalf("ResolveReference(%q) err = %v; want ErrInvalidReference", locator, err)
			}
		})
	}
}

func TestResolveReferenceEmptyIsValidation(t *testing.T) {
	_, err := ResolveReference("   ")
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
