package command

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		pwd    string
		target string
		want   string
	}{
		{"absolute target ignores pwd", "/a/b", "/c", "/c"},
		{"relative target joins pwd", "/a/b", "c", "/a/b/c"},
		{"dot keeps pwd", "/a/b", ".", "/a/b"},
		{"dot slash keeps pwd", "/a/b", "./", "/a/b"},
		{"empty target keeps pwd", "/a/b", "", "/a/b"},
		{"parent segment", "/a/b", "..", "/a"},
		{"parent of root clamps", "/", "..", "/"},
		{"climb above root clamps", "/a", "../../..", "/"},
		{"mixed segments", "/a/b", "../c/./d", "/a/c/d"},
		{"trailing slash stripped", "/a", "b/", "/a/b"},
		{"absolute with dots", "/a", "/x/../y", "/y"},
		{"root itself", "/", ".", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.pwd, tt.target); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.pwd, tt.target, got, tt.want)
			}
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	targets := []string{"/c", "c", ".", "..", "../c/./d", "b/"}
	for _, target := range targets {
		once := Resolve("/a/b", target)
		twice := Resolve("/a/b", once)
		if once != twice {
			t.Errorf("resolution of %q not idempotent: %q then %q", target, once, twice)
		}
	}
}
