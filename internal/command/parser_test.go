package command

import (
	"reflect"
	"testing"
)

func TestParse_EmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t"} {
		args := Parse(raw)
		if args.Verb() != "" {
			t.Errorf("Parse(%q).Verb() = %q, want empty", raw, args.Verb())
		}
	}
}

func TestParse_VerbAndOperands(t *testing.T) {
	args := Parse("mkdir docs work")
	if args.Verb() != "mkdir" {
		t.Errorf("verb = %q, want mkdir", args.Verb())
	}
	if got := args.Operands(); !reflect.DeepEqual(got, []string{"docs", "work"}) {
		t.Errorf("operands = %v", got)
	}
}

func TestParse_ArrayOptionAccumulates(t *testing.T) {
	args := Parse("ls -f /a --files /b --files=/c", Option{Name: "files", Aliases: []string{"f", "path"}, Array: true})
	if got := args.Array("files"); !reflect.DeepEqual(got, []string{"/a", "/b", "/c"}) {
		t.Errorf("files = %v", got)
	}
}

func TestParse_StringOptionLastWins(t *testing.T) {
	args := Parse("touch note -p first --password second", Option{Name: "pswd", Aliases: []string{"p", "password"}})
	if got := args.String("pswd"); got != "second" {
		t.Errorf("pswd = %q, want second", got)
	}
}

func TestParse_PositionalFallback(t *testing.T) {
	args := Parse("login alice hunter22222",
		Option{Name: "name", Aliases: []string{"n", "user", "u"}},
		Option{Name: "password", Aliases: []string{"p", "pswd"}},
	)
	if args.String("name") != "" {
		t.Errorf("expected no named value, got %q", args.String("name"))
	}
	if args.Positional(1) != "alice" || args.Positional(2) != "hunter22222" {
		t.Errorf("positionals = %q, %q", args.Positional(1), args.Positional(2))
	}
	if args.Positional(99) != "" {
		t.Errorf("out-of-range positional should be empty")
	}
}

func TestParse_QuotedTokens(t *testing.T) {
	args := Parse(`touch "my note" -p 'pass word'`, Option{Name: "pswd", Aliases: []string{"p", "password"}})
	if got := args.Positional(1); got != "my note" {
		t.Errorf("positional = %q, want \"my note\"", got)
	}
	if got := args.String("pswd"); got != "pass word" {
		t.Errorf("pswd = %q, want \"pass word\"", got)
	}
}

func TestParse_UnknownFlagIgnored(t *testing.T) {
	args := Parse("ls --wat nope /a", Option{Name: "files", Aliases: []string{"f", "path"}, Array: true})
	if got := args.Array("files"); got != nil {
		t.Errorf("files = %v, want none", got)
	}
	if got := args.Operands(); !reflect.DeepEqual(got, []string{"/a"}) {
		t.Errorf("operands = %v, want [/a]", got)
	}
}
