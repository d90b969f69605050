package command

import "strings"

// Option declares a named flag a handler recognizes: a canonical name, its
// short/long aliases, and whether repeated occurrences accumulate into a
// list (array option) or the last one wins (string option).
type Option struct {
	Name    string
	Aliases []string
	Array   bool
}

// Args is a parsed command line: the verb, the bare positional tokens, and
// the recognized named options. Positional index 0 is the verb itself.
type Args struct {
	positionals []string
	strings     map[string]string
	arrays      map[string][]string
}

// Verb returns the first token, or "" for an empty command line.
func (a Args) Verb() string { return a.Positional(0) }

// Positional returns the i-th bare token ("" when absent); index 0 is the
// verb.
func (a Args) Positional(i int) string {
	if i < 0 || i >= len(a.positionals) {
		return ""
	}
	return a.positionals[i]
}

// Operands returns the bare tokens after the verb.
func (a Args) Operands() []string {
	if len(a.positionals) < 2 {
		return nil
	}
	return a.positionals[1:]
}

// String returns the last value given for a string option ("" if unset).
func (a Args) String(name string) string { return a.strings[name] }

// Array returns every value given for an array option.
func (a Args) Array(name string) []string { return a.arrays[name] }

// Parse tokenizes a raw command line into a verb, positionals, and the
// options declared by opts. Flags are written -n value, --name value, or
// --name=value; alias forms map onto the canonical name. Tokens may be
// quoted with single or double quotes. Leading whitespace or an empty line
// parses to an empty verb.
func Parse(raw string, opts ...Option) Args {
	canonical := make(map[string]Option)
	for _, opt := range opts {
		canonical[opt.Name] = opt
		for _, alias := range opt.Aliases {
			canonical[alias] = opt
		}
	}

	args := Args{
		strings: make(map[string]string),
		arrays:  make(map[string][]string),
	}

	tokens := tokenize(raw)
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if !strings.HasPrefix(token, "-") || token == "-" || token == "--" {
			args.positionals = append(args.positionals, token)
			continue
		}

		name := strings.TrimLeft(token, "-")
		value := ""
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			value = name[eq+1:]
			name = name[:eq]
		} else if i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "-") {
			i++
			value = tokens[i]
		}

		opt, known := canonical[name]
		if !known {
			// unknown flags are kept as string options and simply go
			// unread, never rejected
			args.strings[name] = value
			continue
		}
		if opt.Array {
			args.arrays[opt.Name] = append(args.arrays[opt.Name], value)
		} else {
			args.strings[opt.Name] = value
		}
	}
	return args
}

// tokenize splits on whitespace, honoring single and double quotes.
func tokenize(raw string) []string {
	var tokens []string
	var current strings.Builder
	var quote rune
	inToken := false

	for _, r := range raw {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case r == ' ' || r == '\t':
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}
	if inToken {
		tokens = append(tokens, current.String())
	}
	return tokens
}
