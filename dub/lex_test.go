package dub

import "testing"

func TestLexer(t *testing.T) {
	type test struct {
		input  string
		expect []token
	}
	tests := []test{
		{
			input: "press '1,3:5",
			expect: []token{
				{typ: typeIdentifier, text: "press"},
				{typ: typeQuote, text: "'"},
				{typ: typeInt, text: "1"},
				{typ: typeComma, text: ","},
				{typ: typeInt, text: "3"},
				{typ: typeColon, text: ":"},
				{typ: typeInt, text: "5"},
				{typ: typeEOF},
			},
		},
		{
			input: "set env.attack 64",
			expect: []token{
				{typ: typeIdentifier, text: "set"},
				{typ: typeIdentifier, text: "env.attack"},
				{typ: typeInt, text: "64"},
				{typ: typeEOF},
			},
		},
		{
			input: "set  psg.duty\t.5",
			expect: []token{
				{typ: typeIdentifier, text: "set"},
				{typ: typeIdentifier, text: "psg.duty"},
				{typ: typeFloat, text: ".5"},
				{typ: typeEOF},
			},
		},
		{
			input: "octave -1",
			expect: []token{
				{typ: typeIdentifier, text: "octave"},
				{typ: typeInt, text: "-1"},
				{typ: typeEOF},
			},
		},
		{
			input: `record "take one.wav" 2.5`,
			expect: []token{
				{typ: typeIdentifier, text: "record"},
				{typ: typeString, text: `"take one.wav"`},
				{typ: typeFloat, text: "2.5"},
				{typ: typeEOF},
			},
		},
		{
			input: "release 'C#,*",
			expect: []token{
				{typ: typeIdentifier, text: "release"},
				{typ: typeQuote, text: "'"},
				{typ: typeIdentifier, text: "C#"},
				{typ: typeComma, text: ","},
				{typ: typeAsterisk, text: "*"},
				{typ: typeEOF},
			},
		},
	}

	for _, test := range tests {
		tokens, err := lex(test.input)
		if err != nil {
			t.Fatalf("%q: %v", test.input, err)
		}
		if len(tokens) != len(test.expect) {
			t.Fatalf("%q: expected %d tokens, got %d: %v", test.input, len(test.expect), len(tokens), tokens)
		}
		for i, tok := range tokens {
			want := test.expect[i]
			if want.typ != tok.typ || want.text != tok.text {
				t.Errorf("%q: token %d: want %v %q, got %v %q", test.input, i, want.typ, want.text, tok.typ, tok.text)
			}
		}
	}
}

func TestLexerErrors(t *testing.T) {
	for _, input := range []string{
		"set level 1x",
		`record "unterminated`,
		"press ;",
		"a=b",
	} {
		if _, err := lex(input); err == nil {
			t.Errorf("%q: expected error", input)
		}
	}
}
