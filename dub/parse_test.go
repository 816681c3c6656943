package dub

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	type test struct {
		input string
		want  Command
	}
	tests := []test{
		{
			input: "panic",
			want:  Command{Name: Identifier("panic")},
		},
		{
			input: "set env.sustain 100",
			want: Command{
				Name: Identifier("set"),
				Args: []Node{Identifier("env.sustain"), Int(100)},
			},
		},
		{
			input: "set psg.duty 0.5",
			want: Command{
				Name: Identifier("set"),
				Args: []Node{Identifier("psg.duty"), Float(0.5)},
			},
		},
		{
			input: `record "out.wav" 3`,
			want: Command{
				Name: Identifier("record"),
				Args: []Node{String("out.wav"), Int(3)},
			},
		},
		{
			input: "press '1",
			want: Command{
				Name: Identifier("press"),
				Args: []Node{
					KeyExpr{matchers: []matcher{listMatch{1}}},
				},
			},
		},
		{
			input: "press '1,3:5,* 2",
			want: Command{
				Name: Identifier("press"),
				Args: []Node{
					KeyExpr{matchers: []matcher{
						listMatch{1},
						rangeMatch{start: 3, end: 5},
						matchAll,
					}},
					Int(2),
				},
			},
		},
		{
			input: "press 'c,G#",
			want: Command{
				Name: Identifier("press"),
				Args: []Node{
					KeyExpr{names: []string{"c", "G#"}},
				},
			},
		},
	}

	for _, test := range tests {
		got, err := Parse(test.input)
		if err != nil {
			t.Fatalf("%q: %v", test.input, err)
		}
		if !reflect.DeepEqual(test.want, got) {
			t.Errorf("%q: wrong command:\nwant: %+v\ngot:  %+v", test.input, test.want, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"5 set",
		"press '",
		"press '1:",
		"press '1:c",
		"press ':",
		"press '1,",
	} {
		if _, err := Parse(input); err == nil {
			t.Errorf("%q: expected error", input)
		}
	}
}
