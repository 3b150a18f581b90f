package parser

import (
	"reflect"
	"strings"
	"testing"
)

// TestParseLine covers quoting, escaping and trimming of single lines.
func TestParseLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple fields",
			input: "a,b,c",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "quoted comma and escaped quote",
			input: `a,"b,c","d""e"`,
			want:  []string{"a", "b,c", `d"e`},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  a , b\t,c  ",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "whitespace inside quotes trimmed after close",
			input: `" padded ",x`,
			want:  []string{"padded", "x"},
		},
		{
			name:  "inner whitespace kept",
			input: "New York,Los Angeles",
			want:  []string{"New York", "Los Angeles"},
		},
		{
			name:  "empty line yields one empty field",
			input: "",
			want:  []string{""},
		},
		{
			name:  "only commas",
			input: ",,",
			want:  []string{"", "", ""},
		},
		{
			name:  "trailing comma",
			input: "a,b,",
			want:  []string{"a", "b", ""},
		},
		{
			name:  "empty quoted field",
			input: `a,"",c`,
			want:  []string{"a", "", "c"},
		},
		{
			name:  "unterminated quote swallows rest of line",
			input: `a,"b,c`,
			want:  []string{"a", "b,c"},
		},
		{
			name:  "quote in the middle toggles state",
			input: `ab"c,d"e,f`,
			want:  []string{"abc,de", "f"},
		},
		{
			name:  "doubled quote outside quotes toggles twice",
			input: `a""b,c`,
			want:  []string{"ab", "c"},
		},
		{
			name:  "only escaped quotes",
			input: `"""",x`,
			want:  []string{`"`, "x"},
		},
		{
			name:  "quoted value wrapped in escaped quotes keeps inner text",
			input: `"""hi""",x`,
			want:  []string{"hi", "x"},
		},
		{
			name:  "byte order mark trimmed",
			input: "\uFEFFname,age",
			want:  []string{"name", "age"},
		},
		{
			name:  "unicode content",
			input: `José,"Zürich, CH",東京`,
			want:  []string{"José", "Zürich, CH", "東京"},
		},
		{
			name:  "single quote character",
			input: `"`,
			want:  []string{""},
		},
		{
			name:  "invalid utf-8 bytes kept and do not hide commas",
			input: "\xff\xc3\xa9,x,y",
			want:  []string{"\xff\xc3\xa9", "x", "y"},
		},
		{
			name:  "latin-1 byte kept inside quotes",
			input: "ca\xe9,\"\xe9,\xe9\"",
			want:  []string{"ca\xe9", "\xe9,\xe9"},
		},
		{
			name:  "truncated multi-byte sequence before comma",
			input: "\xe6\x97,\xe6",
			want:  []string{"\xe6\x97", "\xe6"},
		},
		{
			name:  "next line character is not trimmed",
			input: "\u0085a\u0085,b",
			want:  []string{"\u0085a\u0085", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseLine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestParseLine_FieldCount checks that the field count is one more than the
// number of commas outside quotes.
func TestParseLine_FieldCount(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"a", 1},
		{"a,b", 2},
		{`"a,b"`, 1},
		{`"a,b",c,"d,e,f"`, 3},
		{strings.Repeat("x,", 99) + "x", 100},
	}

	for _, tt := range tests {
		if got := len(ParseLine(tt.input)); got != tt.want {
			t.Errorf("len(ParseLine(%q)) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

// TestSplitLines covers line ending normalization and blank line removal.
func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "unix line endings",
			input: "a,b\n1,2\n3,4",
			want:  []string{"a,b", "1,2", "3,4"},
		},
		{
			name:  "windows line endings",
			input: "a,b\r\n1,2\r\n",
			want:  []string{"a,b", "1,2"},
		},
		{
			name:  "old mac line endings",
			input: "a,b\r1,2\r",
			want:  []string{"a,b", "1,2"},
		},
		{
			name:  "mixed line endings",
			input: "a\r\nb\rc\nd",
			want:  []string{"a", "b", "c", "d"},
		},
		{
			name:  "blank and whitespace lines dropped",
			input: "a,b\n\n   \n\t\n1,2\n",
			want:  []string{"a,b", "1,2"},
		},
		{
			name:  "lines are not trimmed",
			input: "  a , b  \n 1,2 ",
			want:  []string{"  a , b  ", " 1,2 "},
		},
		{
			name:  "nothing but whitespace",
			input: " \r\n\t\n ",
			want:  []string{},
		},
		{
			name:  "empty",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestTrimSpace checks the whitespace set used for blank lines and fields.
func TestTrimSpace(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  x  ", "x"},
		{"\t\nx\r\n", "x"},
		{"\uFEFFx", "x"},
		{" x ", "x"},
		{"x y", "x y"},
		{"\u00a0x\u3000", "x"},
		{"\u0085x\u0085", "\u0085x\u0085"},
		{"\xffx\xff", "\xffx\xff"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := TrimSpace(tt.input); got != tt.want {
			t.Errorf("TrimSpace(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
	if !IsBlank(" \t\uFEFF ") {
		t.Error("IsBlank should accept whitespace and byte order marks")
	}
	if IsBlank(" , ") {
		t.Error("IsBlank should reject a line containing a comma")
	}
}

func BenchmarkParseLine(b *testing.B) {
	line := `1001,"Smith, John","He said ""hi""",2024-01-15,  active  ,42.50`
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = ParseLine(line)
	}
}
