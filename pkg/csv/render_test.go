package csv

import (
	"strings"
	"testing"
)

func TestRenderJSON(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		indent string
		want   string
	}{
		{
			name:   "two space indent",
			input:  "name,age\nAlice,30",
			indent: "  ",
			want:   "[\n  {\n    \"name\": \"Alice\",\n    \"age\": \"30\"\n  }\n]",
		},
		{
			name:   "compact",
			input:  "name,age\nAlice,30\nBob,25",
			indent: "",
			want:   `[{"name":"Alice","age":"30"},{"name":"Bob","age":"25"}]`,
		},
		{
			name:   "empty document",
			input:  "name,age",
			indent: "  ",
			want:   "[]",
		},
		{
			name:   "html kept verbatim",
			input:  "x\n<i>&</i>",
			indent: "",
			want:   `[{"x":"<i>&</i>"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderJSON(mustConvert(t, tt.input), tt.indent)
			if err != nil {
				t.Fatalf("RenderJSON() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("RenderJSON() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestRenderJSON_Nil(t *testing.T) {
	got, err := RenderJSON(nil, "  ")
	if err != nil {
		t.Fatalf("RenderJSON(nil) error = %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("RenderJSON(nil) = %q, want []", got)
	}
}

func TestRenderYAML(t *testing.T) {
	doc := mustConvert(t, "name,age\nAlice,30\nBob,25")

	got, err := RenderYAML(doc)
	if err != nil {
		t.Fatalf("RenderYAML() error = %v", err)
	}
	out := string(got)

	for _, want := range []string{"- name: Alice", "name: Bob", "age:"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderYAML() missing %q in:\n%s", want, out)
		}
	}
	if strings.Index(out, "name: Alice") > strings.Index(out, "name: Bob") {
		t.Errorf("RenderYAML() reordered records:\n%s", out)
	}
	if strings.Index(out, "name: Alice") > strings.Index(out, "age:") {
		t.Errorf("RenderYAML() reordered keys:\n%s", out)
	}
}

func TestRender(t *testing.T) {
	doc := mustConvert(t, "a\n1")

	tests := []struct {
		format  string
		indent  int
		want    string
		wantErr bool
	}{
		{format: "", indent: 0, want: `[{"a":"1"}]`},
		{format: "json", indent: 0, want: `[{"a":"1"}]`},
		{format: "JSON", indent: DefaultIndent, want: "[\n  {\n    \"a\": \"1\"\n  }\n]"},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Render(doc, tt.format, tt.indent)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Render(%q) expected error", tt.format)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Render(%q) error = %v", tt.format, err)
		}
		if string(got) != tt.want {
			t.Errorf("Render(%q, %d) = %q, want %q", tt.format, tt.indent, got, tt.want)
		}
	}

	if out, err := Render(doc, OutputYAML, 0); err != nil || !strings.Contains(string(out), "a:") {
		t.Errorf("Render(yaml) = %q, %v", out, err)
	}
}

func TestRenderCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain",
			input: "name,age\nAlice,30",
			want:  "name,age\nAlice,30\n",
		},
		{
			name:  "quoting",
			input: "a,b\n\"x,y\",\"say \"\"hi\"\"\"",
			want:  "a,b\n\"x,y\",\"say \"\"hi\"\"\"\n",
		},
		{
			name:  "duplicate headers collapse",
			input: "id,id\n1,2",
			want:  "id\n2\n",
		},
		{
			name:  "header only",
			input: "a,b",
			want:  "a,b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderCSV(mustConvert(t, tt.input))
			if err != nil {
				t.Fatalf("RenderCSV() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("RenderCSV() = %q, want %q", got, tt.want)
			}
		})
	}

	if got, _ := RenderCSV(nil); len(got) != 0 {
		t.Errorf("RenderCSV(nil) = %q, want empty", got)
	}
}
