package source

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		want    string
		wantErr error
	}{
		{
			name: "file",
			in:   Input{Name: "people.csv", File: strings.NewReader("name,age\nAda,36\n")},
			want: "name,age\nAda,36\n",
		},
		{
			name: "file contents are not trimmed",
			in:   Input{Name: "x.csv", File: strings.NewReader("  a,b  \n")},
			want: "  a,b  \n",
		},
		{
			name: "file wins over text",
			in:   Input{Name: "x.csv", File: strings.NewReader("a\n1"), Text: "b\n2"},
			want: "a\n1",
		},
		{
			name:    "wrong extension",
			in:      Input{Name: "people.txt", File: strings.NewReader("a,b")},
			wantErr: ErrNotCSV,
		},
		{
			name:    "extension is case sensitive",
			in:      Input{Name: "PEOPLE.CSV", File: strings.NewReader("a,b")},
			wantErr: ErrNotCSV,
		},
		{
			name: "text is trimmed",
			in:   Input{Text: "\n  a,b\n1,2  \n"},
			want: "a,b\n1,2",
		},
		{
			name:    "blank text",
			in:      Input{Text: " \t\n"},
			wantErr: ErrNoInput,
		},
		{
			name:    "nothing",
			in:      Input{},
			wantErr: ErrNoInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_ReadError(t *testing.T) {
	boom := errors.New("disk gone")
	_, err := Resolve(Input{Name: "a.csv", File: iotest.ErrReader(boom)})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "read a.csv")
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "please upload a valid CSV file", ErrNotCSV.Error())
	assert.Equal(t, "please upload a CSV file or paste CSV data", ErrNoInput.Error())
}

func TestDecodeBytes(t *testing.T) {
	t.Run("utf8 passes through", func(t *testing.T) {
		got, err := DecodeBytes([]byte("city\nZürich\n東京\n"))
		require.NoError(t, err)
		assert.Equal(t, "city\nZürich\n東京\n", got)
	})

	t.Run("utf8 bom removed", func(t *testing.T) {
		got, err := DecodeBytes([]byte("\xEF\xBB\xBFa,b\n1,2"))
		require.NoError(t, err)
		assert.Equal(t, "a,b\n1,2", got)
	})

	t.Run("utf16 with bom", func(t *testing.T) {
		got, err := DecodeBytes([]byte("\xFF\xFEa\x00,\x00b\x00"))
		require.NoError(t, err)
		assert.Equal(t, "a,b", got)
	})

	t.Run("single byte code page becomes valid utf8", func(t *testing.T) {
		latin1 := []byte("name,city\nRen\xe9,Montr\xe9al\nJos\xe9,S\xe3o Paulo\nFran\xe7ois,Gen\xe8ve\n")
		got, err := DecodeBytes(latin1)
		require.NoError(t, err)
		assert.True(t, utf8.ValidString(got))
		assert.True(t, strings.HasPrefix(got, "name,city\n"))
		assert.Equal(t, 4, strings.Count(got, "\n"))
	})

	t.Run("empty", func(t *testing.T) {
		got, err := DecodeBytes(nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestDetect(t *testing.T) {
	assert.Equal(t, unicode.UTF8, Detect([]byte("plain ascii")))
	assert.Equal(t, unicode.UTF8, Detect([]byte("\xFE\xFF\x00a")))
	assert.NotEqual(t, unicode.UTF8, Detect([]byte("caf\xe9 cr\xe8me br\xfbl\xe9e")))
}

func TestCharsetEncoding(t *testing.T) {
	tests := []struct {
		name string
		want any
	}{
		{"ISO-8859-1", charmap.ISO8859_1},
		{"windows-1251", charmap.Windows1251},
		{"ISO-8859-5", charmap.ISO8859_5},
		{"KOI8-R", charmap.KOI8R},
		{"windows-1250", charmap.Windows1250},
		{"ISO-8859-2", charmap.Windows1250},
		{"windows-1252", charmap.Windows1252},
		{"Shift_JIS", charmap.Windows1252},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, charsetEncoding(tt.name))
		})
	}
}

func TestDecode(t *testing.T) {
	got, err := Decode(strings.NewReader("\xEF\xBB\xBFh\n1"))
	require.NoError(t, err)
	assert.Equal(t, "h\n1", got)

	_, err = Decode(iotest.ErrReader(errors.New("nope")))
	require.Error(t, err)
}
