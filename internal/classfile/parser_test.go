package classfile

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classenum/internal/testutil"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		spec testutil.ClassSpec
	}{
		{
			name: "plain class",
			spec: testutil.ClassSpec{Name: "com.example.A"},
		},
		{
			name: "interfaces and custom super",
			spec: testutil.ClassSpec{
				Name:       "com.example.Service",
				Super:      "com.example.Base",
				Interfaces: []string{"java.io.Serializable", "java.lang.Runnable"},
			},
		},
		{
			name: "wide constants occupy two slots",
			spec: testutil.ClassSpec{Name: "com.example.Wide", WithWideConstants: true},
		},
		{
			name: "inner class",
			spec: testutil.ClassSpec{Name: "com.example.Outer$Inner", Major: 52, Minor: 3},
		},
		{
			name: "no super class",
			spec: testutil.ClassSpec{Name: "module-info", Super: "-", AccessFlags: 0x8000, Major: 53},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Parse(bytes.NewReader(testutil.ClassBytes(tt.spec)))
			require.NoError(t, err)

			assert.Equal(t, tt.spec.Name, h.ThisClass)
			switch tt.spec.Super {
			case "":
				assert.Equal(t, "java.lang.Object", h.SuperClass)
			case "-":
				assert.Empty(t, h.SuperClass)
			default:
				assert.Equal(t, tt.spec.Super, h.SuperClass)
			}
			assert.Equal(t, tt.spec.Interfaces, h.Interfaces)
			if tt.spec.Major != 0 {
				assert.Equal(t, tt.spec.Major, h.MajorVersion)
			}
			assert.Equal(t, tt.spec.Minor, h.MinorVersion)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	valid := testutil.ClassBytes(testutil.ClassSpec{Name: "com.example.A"})

	t.Run("bad magic", func(t *testing.T) {
		data := append([]byte{0xDE, 0xAD, 0xBE, 0xEF}, valid[4:]...)
		_, err := Parse(bytes.NewReader(data))
		assert.True(t, errors.Is(err, ErrBadMagic))
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Parse(bytes.NewReader(nil))
		assert.True(t, errors.Is(err, ErrMalformed))
	})

	t.Run("truncated constant pool", func(t *testing.T) {
		_, err := Parse(bytes.NewReader(valid[:14]))
		assert.True(t, errors.Is(err, ErrMalformed))
	})

	t.Run("truncated header", func(t *testing.T) {
		_, err := Parse(bytes.NewReader(valid[:len(valid)-10]))
		assert.True(t, errors.Is(err, ErrMalformed))
	})

	t.Run("unknown constant tag", func(t *testing.T) {
		data := append([]byte{}, valid...)
		data[10] = 99
		_, err := Parse(bytes.NewReader(data))
		assert.True(t, errors.Is(err, ErrMalformed))
	})
}

func TestDecodeModifiedUTF8(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{name: "ascii", input: []byte("com/example/A"), expected: "com/example/A"},
		{name: "encoded nul", input: []byte{'a', 0xC0, 0x80, 'b'}, expected: "a\x00b"},
		{name: "two byte", input: []byte{0xC3, 0xA9}, expected: "é"},
		{name: "surrogate pair", input: []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, expected: "\U0001F600"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decodeModifiedUTF8(tt.input))
		})
	}
}
