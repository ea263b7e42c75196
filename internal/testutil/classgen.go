// Package testutil builds class files for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ClassSpec describes the header of a generated class file
type ClassSpec struct {
	Name        string // Fully-qualified name, e.g. com.example.Foo
	Super       string // Defaults to java.lang.Object; "-" for none
	Interfaces  []string
	AccessFlags uint16 // Defaults to public super (0x0021)
	Major       uint16 // Defaults to 61 (Java 17)
	Minor       uint16
	// Extra constants placed before the class entries to exercise pool parsing
	WithWideConstants bool
}

// ClassBytes returns a minimal, well-formed class file for spec
func ClassBytes(spec ClassSpec) []byte {
	if spec.Super == "" {
		spec.Super = "java.lang.Object"
	}
	if spec.AccessFlags == 0 {
		spec.AccessFlags = 0x0021
	}
	if spec.Major == 0 {
		spec.Major = 61
	}

	var pool bytes.Buffer
	count := uint16(1)

	if spec.WithWideConstants {
		// Long and Double take two slots each
		pool.WriteByte(5)
		binary.Write(&pool, binary.BigEndian, int64(42))
		pool.WriteByte(6)
		binary.Write(&pool, binary.BigEndian, float64(3.5))
		pool.WriteByte(3)
		binary.Write(&pool, binary.BigEndian, int32(7))
		count += 5
	}

	addClass := func(name string) uint16 {
		internal := strings.ReplaceAll(name, ".", "/")
		pool.WriteByte(1)
		binary.Write(&pool, binary.BigEndian, uint16(len(internal)))
		pool.WriteString(internal)
		pool.WriteByte(7)
		binary.Write(&pool, binary.BigEndian, count)
		idx := count + 1
		count += 2
		return idx
	}

	thisIdx := addClass(spec.Name)
	var superIdx uint16
	if spec.Super != "-" {
		superIdx = addClass(spec.Super)
	}
	var ifaceIdx []uint16
	for _, iface := range spec.Interfaces {
		ifaceIdx = append(ifaceIdx, addClass(iface))
	}

	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(0xCAFEBABE))
	binary.Write(&buf, binary.BigEndian, spec.Minor)
	binary.Write(&buf, binary.BigEndian, spec.Major)
	binary.Write(&buf, binary.BigEndian, count)
	buf.Write(pool.Bytes())
	binary.Write(&buf, binary.BigEndian, spec.AccessFlags)
	binary.Write(&buf, binary.BigEndian, thisIdx)
	binary.Write(&buf, binary.BigEndian, superIdx)
	binary.Write(&buf, binary.BigEndian, uint16(len(ifaceIdx)))
	for _, idx := range ifaceIdx {
		binary.Write(&buf, binary.BigEndian, idx)
	}
	// fields, methods, attributes
	buf.Write([]byte{0, 0, 0, 0, 0, 0})
	return buf.Bytes()
}

// WriteClass writes a generated class file for name under root and returns its path
func WriteClass(t testing.TB, root, name string) string {
	t.Helper()
	return WriteClassSpec(t, root, ClassSpec{Name: name})
}

// WriteClassSpec writes a generated class file for spec under root and returns its path
func WriteClassSpec(t testing.TB, root string, spec ClassSpec) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(spec.Name, ".", "/"))+".class")
	WriteFile(t, path, ClassBytes(spec))
	return path
}

// WriteFile writes data to path, creating parent directories
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
