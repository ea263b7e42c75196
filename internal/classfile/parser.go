// Package classfile reads JVM class file headers and loads class handles by name.
package classfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Magic is the first four bytes of every class file
const Magic = 0xCAFEBABE

// Constant pool tags
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

var (
	// ErrBadMagic is returned when the input is not a class file
	ErrBadMagic = errors.New("bad magic number")
	// ErrMalformed is returned when the constant pool cannot be interpreted
	ErrMalformed = errors.New("malformed class file")
)

// Header is the part of a class file that precedes fields and methods.
// Class names use dotted binary form (com.example.Outer$Inner).
type Header struct {
	MinorVersion uint16
	MajorVersion uint16
	AccessFlags  uint16
	ThisClass    string
	SuperClass   string
	Interfaces   []string
}

type constant struct {
	tag     byte
	utf8    string
	nameIdx uint16
}

type reader struct {
	r   *bufio.Reader
	err error
}

func (r *reader) u1() byte {
	if r.err != nil {
		return 0
	}
	b, err := r.r.ReadByte()
	r.err = err
	return b
}

func (r *reader) u2() uint16 {
	var buf [2]byte
	r.read(buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) u4() uint32 {
	var buf [4]byte
	r.read(buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (r *reader) read(p []byte) {
	if r.err != nil {
		return
	}
	_, r.err = io.ReadFull(r.r, p)
}

func (r *reader) skip(n int) {
	if r.err != nil {
		return
	}
	_, r.err = r.r.Discard(n)
}

// Parse reads a class file header from rd
func Parse(rd io.Reader) (*Header, error) {
	r := &reader{r: bufio.NewReader(rd)}

	if magic := r.u4(); r.err == nil && magic != Magic {
		return nil, fmt.Errorf("%w: %#x", ErrBadMagic, magic)
	}

	h := &Header{}
	h.MinorVersion = r.u2()
	h.MajorVersion = r.u2()

	pool, err := readPool(r)
	if err != nil {
		return nil, err
	}

	h.AccessFlags = r.u2()
	thisIdx := r.u2()
	superIdx := r.u2()
	ifaceCount := r.u2()
	ifaceIdx := make([]uint16, 0, ifaceCount)
	for i := 0; i < int(ifaceCount); i++ {
		ifaceIdx = append(ifaceIdx, r.u2())
	}
	if r.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, unexpectedEOF(r.err))
	}

	if h.ThisClass, err = className(pool, thisIdx); err != nil {
		return nil, fmt.Errorf("this_class: %w", err)
	}
	if superIdx != 0 {
		if h.SuperClass, err = className(pool, superIdx); err != nil {
			return nil, fmt.Errorf("super_class: %w", err)
		}
	}
	for _, idx := range ifaceIdx {
		name, err := className(pool, idx)
		if err != nil {
			return nil, fmt.Errorf("interface: %w", err)
		}
		h.Interfaces = append(h.Interfaces, name)
	}

	return h, nil
}

func readPool(r *reader) ([]constant, error) {
	count := r.u2()
	if r.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, unexpectedEOF(r.err))
	}
	pool := make([]constant, count)

	for i := 1; i < int(count); i++ {
		tag := r.u1()
		c := constant{tag: tag}
		switch tag {
		case tagUtf8:
			n := r.u2()
			buf := make([]byte, n)
			r.read(buf)
			c.utf8 = decodeModifiedUTF8(buf)
		case tagClass, tagModule, tagPackage:
			c.nameIdx = r.u2()
		case tagString, tagMethodType:
			r.skip(2)
		case tagMethodHandle:
			r.skip(3)
		case tagInteger, tagFloat, tagFieldref, tagMethodref, tagInterfaceMethodref,
			tagNameAndType, tagDynamic, tagInvokeDynamic:
			r.skip(4)
		case tagLong, tagDouble:
			r.skip(8)
			pool[i] = c
			i++
			continue
		default:
			if r.err == nil {
				return nil, fmt.Errorf("%w: unknown constant tag %d at index %d", ErrMalformed, tag, i)
			}
		}
		if r.err != nil {
			return nil, fmt.Errorf("%w: constant pool: %v", ErrMalformed, unexpectedEOF(r.err))
		}
		pool[i] = c
	}
	return pool, nil
}

func className(pool []constant, idx uint16) (string, error) {
	if int(idx) >= len(pool) || idx == 0 || pool[idx].tag != tagClass {
		return "", fmt.Errorf("%w: index %d is not a class constant", ErrMalformed, idx)
	}
	nameIdx := pool[idx].nameIdx
	if int(nameIdx) >= len(pool) || nameIdx == 0 || pool[nameIdx].tag != tagUtf8 {
		return "", fmt.Errorf("%w: index %d is not a utf8 constant", ErrMalformed, nameIdx)
	}
	return strings.ReplaceAll(pool[nameIdx].utf8, "/", "."), nil
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// decodeModifiedUTF8 decodes the JVM's modified UTF-8. NUL is encoded as two
// bytes and supplementary characters as surrogate pairs.
func decodeModifiedUTF8(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	var high rune

	for i := 0; i < len(b); {
		var r rune
		c := b[i]
		switch {
		case c < 0x80:
			r = rune(c)
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			r = rune(c&0x1F)<<6 | rune(b[i+1]&0x3F)
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			r = rune(c&0x0F)<<12 | rune(b[i+1]&0x3F)<<6 | rune(b[i+2]&0x3F)
			i += 3
		default:
			r = 0xFFFD
			i++
		}

		switch {
		case r >= 0xD800 && r <= 0xDBFF:
			if high != 0 {
				sb.WriteRune(0xFFFD)
			}
			high = r
			continue
		case r >= 0xDC00 && r <= 0xDFFF && high != 0:
			r = ((high - 0xD800) << 10) + (r - 0xDC00) + 0x10000
			high = 0
		case high != 0:
			sb.WriteRune(0xFFFD)
			high = 0
		}
		sb.WriteRune(r)
	}
	if high != 0 {
		sb.WriteRune(0xFFFD)
	}
	return sb.String()
}
