package domain

// ClassSuffix is the filename extension of a compiled class on disk
const ClassSuffix = ".class"

// Access flags from the class file header
const (
	AccPublic     = 0x0001
	AccFinal      = 0x0010
	AccInterface  = 0x0200
	AccAbstract   = 0x0400
	AccSynthetic  = 0x1000
	AccAnnotation = 0x2000
	AccEnum       = 0x4000
	AccModule     = 0x8000
)

// ClassHandle represents a loaded class, keyed by its fully-qualified name
type ClassHandle struct {
	Name         string   `json:"name"`                 // Fully-qualified name, e.g. com.example.Foo
	Path         string   `json:"path"`                 // Class file the handle was loaded from
	MajorVersion uint16   `json:"major_version"`        // Class file major version
	MinorVersion uint16   `json:"minor_version"`        // Class file minor version
	AccessFlags  uint16   `json:"access_flags"`         // Raw access flags
	SuperName    string   `json:"super_name,omitempty"` // Empty for java.lang.Object and module-info
	Interfaces   []string `json:"interfaces,omitempty"`
}

// SimpleName returns the name without its package prefix
func (c *ClassHandle) SimpleName() string {
	for i := len(c.Name) - 1; i >= 0; i-- {
		if c.Name[i] == '.' {
			return c.Name[i+1:]
		}
	}
	return c.Name
}

// Kind reports what sort of type the handle refers to.
// Order matters: annotations are also interfaces.
func (c *ClassHandle) Kind() string {
	switch {
	case c.AccessFlags&AccModule != 0:
		return "module"
	case c.AccessFlags&AccAnnotation != 0:
		return "annotation"
	case c.AccessFlags&AccInterface != 0:
		return "interface"
	case c.AccessFlags&AccEnum != 0:
		return "enum"
	default:
		return "class"
	}
}

// JavaRelease maps the major version to the Java release that produced it.
// Returns 0 for versions older than Java 1.2 (45 and below).
func (c *ClassHandle) JavaRelease() int {
	if c.MajorVersion <= 45 {
		return 0
	}
	return int(c.MajorVersion) - 44
}

// IsPublic reports whether the class is declared public
func (c *ClassHandle) IsPublic() bool {
	return c.AccessFlags&AccPublic != 0
}
