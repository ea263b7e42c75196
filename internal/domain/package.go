package domain

import (
	"strings"
	"unicode"
)

// ValidPackageName reports whether name is a dotted path of Java identifiers.
// The unnamed (empty) package is not accepted.
func ValidPackageName(name string) bool {
	if name == "" {
		return false
	}
	for _, segment := range strings.Split(name, ".") {
		if !validIdentifier(segment) {
			return false
		}
	}
	return true
}

func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// PackagePath converts a dotted package name to a slash-separated relative path
func PackagePath(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}

// QualifiedName builds the fully-qualified class name for a directory entry
func QualifiedName(pkg, entry string) string {
	return pkg + "." + strings.TrimSuffix(entry, ClassSuffix)
}

// IsClassEntry reports whether a directory entry name denotes a compiled class.
// The match is an exact, case-sensitive suffix match.
func IsClassEntry(name string) bool {
	return len(name) > len(ClassSuffix) && strings.HasSuffix(name, ClassSuffix)
}
