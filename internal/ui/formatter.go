package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"classenum/internal/domain"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

// Formatter formats and displays output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter() *Formatter {
	return NewFormatterWriter(os.Stdout)
}

// NewFormatterWriter creates a new Formatter writing to w
func NewFormatterWriter(w io.Writer) *Formatter {
	return &Formatter{out: w}
}

// PrintClassList prints the classes of one package, one per line.
// With details, kind, Java release and super class are shown as columns.
func (f *Formatter) PrintClassList(pkg string, classes []*domain.ClassHandle, details bool) {
	if len(classes) == 0 {
		yellow.Fprintf(f.out, "No classes found in %s\n", pkg)
		return
	}

	if !details {
		for _, c := range classes {
			fmt.Fprintln(f.out, c.Name)
		}
	} else {
		w := tabwriter.NewWriter(f.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tKIND\tJAVA\tEXTENDS")
		for _, c := range classes {
			release := "-"
			if r := c.JavaRelease(); r > 0 {
				release = fmt.Sprintf("%d", r)
			}
			super := c.SuperName
			if super == "" {
				super = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.Kind(), release, super)
		}
		w.Flush()
	}

	green.Fprintf(f.out, "✓ Found %d class(es) in %s\n", len(classes), pkg)
}

// PrintPackages prints discovered package names as a tree of name segments
func (f *Formatter) PrintPackages(packages []string) {
	if len(packages) == 0 {
		yellow.Fprintln(f.out, "No packages found")
		return
	}

	root := newTreeNode("")
	for _, pkg := range packages {
		root.insert(pkg).marked = true
	}
	f.printTreeNode(root, "", true, cyan)

	green.Fprintf(f.out, "\n✓ Found %d package(s)\n", len(packages))
}

// PrintIndexStats displays meta statistics of a scan index
func (f *Formatter) PrintIndexStats(index *domain.Index) {
	meta := index.Meta
	line := "├─────────────────────────────────┼─────────────────────────────┤"

	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                     Class Scan Statistics                     ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(f.out)

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Total Packages", fmt.Sprintf("%d", meta.TotalPackages), white},
		{"Failed Packages", fmt.Sprintf("%d", meta.FailedPackages), red},
		{"Total Classes", fmt.Sprintf("%d", meta.TotalClasses), green},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Workers", fmt.Sprintf("%d", meta.Workers), white},
		{"Timestamp", meta.Timestamp, white},
	}
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.out, "%-27s", row.value)
		fmt.Fprintln(f.out, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, line)
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.FailedPackages == 0 {
		green.Fprintln(f.out, "✓ All packages enumerated!")
		return
	}

	red.Fprintf(f.out, "✗ %d package(s) failed\n\n", meta.FailedPackages)
	root := newTreeNode("")
	for _, pkg := range index.Packages {
		if !pkg.Success() {
			node := root.insert(pkg.Package)
			node.marked = true
			node.detail = pkg.Error
		}
	}
	f.printTreeNode(root, "", true, red)
}

// treeNode is a package name segment
type treeNode struct {
	name     string
	children map[string]*treeNode
	marked   bool   // a package of interest ends here
	detail   string // printed under a marked node
}

func newTreeNode(name string) *treeNode {
	return &treeNode{name: name, children: make(map[string]*treeNode)}
}

// insert adds the dotted name below n and returns its last node
func (n *treeNode) insert(dotted string) *treeNode {
	current := n
	for _, part := range strings.Split(dotted, ".") {
		child, ok := current.children[part]
		if !ok {
			child = newTreeNode(part)
			current.children[part] = child
		}
		current = child
	}
	return current
}

func (f *Formatter) printTreeNode(node *treeNode, prefix string, isRoot bool, markColor *color.Color) {
	// Sort children for consistent output
	keys := make([]string, 0, len(node.children))
	for key := range node.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.children[key]
		isLastChild := i == len(keys)-1

		connector := prefix + "|_ "
		if isRoot {
			connector = ""
		}

		if child.marked {
			markColor.Fprintf(f.out, "%s%s\n", connector, child.name)
		} else {
			fmt.Fprintf(f.out, "%s%s\n", connector, child.name)
		}

		var newPrefix string
		switch {
		case isRoot:
			newPrefix = "  "
		case isLastChild:
			newPrefix = prefix + "   "
		default:
			newPrefix = prefix + "|  "
		}
		if child.detail != "" {
			yellow.Fprintf(f.out, "%s   %s\n", newPrefix, child.detail)
		}
		f.printTreeNode(child, newPrefix, false, markColor)
	}
}
