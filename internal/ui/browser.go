package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"classenum/internal/domain"
)

// ClassBrowser displays a scan index in an interactive TUI
type ClassBrowser struct{}

// NewClassBrowser creates a new ClassBrowser
func NewClassBrowser() *ClassBrowser {
	return &ClassBrowser{}
}

// View displays the packages of index with their classes
func (cb *ClassBrowser) View(index *domain.Index) error {
	if len(index.Packages) == 0 {
		color.Yellow("No packages in the saved index")
		return nil
	}

	app := tview.NewApplication()

	// Packages (left)
	packages := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, pkg := range index.Packages {
		packages.AddItem(packageItemText(i, pkg), "", 0, nil)
	}
	packages.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	// Classes of the selected package (middle)
	classes := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	classes.SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsView, 0, 1, false)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(packages, 0, 1, true).
		AddItem(classes, 0, 1, false).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Class Index (%d packages, %d classes, %d failed) | ↑↓ navigate, → classes, ← back, Ctrl+C exit ",
			index.Meta.TotalPackages, index.Meta.TotalClasses, index.Meta.FailedPackages))

	currentPackage := func() *domain.PackageResult {
		i := packages.GetCurrentItem()
		if i < 0 || i >= len(index.Packages) {
			return nil
		}
		return &index.Packages[i]
	}

	updateDetails := func() {
		pkg := currentPackage()
		if pkg == nil {
			return
		}
		statsView.SetText(formatPackageStats(*pkg))
		i := classes.GetCurrentItem()
		if !pkg.Success() {
			detailsView.SetText(fmt.Sprintf("[red]✗ %s[white]", tview.Escape(pkg.Error)))
			return
		}
		if i >= 0 && i < len(pkg.Classes) {
			detailsView.SetText(formatClassDetails(pkg.Classes[i]))
		} else {
			detailsView.SetText("[gray]No classes[white]")
		}
	}

	updateClasses := func() {
		classes.Clear()
		pkg := currentPackage()
		if pkg == nil {
			return
		}
		for _, c := range pkg.Classes {
			classes.AddItem(tview.Escape(c.SimpleName()), "", 0, nil)
		}
		updateDetails()
	}

	packages.SetChangedFunc(func(int, string, string, rune) {
		updateClasses()
	})
	classes.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	packages.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			if classes.GetItemCount() > 0 {
				app.SetFocus(classes)
			}
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	classes.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(packages)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	updateClasses()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(body, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(packages).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// packageItemText formats a package entry of the left-hand list
func packageItemText(i int, pkg domain.PackageResult) string {
	name := tview.Escape(pkg.Package)
	if !pkg.Success() {
		return fmt.Sprintf("[red]✗ [yellow]%d.[white] %s", i+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s [gray](%d)[white]", i+1, name, len(pkg.Classes))
}

// formatPackageStats formats the stats header for a package
func formatPackageStats(pkg domain.PackageResult) string {
	status := "[green]ok[white]"
	if !pkg.Success() {
		status = "[red]failed[white]"
	}
	return fmt.Sprintf("[cyan]package:[white] [yellow]%s[white]  [cyan]classes:[white] %d  [cyan]status:[white] %s\n",
		tview.Escape(pkg.Package), len(pkg.Classes), status)
}

// formatClassDetails formats a class handle for display using tview color tags
func formatClassDetails(c *domain.ClassHandle) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[green]%s[white]\n\n", tview.Escape(c.Name))
	fmt.Fprintf(w, "[cyan]Kind:[white]\t%s\n", c.Kind())
	if release := c.JavaRelease(); release > 0 {
		fmt.Fprintf(w, "[cyan]Version:[white]\t%d.%d (Java %d)\n", c.MajorVersion, c.MinorVersion, release)
	} else {
		fmt.Fprintf(w, "[cyan]Version:[white]\t%d.%d\n", c.MajorVersion, c.MinorVersion)
	}
	fmt.Fprintf(w, "[cyan]Access:[white]\t0x%04x\n", c.AccessFlags)
	if c.SuperName != "" {
		fmt.Fprintf(w, "[cyan]Extends:[white]\t%s\n", tview.Escape(c.SuperName))
	}
	if len(c.Interfaces) > 0 {
		fmt.Fprintf(w, "[cyan]Implements:[white]\t%s\n", tview.Escape(strings.Join(c.Interfaces, ", ")))
	}
	fmt.Fprintf(w, "[cyan]File:[white]\t%s\n", tview.Escape(c.Path))

	w.Flush()
	return builder.String()
}
