package ui

import "classenum/internal/domain"

// Viewer displays a scan index in an interactive TUI
type Viewer interface {
	View(index *domain.Index) error
}
