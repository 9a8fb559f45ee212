package ports

import (
	"context"

	"shelfmark/internal/domain"
)

// Renderer replaces the displayed dashboard with a freshly projected one
type Renderer interface {
	Render(p *domain.Projection, collapsed domain.CollapsedSet)
}

// Notifier surfaces non-fatal messages to the user
type Notifier interface {
	Notify(message string, isErr bool)
}

// Confirmer asks the user to approve a destructive operation. It blocks
// until the user answers or ctx is done.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// URLOpener opens a bookmark URL outside the application
type URLOpener interface {
	Open(url string) error
}
