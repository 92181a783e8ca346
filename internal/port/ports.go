// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/aivahq/aiva-lite-api/internal/domain"
)

// DataLoader reads the company data snapshot. Implementations must read the
// backing store on every call so concurrent callers always observe the
// at-call-time content.
type DataLoader interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
}

// Completer sends a single prompt to the generative-language provider and
// returns the trimmed answer text. Configured reports whether a provider
// credential is present; Complete must fail with domain.ErrNotConfigured
// before any network use when it is not.
type Completer interface {
	Complete(ctx context.Context, prompt, model string, params domain.GenerationParams) (string, error)
	Configured() bool
}
