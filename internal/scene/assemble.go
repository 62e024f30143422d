package scene

import (
	"context"

	"go.uber.org/zap"
)

// Callbacks receive the outcome of one asynchronous load. Exactly one of
// OnSuccess or OnError is called, after zero or more OnProgress calls.
// Any of them may be nil.
type Callbacks struct {
	OnSuccess  func(r *Renderable)
	OnProgress func(fraction float64)
	OnError    func(err error)
}

// Loader resolves an asset path to a renderable in the background.
type Loader interface {
	Load(ctx context.Context, path string, cb Callbacks)
}

// Assemble places the layout's primitives on host right away and starts a
// load for every model. Loaded models reach the host whenever their load
// finishes, in no particular order. Failed loads are logged and skipped.
func Assemble(ctx context.Context, l *Layout, host Host, loader Loader, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}

	for _, p := range l.Primitives {
		host.AddRenderable(p.Renderable(), p.Pose())
	}
	log.Info("primitives placed", zap.Int("count", len(l.Primitives)))

	for _, m := range l.Models {
		loader.Load(ctx, m.Path, Callbacks{
			OnSuccess: func(r *Renderable) {
				if m.Name != "" {
					r.Name = m.Name
				}
				r.CastShadow = m.CastShadow
				host.AddRenderable(r, m.Pose())
				log.Info("model loaded", zap.String("name", r.Name), zap.String("path", m.Path))
			},
			OnProgress: func(fraction float64) {
				log.Debug("model loading",
					zap.String("path", m.Path),
					zap.Float64("percent", fraction*100),
				)
			},
			OnError: func(err error) {
				log.Error("model load failed",
					zap.String("name", m.Name),
					zap.String("path", m.Path),
					zap.Error(err),
				)
			},
		})
	}
}
