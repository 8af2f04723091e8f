package web

import "context"

// Viewer is the signed-in user as the page shell needs it.
type Viewer struct {
	ID    string
	Name  string
	Email string
	Role  string
	Image string
}

func (v *Viewer) Is(role string) bool { return v != nil && v.Role == role }

type viewerKey struct{}

func WithViewer(ctx context.Context, v *Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

// ViewerFrom returns the signed-in user, or nil for anonymous requests.
func ViewerFrom(ctx context.Context) *Viewer {
	v, _ := ctx.Value(viewerKey{}).(*Viewer)
	return v
}
