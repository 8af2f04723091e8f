package blog

import (
	"context"
	"net/http"
	"net/url"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
)

type apiRepo struct{ client *backend.Client }

func NewAPIRepository(client *backend.Client) Repository { return &apiRepo{client: client} }

func (r *apiRepo) List(ctx context.Context, p ListParams) (*backend.List[Post], error) {
	var out backend.List[Post]
	if err := r.client.Get(ctx, "posts.list", "/posts", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// postBody accepts the post either wrapped in "data" or as the body itself.
type postBody struct {
	Data *Post `json:"data"`
	Post
}

func (r *apiRepo) Get(ctx context.Context, id string) (*Post, error) {
	var out postBody
	if err := r.client.Get(ctx, "posts.get", "/posts/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	switch {
	case out.Data != nil:
		return out.Data, nil
	case out.ID != "":
		return &out.Post, nil
	}
	return nil, &backend.Error{Op: "posts.get", Status: http.StatusNotFound, Message: "Post not found"}
}
