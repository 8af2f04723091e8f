package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
	"github.com/georgemunganga/pharmacy-storefront/internal/datatable"
	"github.com/georgemunganga/pharmacy-storefront/internal/logger"
	"github.com/georgemunganga/pharmacy-storefront/internal/modules/auth"
	"github.com/georgemunganga/pharmacy-storefront/internal/web"
)

type Handler struct {
	service Service
	codec   datatable.QueryCodec
}

func NewHandler(service Service, codec datatable.QueryCodec) *Handler {
	codec.FilterKeys = []string{"role", "status"}
	return &Handler{service: service, codec: codec}
}

func (h *Handler) RegisterRoutes(r chi.Router, mw *auth.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(web.RoleCustomer, web.RoleSeller, web.RoleAdmin))
		r.Get("/dashboard/profile", h.profile)
		r.Post("/dashboard/profile", h.updateProfile)
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireRole(web.RoleAdmin))
		r.Get("/admin-dashboard/users", h.users)
		r.Post("/admin-dashboard/users/bulk", h.bulk)
		r.Post("/admin-dashboard/users/{id}/status", h.setStatus)
		r.Post("/admin-dashboard/users/{id}/delete", h.delete)
	})
}

func (h *Handler) users(w http.ResponseWriter, r *http.Request) {
	q := h.codec.Decode(r.URL.Query())
	tbl, err := h.table(r, q)
	if err != nil {
		web.Error(w, r, http.StatusInternalServerError, "Could not build the user table.")
		return
	}
	node := datatable.Render(tbl, datatable.NewPager(tbl, tbl.Meta(), r.URL), datatable.RenderOptions{
		ID:      tableID,
		Title:   "users",
		BulkURL: "/admin-dashboard/users/bulk",
	})
	web.Page(w, r, http.StatusOK, web.Layout{Title: "Users", Sidebar: web.AdminNav, Body: node}, node)
}

func actorID(ctx context.Context) string {
	if u := auth.UserFromContext(ctx); u != nil {
		return u.ID
	}
	return ""
}

// table loads one page of users for q.
func (h *Handler) table(r *http.Request, q datatable.QueryState) (*datatable.Table[User], error) {
	list, err := h.service.List(r.Context(), q)
	if err != nil {
		logger.Log.WithError(err).Error("list users")
	}
	actor := actorID(r.Context())

	tbl, terr := datatable.New(datatable.Options[User]{
		Columns: columns(actor, r.URL.RequestURI()),
		RowKey:  func(u User) string { return u.ID },
		Toolbar: datatable.ToolbarOptions[User]{
			ServerSearch:      true,
			SearchPlaceholder: "Search by name or email...",
			FilterableColumns: []datatable.FilterableColumn{
				{ID: "role", Title: "Role", Options: roleOptions, Multi: true},
				{ID: "status", Title: "Status", Options: statusOptions},
			},
			BulkActions: []datatable.BulkAction[User]{{
				Label:   "Ban",
				Variant: "danger",
				Confirm: "Ban the selected users?",
				Handler: func(ctx context.Context, rows []User) error { return h.service.BanMany(ctx, actor, rows) },
			}},
			ShowViewOptions: true,
		},
	})
	if terr != nil {
		return nil, terr
	}

	meta := datatable.PaginationMeta{Page: q.Page, Limit: q.Limit}
	var data []User
	if list != nil {
		data, meta = list.Data, list.Meta
	}
	tbl.SetProps(data, meta, false, err != nil)
	tbl.Restore(q)
	return tbl, nil
}

func (h *Handler) bulk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.Error(w, r, http.StatusBadRequest, "Invalid form.")
		return
	}
	q := h.codec.Decode(web.ReturnQuery(r))
	q.Selected = r.PostForm[datatable.ParamSelected]

	tbl, err := h.table(r, q)
	if err != nil {
		web.Error(w, r, http.StatusInternalServerError, "Could not build the user table.")
		return
	}
	n := len(tbl.SelectedKeys())
	err = tbl.Toolbar().InvokeBulk(r.Context(), r.PostForm.Get("action"))
	switch {
	case errors.Is(err, datatable.ErrEmptySelection):
		web.SetFlash(w, web.FlashError, "Select at least one user.")
	case err != nil:
		logger.Log.WithError(err).Warn("bulk ban users")
		web.SetFlash(w, web.FlashError, "Some users could not be banned.")
	default:
		web.SetFlash(w, web.FlashSuccess, fmt.Sprintf("Banned %d users.", n))
	}
	web.Back(w, r, "/admin-dashboard/users")
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	status := r.FormValue("status")
	_, err := h.service.SetStatus(r.Context(), actorID(r.Context()), chi.URLParam(r, "id"), status)
	switch {
	case err == nil:
		web.SetFlash(w, web.FlashSuccess, "User status updated")
	case errors.Is(err, ErrOwnAccount):
		web.SetFlash(w, web.FlashError, "You cannot change your own account.")
	case errors.Is(err, ErrInvalidStatus):
		web.SetFlash(w, web.FlashError, "Unknown status.")
	default:
		logger.Log.WithError(err).WithField("status", status).Warn("update user status")
		web.SetFlash(w, web.FlashError, backend.Message(err, "Failed to update user status"))
	}
	web.Back(w, r, "/admin-dashboard/users")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), actorID(r.Context()), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		web.SetFlash(w, web.FlashSuccess, "User deleted.")
	case errors.Is(err, ErrOwnAccount):
		web.SetFlash(w, web.FlashError, "You cannot delete your own account.")
	default:
		logger.Log.WithError(err).Warn("delete user")
		web.SetFlash(w, web.FlashError, backend.Message(err, "Could not delete the user."))
	}
	web.Back(w, r, "/admin-dashboard/users")
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	current := auth.UserFromContext(r.Context())
	u, err := h.service.GetUser(r.Context(), current.ID)
	if err != nil {
		logger.Log.WithError(err).Warn("load profile")
		u = &User{ID: current.ID, Name: current.Name, Email: current.Email, Role: current.Role, Image: current.Image}
	}
	h.renderProfile(w, r, http.StatusOK, profileView{user: *u})
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	current := auth.UserFromContext(r.Context())
	name, image := r.FormValue("name"), r.FormValue("image")
	_, err := h.service.UpdateProfile(r.Context(), current.ID, name, image)
	if err == nil {
		// The cached session still carries the old name.
		auth.ExpireCache(w)
		web.SetFlash(w, web.FlashSuccess, "Profile updated.")
		web.Redirect(w, r, "/dashboard/profile")
		return
	}

	v := profileView{user: User{ID: current.ID, Name: name, Email: current.Email, Role: current.Role, Image: image}}
	switch {
	case errors.Is(err, ErrNameRequired):
		v.errs = map[string]string{"name": "Name is required."}
	case errors.Is(err, ErrInvalidImage):
		v.errs = map[string]string{"image": "Enter a full http(s) image URL."}
	default:
		logger.Log.WithError(err).Warn("update profile")
		v.errs = map[string]string{"form": backend.Message(err, "Could not update your profile.")}
	}
	h.renderProfile(w, r, http.StatusUnprocessableEntity, v)
}

func (h *Handler) renderProfile(w http.ResponseWriter, r *http.Request, status int, v profileView) {
	sidebar := web.CustomerNav
	switch v.user.Role {
	case web.RoleSeller:
		sidebar = web.SellerNav
	case web.RoleAdmin:
		sidebar = web.AdminNav
	}
	web.Page(w, r, status, web.Layout{Title: "Profile", Sidebar: sidebar, Body: profilePage(v)}, nil)
}
