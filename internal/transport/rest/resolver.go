package rest

import (
	"net/http"

	"github.com/papermint/papermint-backend/internal/routing"
)

// ResolverHandler answers legacy profile paths of the shape /{handle}
// and /{handle}/{publicationID}. It is mounted on the catch-all routes,
// so every path no other route claimed lands here.
type ResolverHandler struct{}

func NewResolverHandler() *ResolverHandler {
	return &ResolverHandler{}
}

// Resolve redirects legacy paths to their canonical URLs. Reserved
// slugs pass through as 404 here; on the old hosting setup the host
// router took over instead, and keeping the decision identical is what
// lets the frontend own those pages.
func (h *ResolverHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	decision := routing.Resolve(r.PathValue("handle"), r.PathValue("publicationID"))
	if decision.Kind != routing.DecisionRedirect {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, decision.Location, http.StatusPermanentRedirect)
}
