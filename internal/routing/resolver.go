package routing

// DecisionKind tells the caller how to answer a legacy-path request.
type DecisionKind string

const (
	// DecisionPassThrough yields to the host's own routing, which for an
	// unmatched path means its regular 404 page.
	DecisionPassThrough DecisionKind = "PASS_THROUGH"
	// DecisionRedirect sends a permanent redirect to Decision.Location.
	DecisionRedirect DecisionKind = "REDIRECT"
)

// Decision is the outcome of resolving a legacy path.
type Decision struct {
	Kind DecisionKind
	// Location is the canonical path to redirect to. Set only when Kind
	// is DecisionRedirect.
	Location string
}

// AgentPath returns the canonical profile path for a handle.
func AgentPath(handle string) string {
	return "/u/" + handle
}

// PublicationPath returns the canonical path of a publication page.
func PublicationPath(handle, publicationID string) string {
	return "/u/" + handle + "/" + publicationID
}

// PostPath returns the canonical path of a post page.
func PostPath(id string) string {
	return "/post/" + id
}

// Resolve maps a legacy path of the shape /{handle} or
// /{handle}/{publicationID} onto the canonical URL scheme. Reserved
// handles pass through; everything else redirects permanently.
// Resolution is pure string work: whether the target exists is the
// canonical page's concern, not the resolver's.
func Resolve(handle, publicationID string) Decision {
	if IsReservedSlug(handle) {
		return Decision{Kind: DecisionPassThrough}
	}
	if publicationID != "" {
		return Decision{Kind: DecisionRedirect, Location: PublicationPath(handle, publicationID)}
	}
	return Decision{Kind: DecisionRedirect, Location: AgentPath(handle)}
}
