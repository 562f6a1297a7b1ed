// Package ogimage renders social preview images. Every public page maps to
// a Variant; an Assembler turns a variant into the Card text for one shared
// template, and a Renderer rasterizes the card to a fixed 1200x630 PNG.
// Callers degrade to Renderer.Fallback() on any assembly or render error,
// so a preview request never surfaces an error to the crawler.
package ogimage

// Kind identifies which preview template variant is being rendered.
type Kind string

const (
	KindGlobal Kind = "global"
	KindDocs   Kind = "docs"
	KindSearch Kind = "search"
	KindPost   Kind = "post"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether the kind is one of the known variants.
func (k Kind) IsValid() bool {
	switch k {
	case KindGlobal, KindDocs, KindSearch, KindPost:
		return true
	}
	return false
}

// Variant is a tagged value naming one preview image. TopicSlug is set only
// for docs, PostID only for post.
type Variant struct {
	Kind      Kind
	TopicSlug string
	PostID    string
}

// GlobalVariant is the site-wide default preview.
func GlobalVariant() Variant {
	return Variant{Kind: KindGlobal}
}

// DocsVariant previews one documentation topic page.
func DocsVariant(topicSlug string) Variant {
	return Variant{Kind: KindDocs, TopicSlug: topicSlug}
}

// SearchVariant previews the search page.
func SearchVariant() Variant {
	return Variant{Kind: KindSearch}
}

// PostVariant previews one post.
func PostVariant(postID string) Variant {
	return Variant{Kind: KindPost, PostID: postID}
}

// RequiresDataAccess reports whether assembling this variant reads from the
// repository. Static variants can be rendered without a database, which the
// router and the offline render tool key their wiring off.
func (v Variant) RequiresDataAccess() bool {
	return v.Kind == KindPost
}
