package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/papermint/papermint-backend/internal/config"
	"github.com/papermint/papermint-backend/internal/domain"
	"github.com/papermint/papermint-backend/internal/ogimage"
)

// OGHandler serves social preview images. Whatever goes wrong while
// assembling or rendering, the response is a 200 with a valid PNG;
// crawlers cache errors aggressively, so a broken card must never
// become the page's permanent preview.
type OGHandler struct {
	assembler *ogimage.Assembler
	renderer  *ogimage.Renderer
	logger    *slog.Logger
	staticTTL time.Duration
	postTTL   time.Duration
}

func NewOGHandler(assembler *ogimage.Assembler, renderer *ogimage.Renderer, logger *slog.Logger, cfg config.OGConfig) *OGHandler {
	return &OGHandler{
		assembler: assembler,
		renderer:  renderer,
		logger:    logger,
		staticTTL: cfg.StaticCacheTTL,
		postTTL:   cfg.PostCacheTTL,
	}
}

func (h *OGHandler) Global(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, ogimage.GlobalVariant())
}

func (h *OGHandler) Docs(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, ogimage.DocsVariant(r.PathValue("topic")))
}

func (h *OGHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, ogimage.SearchVariant())
}

func (h *OGHandler) Post(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, ogimage.PostVariant(r.PathValue("id")))
}

func (h *OGHandler) serve(w http.ResponseWriter, r *http.Request, v ogimage.Variant) {
	data := h.renderer.Fallback()

	card, err := h.assembler.Assemble(r.Context(), v)
	if err != nil {
		// Unknown posts and docs topics are routine crawler traffic.
		level := slog.LevelError
		if errors.Is(err, domain.ErrNotFound) {
			level = slog.LevelDebug
		}
		h.logger.LogAttrs(r.Context(), level, "og card assembly failed, serving fallback",
			slog.String("variant", v.Kind.String()),
			slog.String("error", err.Error()),
		)
	} else if png, rerr := h.renderer.Render(card); rerr != nil {
		h.logger.LogAttrs(r.Context(), slog.LevelError, "og render failed, serving fallback",
			slog.String("variant", v.Kind.String()),
			slog.String("error", rerr.Error()),
		)
	} else {
		data = png
	}

	ttl := h.staticTTL
	if v.RequiresDataAccess() {
		ttl = h.postTTL
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", cacheControl(ttl))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func cacheControl(ttl time.Duration) string {
	if ttl <= 0 {
		return "no-store"
	}
	return "public, max-age=" + strconv.Itoa(int(ttl.Seconds()))
}
