// internal/api/themes/handlers.go
package themes

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/velvetlane/storefront/internal/api/apiutil"
	"github.com/velvetlane/storefront/internal/models"
	"github.com/velvetlane/storefront/internal/theme"
)

const (
	themeQueryTimeout = 5 * time.Second
	themeIDParam      = "id"
	presetIDParam     = "id"
)

var (
	store     *theme.Store
	storeOnce sync.Once
)

// ThemeListResponse carries all themes plus a summary of the active one.
type ThemeListResponse struct {
	Themes      []models.Theme      `json:"themes"`
	ActiveTheme *ActiveThemeSummary `json:"activeTheme,omitempty"`
}

type ActiveThemeSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ActiveThemeResponse struct {
	Theme models.Theme `json:"theme"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *theme.Store) {
	if s == nil {
		return
	}
	storeOnce.Do(func() {
		store = s
	})
}

// GET /api/v1/themes
func HandleThemesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	themes, err := s.List(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list themes")
		http.Error(w, "Failed to load themes", http.StatusInternalServerError)
		return
	}

	response := ThemeListResponse{Themes: themes}
	for _, t := range themes {
		if t.IsActive {
			response.ActiveTheme = &ActiveThemeSummary{ID: t.ID, Name: t.Name}
			break
		}
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("Failed to write themes list response")
	}
}

// GET /api/v1/themes/{id}
func HandleThemeDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	themeID, err := apiutil.IDFromPath(r, themeIDParam)
	if err != nil {
		http.Error(w, "Invalid theme ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	t, err := s.Get(ctx, themeID)
	if err != nil {
		writeStoreError(w, r, err, "Failed to load theme")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, t); err != nil {
		logger.Error().Err(err).Int64("theme_id", themeID).Msg("Failed to write theme response")
	}
}

// POST /api/v1/themes
func HandleThemeCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var input theme.CreateThemeInput
	if err := apiutil.DecodeJSON(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	created, err := s.Create(ctx, input)
	if err != nil {
		writeStoreError(w, r, err, "Failed to create theme")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, created); err != nil {
		logger.Error().Err(err).Str("name", input.Name).Msg("Failed to write theme create response")
	}
}

// PUT /api/v1/themes/{id}
func HandleThemeUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	themeID, err := apiutil.IDFromPath(r, themeIDParam)
	if err != nil {
		http.Error(w, "Invalid theme ID", http.StatusBadRequest)
		return
	}

	var input theme.UpdateThemeInput
	if err := apiutil.DecodeJSON(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	updated, err := s.Update(ctx, themeID, input)
	if err != nil {
		writeStoreError(w, r, err, "Failed to update theme")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Int64("theme_id", themeID).Msg("Failed to write theme update response")
	}
}

// DELETE /api/v1/themes/{id}
func HandleThemeDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	themeID, err := apiutil.IDFromPath(r, themeIDParam)
	if err != nil {
		http.Error(w, "Invalid theme ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	if err := s.Delete(ctx, themeID); err != nil {
		writeStoreError(w, r, err, "Failed to delete theme")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/themes/{id}/activate
func HandleThemeActivate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	themeID, err := apiutil.IDFromPath(r, themeIDParam)
	if err != nil {
		http.Error(w, "Invalid theme ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	if err := s.Activate(ctx, themeID); err != nil {
		writeStoreError(w, r, err, "Failed to activate theme")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/themes/{id}/clone
func HandleThemeClone(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	themeID, err := apiutil.IDFromPath(r, themeIDParam)
	if err != nil {
		http.Error(w, "Invalid theme ID", http.StatusBadRequest)
		return
	}

	var input theme.CloneThemeInput
	if err := apiutil.DecodeJSON(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	created, err := s.Clone(ctx, themeID, input)
	if err != nil {
		writeStoreError(w, r, err, "Failed to clone theme")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, created); err != nil {
		logger.Error().Err(err).Int64("theme_id", themeID).Msg("Failed to write theme clone response")
	}
}

// GET /api/v1/themes/active
func HandleActiveTheme(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	active, err := s.Active(ctx)
	if err != nil {
		writeStoreError(w, r, err, "Failed to load active theme")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, ActiveThemeResponse{Theme: active}); err != nil {
		logger.Error().Err(err).Msg("Failed to write active theme response")
	}
}

// GET /api/v1/themes/active/css
func HandleActiveThemeCSS(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	css, etag, err := s.Cache().ActiveCSSWithETag(ctx)
	if err != nil {
		writeStoreError(w, r, err, "Failed to load active theme CSS")
		return
	}

	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(css)); err != nil {
		logger.Error().Err(err).Msg("Failed to write active theme CSS")
	}
}

// GET /api/v1/presets
func HandlePresetsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	presets, err := s.ListPresets(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list presets")
		http.Error(w, "Failed to load presets", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"presets": presets}); err != nil {
		logger.Error().Err(err).Msg("Failed to write presets response")
	}
}

// POST /api/v1/presets/{id}/instantiate
func HandlePresetInstantiate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	presetID, err := apiutil.IDFromPath(r, presetIDParam)
	if err != nil {
		http.Error(w, "Invalid preset ID", http.StatusBadRequest)
		return
	}

	var input theme.InstantiatePresetInput
	if err := apiutil.DecodeJSON(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	created, err := s.InstantiateFromPreset(ctx, presetID, input)
	if err != nil {
		writeStoreError(w, r, err, "Failed to instantiate preset")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, created); err != nil {
		logger.Error().Err(err).Int64("preset_id", presetID).Msg("Failed to write preset instantiate response")
	}
}

// GET /api/v1/fonts
func HandleFontsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	fonts, err := s.ListFonts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list fonts")
		http.Error(w, "Failed to load fonts", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"fonts": fonts}); err != nil {
		logger.Error().Err(err).Msg("Failed to write fonts response")
	}
}

// writeStoreError maps engine errors onto HTTP statuses. Validation failures
// return the full field list so a caller can fix every problem at once.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger := log.Ctx(r.Context())

	var validationErr *theme.ValidationError
	var cycleErr *theme.CycleError
	var danglingErr *theme.DanglingParentError
	var depthErr *theme.ChainDepthError

	switch {
	case errors.As(err, &validationErr):
		_ = apiutil.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "token validation failed",
			"fields": validationErr.Fields,
		})
	case errors.As(err, &cycleErr), errors.As(err, &danglingErr), errors.As(err, &depthErr):
		apiutil.WriteJSONError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, theme.ErrInvalidInput):
		apiutil.WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, theme.ErrNotFound), errors.Is(err, theme.ErrPresetNotFound):
		apiutil.WriteJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, theme.ErrStaleVersion),
		errors.Is(err, theme.ErrNameTaken),
		errors.Is(err, theme.ErrThemeIsActive),
		errors.Is(err, theme.ErrThemeHasChildren):
		apiutil.WriteJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, theme.ErrSystemThemeImmutable):
		apiutil.WriteJSONError(w, http.StatusForbidden, err.Error())
	default:
		logger.Error().Err(err).Msg(fallback)
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}

func loadStore() *theme.Store {
	return store
}
