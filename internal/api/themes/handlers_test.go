package themes

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/velvetlane/storefront/internal/models"
	"github.com/velvetlane/storefront/internal/theme"
)

// fakeRepo is an in-memory theme.Repository for handler tests.
type fakeRepo struct {
	mu      sync.Mutex
	nextID  int64
	themes  map[int64]models.Theme
	presets map[int64]models.ThemePreset
	fonts   []models.FontLibraryItem
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		nextID:  1,
		themes:  make(map[int64]models.Theme),
		presets: make(map[int64]models.ThemePreset),
	}
}

func (f *fakeRepo) addTheme(t models.Theme) models.Theme {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == 0 {
		t.ID = f.nextID
		f.nextID++
	}
	if t.Version == 0 {
		t.Version = 1
	}
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	f.themes[t.ID] = t
	return t
}

func (f *fakeRepo) GetTheme(ctx context.Context, id int64) (models.Theme, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.themes[id]
	if !ok {
		return models.Theme{}, fmt.Errorf("theme %d: %w", id, theme.ErrNotFound)
	}
	return t, nil
}

func (f *fakeRepo) GetThemeByName(ctx context.Context, name string) (models.Theme, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.themes {
		if t.Name == name {
			return t, nil
		}
	}
	return models.Theme{}, fmt.Errorf("theme %q: %w", name, theme.ErrNotFound)
}

func (f *fakeRepo) ListThemes(ctx context.Context) ([]models.Theme, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	themes := make([]models.Theme, 0, len(f.themes))
	for _, t := range f.themes {
		themes = append(themes, t)
	}
	return themes, nil
}

func (f *fakeRepo) ListChildThemes(ctx context.Context, parentID int64) ([]models.Theme, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	children := []models.Theme{}
	for _, t := range f.themes {
		if t.ParentThemeID != nil && *t.ParentThemeID == parentID {
			children = append(children, t)
		}
	}
	return children, nil
}

func (f *fakeRepo) InsertTheme(ctx context.Context, t models.Theme) (models.Theme, error) {
	_ = ctx
	return f.addTheme(t), nil
}

func (f *fakeRepo) UpdateTheme(ctx context.Context, t models.Theme, expectedVersion int64) (models.Theme, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	current, ok := f.themes[t.ID]
	if !ok {
		return models.Theme{}, fmt.Errorf("theme %d: %w", t.ID, theme.ErrNotFound)
	}
	if current.Version != expectedVersion {
		return models.Theme{}, fmt.Errorf("%w: have %d, want %d", theme.ErrStaleVersion, expectedVersion, current.Version)
	}
	current.DisplayName = t.DisplayName
	current.Description = t.Description
	current.Tokens = t.Tokens
	current.CSS = t.CSS
	current.Version++
	current.UpdatedAt = time.Now().UTC()
	f.themes[t.ID] = current
	return current, nil
}

func (f *fakeRepo) UpdateThemeCSS(ctx context.Context, id int64, css string) error {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.themes[id]
	if !ok {
		return fmt.Errorf("theme %d: %w", id, theme.ErrNotFound)
	}
	t.CSS = css
	t.UpdatedAt = time.Now().UTC()
	f.themes[id] = t
	return nil
}

func (f *fakeRepo) DeleteTheme(ctx context.Context, id int64) error {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.themes[id]; !ok {
		return fmt.Errorf("theme %d: %w", id, theme.ErrNotFound)
	}
	delete(f.themes, id)
	return nil
}

func (f *fakeRepo) ActivateTheme(ctx context.Context, id int64) error {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.themes[id]; !ok {
		return fmt.Errorf("theme %d: %w", id, theme.ErrNotFound)
	}
	for themeID, t := range f.themes {
		t.IsActive = themeID == id
		f.themes[themeID] = t
	}
	return nil
}

func (f *fakeRepo) GetActiveTheme(ctx context.Context) (models.Theme, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.themes {
		if t.IsActive {
			return t, nil
		}
	}
	return models.Theme{}, fmt.Errorf("active theme: %w", theme.ErrNotFound)
}

func (f *fakeRepo) GetPreset(ctx context.Context, id int64) (models.ThemePreset, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.presets[id]
	if !ok {
		return models.ThemePreset{}, fmt.Errorf("preset %d: %w", id, theme.ErrPresetNotFound)
	}
	return p, nil
}

func (f *fakeRepo) ListPresets(ctx context.Context) ([]models.ThemePreset, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	presets := make([]models.ThemePreset, 0, len(f.presets))
	for _, p := range f.presets {
		presets = append(presets, p)
	}
	return presets, nil
}

func (f *fakeRepo) ListFonts(ctx context.Context) ([]models.FontLibraryItem, error) {
	_ = ctx
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fonts, nil
}

func validTokens() models.DesignTokens {
	return models.DesignTokens{
		Color: models.ColorTokens{
			Brand:       models.BrandColors{Primary: "#2563eb", Secondary: "#7c3aed", Accent: "#f59e0b"},
			Background:  models.BackgroundColors{Primary: "#ffffff", Secondary: "#f9fafb", Elevated: "#ffffff"},
			Text:        models.TextColors{Primary: "#111827", Secondary: "#4b5563", Tertiary: "#9ca3af", Inverse: "#ffffff"},
			Border:      models.BorderColors{Default: "#e5e7eb", Strong: "#9ca3af"},
			Interactive: models.InteractiveColors{Default: "#2563eb", Hover: "#1d4ed8", Active: "#1e40af", Disabled: "#93c5fd"},
			Feedback:    models.FeedbackColors{Success: "#16a34a", Warning: "#d97706", Error: "#dc2626", Info: "#0284c7"},
		},
		Typography: models.TypographyTokens{
			FontFamily: models.FontFamily{Display: `"Inter", sans-serif`, Body: `"Inter", sans-serif`, Mono: `"JetBrains Mono", monospace`},
			FontSize: models.FontSizes{
				XS: "0.75rem", SM: "0.875rem", Base: "1rem", LG: "1.125rem", XL: "1.25rem",
				XXL: "1.5rem", X3L: "1.875rem", X4L: "2.25rem",
			},
			FontWeight:    models.FontWeights{Normal: "400", Medium: "500", Semibold: "600", Bold: "700"},
			LineHeight:    models.LineHeights{Tight: "1.25", Normal: "1.5", Relaxed: "1.625"},
			LetterSpacing: models.LetterSpacing{Tight: "-0.025em", Normal: "0em", Wide: "0.025em"},
		},
		Spacing: models.SpacingTokens{
			Preset: models.SpacingPresetNormal,
			Scale: models.SpacingScale{
				XS: "0.25rem", SM: "0.5rem", MD: "1rem", LG: "1.5rem", XL: "2rem", XXL: "3rem", X3L: "4rem",
			},
		},
		Border: models.BorderTokens{
			Width: models.BorderWidths{Thin: "1px", Medium: "2px", Thick: "4px"},
			Radius: models.BorderRadii{
				SM: "0.125rem", MD: "0.375rem", LG: "0.5rem", XL: "0.75rem",
				XXL: "1rem", X3L: "1.5rem", Full: "9999px",
			},
		},
		Shadow: models.ShadowTokens{
			SM: "0 1px 2px 0 rgba(0, 0, 0, 0.05)",
			MD: "0 4px 6px -1px rgba(0, 0, 0, 0.1)",
			LG: "0 10px 15px -3px rgba(0, 0, 0, 0.1)",
			XL: "0 20px 25px -5px rgba(0, 0, 0, 0.1)",
		},
	}
}

// setTestStore swaps the package store for the test and restores it after.
func setTestStore(t *testing.T, repo *fakeRepo) *theme.Store {
	t.Helper()
	previous := store
	s := theme.NewStore(repo)
	store = s
	t.Cleanup(func() { store = previous })
	return s
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	r := httptest.NewRequest(method, target, &body)
	r.Header.Set("Content-Type", "application/json")
	return r
}

func withID(r *http.Request, id int64) *http.Request {
	r.SetPathValue(themeIDParam, strconv.FormatInt(id, 10))
	return r
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(dst); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func TestHandleThemesList(t *testing.T) {
	repo := newFakeRepo()
	setTestStore(t, repo)
	repo.addTheme(models.Theme{Name: "boutique", DisplayName: "Boutique", Tokens: validTokens()})
	active := repo.addTheme(models.Theme{Name: "forest", DisplayName: "Forest", Tokens: validTokens(), IsActive: true})

	w := httptest.NewRecorder()
	HandleThemesList(w, httptest.NewRequest(http.MethodGet, "/api/v1/themes", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var response ThemeListResponse
	decodeBody(t, w, &response)
	if len(response.Themes) != 2 {
		t.Errorf("themes count = %d, want 2", len(response.Themes))
	}
	if response.ActiveTheme == nil || response.ActiveTheme.ID != active.ID {
		t.Errorf("activeTheme = %+v, want id %d", response.ActiveTheme, active.ID)
	}
}

func TestHandleThemeDetail(t *testing.T) {
	repo := newFakeRepo()
	setTestStore(t, repo)
	created := repo.addTheme(models.Theme{Name: "boutique", DisplayName: "Boutique", Tokens: validTokens()})

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleThemeDetail(w, withID(httptest.NewRequest(http.MethodGet, "/api/v1/themes/1", nil), created.ID))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var got models.Theme
		decodeBody(t, w, &got)
		if got.Name != "boutique" {
			t.Errorf("name = %q, want boutique", got.Name)
		}
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleThemeDetail(w, withID(httptest.NewRequest(http.MethodGet, "/api/v1/themes/999", nil), 999))
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})

	t.Run("bad id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/themes/abc", nil)
		r.SetPathValue(themeIDParam, "abc")
		w := httptest.NewRecorder()
		HandleThemeDetail(w, r)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}

func TestHandleThemeCreate(t *testing.T) {
	repo := newFakeRepo()
	setTestStore(t, repo)

	t.Run("created", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleThemeCreate(w, jsonRequest(t, http.MethodPost, "/api/v1/themes", theme.CreateThemeInput{
			Name: "boutique", DisplayName: "Boutique", Tokens: validTokens(),
		}))

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		var got models.Theme
		decodeBody(t, w, &got)
		if got.Version != 1 {
			t.Errorf("version = %d, want 1", got.Version)
		}
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleThemeCreate(w, jsonRequest(t, http.MethodPost, "/api/v1/themes", theme.CreateThemeInput{
			Name: "boutique", DisplayName: "Boutique", Tokens: validTokens(),
		}))
		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", w.Code)
		}
	})

	t.Run("invalid tokens return field list", func(t *testing.T) {
		tokens := validTokens()
		tokens.Color.Brand.Primary = "nope"
		tokens.Shadow.SM = ""

		w := httptest.NewRecorder()
		HandleThemeCreate(w, jsonRequest(t, http.MethodPost, "/api/v1/themes", theme.CreateThemeInput{
			Name: "broken", DisplayName: "Broken", Tokens: tokens,
		}))
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", w.Code)
		}
		var response struct {
			Error  string             `json:"error"`
			Fields []theme.FieldError `json:"fields"`
		}
		decodeBody(t, w, &response)
		if len(response.Fields) != 2 {
			t.Errorf("fields = %v, want both problems listed", response.Fields)
		}
	})

	t.Run("bad meta", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleThemeCreate(w, jsonRequest(t, http.MethodPost, "/api/v1/themes", theme.CreateThemeInput{
			Name: "Not A Slug", DisplayName: "X", Tokens: validTokens(),
		}))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("unknown json field", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/themes", strings.NewReader(`{"surprise": true}`))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		HandleThemeCreate(w, r)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})

	t.Run("dangling parent", func(t *testing.T) {
		missing := int64(404)
		w := httptest.NewRecorder()
		HandleThemeCreate(w, jsonRequest(t, http.MethodPost, "/api/v1/themes", theme.CreateThemeInput{
			Name: "orphan", DisplayName: "Orphan", Tokens: validTokens(), ParentThemeID: &missing,
		}))
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", w.Code)
		}
	})
}

func TestHandleThemeUpdate(t *testing.T) {
	repo := newFakeRepo()
	setTestStore(t, repo)
	created := repo.addTheme(models.Theme{Name: "boutique", DisplayName: "Boutique", Tokens: validTokens()})
	system := repo.addTheme(models.Theme{Name: "storefront-light", DisplayName: "Storefront Light", Tokens: validTokens(), IsSystemTheme: true})

	t.Run("updated", func(t *testing.T) {
		name := "Boutique v2"
		w := httptest.NewRecorder()
		HandleThemeUpdate(w, withID(jsonRequest(t, http.MethodPut, "/api/v1/themes/1", theme.UpdateThemeInput{
			DisplayName: &name, Version: &created.Version,
		}), created.ID))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		var got models.Theme
		decodeBody(t, w, &got)
		if got.Version != created.Version+1 {
			t.Errorf("version = %d, want %d", got.Version, created.Version+1)
		}
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		name := "Too late"
		stale := created.Version
		w := httptest.NewRecorder()
		HandleThemeUpdate(w, withID(jsonRequest(t, http.MethodPut, "/api/v1/themes/1", theme.UpdateThemeInput{
			DisplayName: &name, Version: &stale,
		}), created.ID))
		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", w.Code)
		}
	})

	t.Run("system theme forbidden", func(t *testing.T) {
		name := "Renamed"
		w := httptest.NewRecorder()
		HandleThemeUpdate(w, withID(jsonRequest(t, http.MethodPut, "/api/v1/themes/2", theme.UpdateThemeInput{
			DisplayName: &name,
		}), system.ID))
		if w.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", w.Code)
		}
	})
}

func TestHandleThemeDelete(t *testing.T) {
	repo := newFakeRepo()
	setTestStore(t, repo)
	doomed := repo.addTheme(models.Theme{Name: "doomed", DisplayName: "Doomed", Tokens: validTokens()})
	active := repo.addTheme(models.Theme{Name: "active", DisplayName: "Active", Tokens: validTokens(), IsActive: true})
	parent := repo.addTheme(models.Theme{Name: "parent", DisplayName: "Parent", Tokens: validTokens()})
	repo.addTheme(models.Theme{Name: "child", DisplayName: "Child", ParentThemeID: &parent.ID})

	tests := []struct {
		name       string
		id         int64
		wantStatus int
	}{
		{"deletes", doomed.ID, http.StatusNoContent},
		{"active conflicts", active.ID, http.StatusConflict},
		{"parent conflicts", parent.ID, http.StatusConflict},
		{"unknown not found", 999, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleThemeDelete(w, withID(httptest.NewRequest(http.MethodDelete, "/api/v1/themes/1", nil), tt.id))
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandleThemeActivate(t *testing.T) {
	repo := newFakeRepo()
	s := setTestStore(t, repo)
	first := repo.addTheme(models.Theme{Name: "first", DisplayName: "First", Tokens: validTokens(), IsActive: true})
	second := repo.addTheme(models.Theme{Name: "second", DisplayName: "Second", Tokens: validTokens()})

	w := httptest.NewRecorder()
	HandleThemeActivate(w, withID(httptest.NewRequest(http.MethodPost, "/api/v1/themes/2/activate", nil), second.ID))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}

	activeNow, err := s.Active(context.Background())
	if err != nil {
		t.Fatalf("Active failed: %v", err)
	}
	if activeNow.ID != second.ID {
		t.Errorf("active = %d, want %d", activeNow.ID, second.ID)
	}
	if previous, _ := s.Get(context.Background(), first.ID); previous.IsActive {
		t.Error("previous active theme should be deactivated")
	}
}

func TestHandleThemeClone(t *testing.T) {
	repo := newFakeRepo()
	setTestStore(t, repo)
	source := repo.addTheme(models.Theme{Name: "boutique", DisplayName: "Boutique", Tokens: validTokens()})

	w := httptest.NewRecorder()
	HandleThemeClone(w, withID(jsonRequest(t, http.MethodPost, "/api/v1/themes/1/clone", theme.CloneThemeInput{
		Name: "boutique-copy",
	}), source.ID))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var got models.Theme
	decodeBody(t, w, &got)
	if got.DisplayName != "Copy of Boutique" {
		t.Errorf("displayName = %q, want default copy name", got.DisplayName)
	}
}

func TestHandleActiveTheme(t *testing.T) {
	repo := newFakeRepo()
	setTestStore(t, repo)

	t.Run("no active theme", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleActiveTheme(w, httptest.NewRequest(http.MethodGet, "/api/v1/themes/active", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})

	active := repo.addTheme(models.Theme{Name: "forest", DisplayName: "Forest", Tokens: validTokens(), IsActive: true})

	t.Run("active theme", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleActiveTheme(w, httptest.NewRequest(http.MethodGet, "/api/v1/themes/active", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var response ActiveThemeResponse
		decodeBody(t, w, &response)
		if response.Theme.ID != active.ID {
			t.Errorf("theme id = %d, want %d", response.Theme.ID, active.ID)
		}
	})
}

func TestHandleActiveThemeCSS(t *testing.T) {
	repo := newFakeRepo()
	setTestStore(t, repo)
	repo.addTheme(models.Theme{Name: "forest", DisplayName: "Forest", Tokens: validTokens(), IsActive: true})

	w := httptest.NewRecorder()
	HandleActiveThemeCSS(w, httptest.NewRequest(http.MethodGet, "/api/v1/themes/active/css", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Content-Type = %q, want text/css", ct)
	}
	if !strings.Contains(w.Body.String(), "--color-brand-primary: #2563eb;") {
		t.Error("response should carry the compiled stylesheet")
	}
}

func TestHandleActiveThemeCSSETag(t *testing.T) {
	repo := newFakeRepo()
	setTestStore(t, repo)
	repo.addTheme(models.Theme{Name: "forest", DisplayName: "Forest", Tokens: validTokens(), IsActive: true})

	w := httptest.NewRecorder()
	HandleActiveThemeCSS(w, httptest.NewRequest(http.MethodGet, "/api/v1/themes/active/css", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	etag := w.Header().Get("ETag")
	if etag == "" || !strings.HasPrefix(etag, `"`) {
		t.Fatalf("ETag = %q, want a quoted validator", etag)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/themes/active/css", nil)
	r.Header.Set("If-None-Match", etag)
	w = httptest.NewRecorder()
	HandleActiveThemeCSS(w, r)
	if w.Code != http.StatusNotModified {
		t.Fatalf("status = %d, want 304", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Error("304 response must have no body")
	}
	if got := w.Header().Get("ETag"); got != etag {
		t.Errorf("304 ETag = %q, want %q", got, etag)
	}
}

func TestHandlePresets(t *testing.T) {
	repo := newFakeRepo()
	setTestStore(t, repo)
	repo.presets[1] = models.ThemePreset{ID: 1, Name: "forest", DisplayName: "Forest", Tokens: validTokens()}

	t.Run("list", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandlePresetsList(w, httptest.NewRequest(http.MethodGet, "/api/v1/presets", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var response struct {
			Presets []models.ThemePreset `json:"presets"`
		}
		decodeBody(t, w, &response)
		if len(response.Presets) != 1 {
			t.Errorf("presets count = %d, want 1", len(response.Presets))
		}
	})

	t.Run("instantiate", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := jsonRequest(t, http.MethodPost, "/api/v1/presets/1/instantiate", theme.InstantiatePresetInput{Name: "my-forest"})
		r.SetPathValue(presetIDParam, "1")
		HandlePresetInstantiate(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		var got models.Theme
		decodeBody(t, w, &got)
		if got.Name != "my-forest" {
			t.Errorf("name = %q, want my-forest", got.Name)
		}
		if got.DisplayName != "Forest" {
			t.Errorf("displayName = %q, want the preset's", got.DisplayName)
		}
	})

	t.Run("instantiate unknown preset", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := jsonRequest(t, http.MethodPost, "/api/v1/presets/9/instantiate", theme.InstantiatePresetInput{Name: "ghost"})
		r.SetPathValue(presetIDParam, "9")
		HandlePresetInstantiate(w, r)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})
}

func TestHandleFontsList(t *testing.T) {
	repo := newFakeRepo()
	setTestStore(t, repo)
	repo.fonts = []models.FontLibraryItem{
		{ID: 1, Family: "Inter", Source: "google", Category: "sans-serif", Weights: []string{"400", "700"}},
	}

	w := httptest.NewRecorder()
	HandleFontsList(w, httptest.NewRequest(http.MethodGet, "/api/v1/fonts", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var response struct {
		Fonts []models.FontLibraryItem `json:"fonts"`
	}
	decodeBody(t, w, &response)
	if len(response.Fonts) != 1 || response.Fonts[0].Family != "Inter" {
		t.Errorf("fonts = %+v, want Inter", response.Fonts)
	}
}
