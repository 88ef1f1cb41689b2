package service

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"sync"
	"time"

	"qrstudio/internal/entities"
	"qrstudio/internal/render"
	"qrstudio/internal/repository"
	"qrstudio/internal/shortener"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Module scales. Preview uses a fixed scale; raster export derives it from
// the selected pixel size.
const (
	PreviewScale         = 8
	ExportScaleDivisor   = 25
	RasterExportFileName = "qrcode.png"
	VectorExportFileName = "qrcode.svg"
)

// Mode is the editor state: a fresh, unsaved code or an existing record.
type Mode string

const (
	ModeNew     Mode = "new"
	ModeEditing Mode = "editing"
)

// RenderStatus tells callers whether a render or export produced output.
// Nothing to encode is not an error.
type RenderStatus string

const (
	RenderOK      RenderStatus = "rendered"
	RenderSkipped RenderStatus = "skipped"
)

// DeleteStatus is the outcome of a delete request.
type DeleteStatus string

const (
	DeleteRemoved   DeleteStatus = "removed"
	DeleteCancelled DeleteStatus = "cancelled"
)

// CascadePolicy controls which map entries are removed with a record.
type CascadePolicy string

const (
	CascadeNone     CascadePolicy = "none"
	CascadeRedirect CascadePolicy = "redirect"
	CascadeAll      CascadePolicy = "all"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// DeletePrompt is the question put to the Confirmer.
const DeletePrompt = "Are you sure you want to delete this QR code?"

// EditorState is a snapshot of the editor.
type EditorState struct {
	entities.QRSettings
	CurrentID string `json:"currentId"`
	Mode      Mode   `json:"mode"`
}

// RasterExport is a rendered PNG download.
type RasterExport struct {
	PNG      []byte
	FileName string
}

// VectorExport is an SVG download.
type VectorExport struct {
	SVG      []byte
	FileName string
}

// EditorService is the single owner of the editor session and the saved
// collection. Every method is safe for concurrent use; calls are serialized.
type EditorService interface {
	State() EditorState
	Update(settings entities.QRSettings) (EditorState, RenderStatus, error)
	Records() []entities.QRRecord

	Save(ctx context.Context) (*entities.QRRecord, error)
	Load(id string) (EditorState, error)
	CreateNew() EditorState
	Delete(ctx context.Context, id string, confirmer Confirmer) (DeleteStatus, error)
	Duplicate(ctx context.Context, id string) (*entities.QRRecord, error)
	UpdateRedirectDestination(ctx context.Context) (*entities.QRRecord, error)

	RedirectDestination(ctx context.Context, id string) (string, error)
	ShortURLMapping(ctx context.Context, id string) (*entities.ShortURLMapping, error)
	CreateShortURL(ctx context.Context, id, destination string) (*entities.ShortURLMapping, error)
	UpdateShortURLDestination(ctx context.Context, id, destination string) (string, bool)

	Preview() (*render.VectorImage, RenderStatus)
	ExportRaster(ctx context.Context) (*RasterExport, RenderStatus, error)
	ExportVector() (*VectorExport, RenderStatus)
}

// EditorDeps are the collaborators of the editor service.
type EditorDeps struct {
	Records         repository.RecordRepository
	Redirects       repository.RedirectRepository
	ShortURLs       repository.ShortURLRepository
	Encoder         render.Encoder
	Shortener       shortener.Shortener
	Logger          *zap.Logger
	RedirectBaseURL string
	Cascade         CascadePolicy
}

type editorService struct {
	mu sync.Mutex

	records      repository.RecordRepository
	redirects    repository.RedirectRepository
	shortURLs    repository.ShortURLRepository
	encoder      render.Encoder
	shortener    shortener.Shortener
	logger       *zap.Logger
	redirectBase string
	cascade      CascadePolicy

	now   func() time.Time
	newID func() string

	settings   entities.QRSettings
	currentID  string
	collection []entities.QRRecord
	preview    *render.VectorImage
}

// NewEditorService creates the editor and loads the saved collection.
func NewEditorService(ctx context.Context, deps EditorDeps) (EditorService, error) {
	return newEditorService(ctx, deps)
}

func newEditorService(ctx context.Context, deps EditorDeps) (*editorService, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cascade := deps.Cascade
	if cascade == "" {
		cascade = CascadeNone
	}

	collection, err := deps.Records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved QR codes: %w", err)
	}

	return &editorService{
		records:      deps.Records,
		redirects:    deps.Redirects,
		shortURLs:    deps.ShortURLs,
		encoder:      deps.Encoder,
		shortener:    deps.Shortener,
		logger:       logger,
		redirectBase: deps.RedirectBaseURL,
		cascade:      cascade,
		now:          time.Now,
		newID:        uuid.NewString,
		settings:     entities.DefaultSettings(),
		collection:   collection,
	}, nil
}

func (e *editorService) indexOf(id string) int {
	for i, r := range e.collection {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (e *editorService) mode() Mode {
	if e.currentID != "" && e.indexOf(e.currentID) >= 0 {
		return ModeEditing
	}
	return ModeNew
}

func (e *editorService) stateLocked() EditorState {
	return EditorState{
		QRSettings: e.settings,
		CurrentID:  e.currentID,
		Mode:       e.mode(),
	}
}

// State returns the editor fields, the current id and the mode.
func (e *editorService) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// Records returns a copy of the saved collection, newest first.
func (e *editorService) Records() []entities.QRRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]entities.QRRecord, len(e.collection))
	copy(out, e.collection)
	return out
}

func validateSettings(s entities.QRSettings) error {
	if !s.ErrorCorrectionLevel.Valid() {
		return fmt.Errorf("%w: error correction level must be one of L, M, Q, H", ErrInvalidSettings)
	}
	if s.Size <= 0 {
		return fmt.Errorf("%w: size must be positive", ErrInvalidSettings)
	}
	if _, err := render.ParseHexColor(s.ForegroundColor); err != nil {
		return fmt.Errorf("%w: foreground %v", ErrInvalidSettings, err)
	}
	if _, err := render.ParseHexColor(s.BackgroundColor); err != nil {
		return fmt.Errorf("%w: background %v", ErrInvalidSettings, err)
	}
	return nil
}

// Update replaces the editor fields and re-renders the preview.
func (e *editorService) Update(settings entities.QRSettings) (EditorState, RenderStatus, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := validateSettings(settings); err != nil {
		return e.stateLocked(), RenderSkipped, err
	}
	e.settings = settings

	status, err := e.renderPreviewLocked()
	return e.stateLocked(), status, err
}

// symbol encodes payload at scale and applies the editor's colors.
func (e *editorService) symbol(payload string, scale float64) (*render.VectorImage, error) {
	img, err := e.encoder.Encode(payload, e.settings.ErrorCorrectionLevel, scale)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	if e.settings.BackgroundTransparent {
		img.Background.Fill = render.FillNone
	} else {
		img.Background.Fill = e.settings.BackgroundColor
	}
	img.Foreground.Fill = e.settings.ForegroundColor
	return img, nil
}

// payloadLocked resolves the payload for the current state, adopting a
// fresh id when redirect mode needs one. It never writes the redirect map.
func (e *editorService) payloadLocked() string {
	if usesRedirect(e.settings) && e.currentID == "" {
		e.currentID = e.newID()
	}
	return Payload(e.settings, e.currentID, e.redirectBase)
}

// renderPreviewLocked leaves the previous preview in place when there is
// nothing to encode.
func (e *editorService) renderPreviewLocked() (RenderStatus, error) {
	payload := e.payloadLocked()
	if payload == "" {
		return RenderSkipped, nil
	}

	img, err := e.symbol(payload, PreviewScale)
	if err != nil {
		return RenderSkipped, err
	}
	img.Width = "100%"
	img.Height = "100%"
	e.preview = img
	return RenderOK, nil
}

// Preview returns the displayed preview, if any.
func (e *editorService) Preview() (*render.VectorImage, RenderStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.preview == nil {
		return nil, RenderSkipped
	}
	return e.preview, RenderOK
}

// Save inserts or overwrites the current record and commits its redirect
// entry when in redirect mode.
func (e *editorService) Save(ctx context.Context) (*entities.QRRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.settings
	if strings.TrimSpace(s.ActualDestination) == "" && strings.TrimSpace(s.Text) == "" {
		return nil, ErrEmptyPayload
	}

	id := e.currentID
	if id == "" {
		id = e.newID()
	}

	now := e.now().UTC()
	rec := entities.QRRecord{
		ID:         id,
		QRSettings: s,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	rec.Text = Payload(s, id, e.redirectBase)
	rec.Name = strings.TrimSpace(s.Name)
	if rec.Name == "" {
		rec.Name = fmt.Sprintf("QR %d", len(e.collection)+1)
	}

	var next []entities.QRRecord
	if idx := e.indexOf(id); idx >= 0 {
		rec.CreatedAt = e.collection[idx].CreatedAt
		next = make([]entities.QRRecord, len(e.collection))
		copy(next, e.collection)
		next[idx] = rec
	} else {
		next = make([]entities.QRRecord, 0, len(e.collection)+1)
		next = append(next, rec)
		next = append(next, e.collection...)
	}

	if usesRedirect(s) {
		previous, err := e.redirects.GetDestination(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get redirect destination: %w", err)
		}
		if err := e.redirects.SetDestination(ctx, id, s.ActualDestination); err != nil {
			return nil, fmt.Errorf("failed to save redirect destination: %w", err)
		}
		if err := e.records.SaveAll(ctx, next); err != nil {
			e.restoreRedirectLocked(ctx, id, previous)
			return nil, fmt.Errorf("failed to save QR codes: %w", err)
		}
	} else if err := e.records.SaveAll(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save QR codes: %w", err)
	}

	e.collection = next
	e.currentID = id
	e.logger.Info("saved QR code",
		zap.String("id", id),
		zap.Bool("redirect", usesRedirect(s)),
	)

	if _, err := e.renderPreviewLocked(); err != nil {
		e.logger.Warn("failed to render preview after save", zap.String("id", id), zap.Error(err))
	}

	return &rec, nil
}

// restoreRedirectLocked puts back the redirect entry a failed save replaced.
func (e *editorService) restoreRedirectLocked(ctx context.Context, id, previous string) {
	var err error
	if previous == "" {
		err = e.redirects.Delete(ctx, id)
	} else {
		err = e.redirects.SetDestination(ctx, id, previous)
	}
	if err != nil {
		e.logger.Error("failed to restore redirect destination", zap.String("id", id), zap.Error(err))
	}
}

// Load makes the record with id the current one.
func (e *editorService) Load(id string) (EditorState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(id)
	if idx < 0 {
		return e.stateLocked(), ErrRecordNotFound
	}

	e.settings = e.collection[idx].QRSettings
	e.currentID = id

	if _, err := e.renderPreviewLocked(); err != nil {
		e.logger.Warn("failed to render loaded QR code", zap.String("id", id), zap.Error(err))
	}
	return e.stateLocked(), nil
}

func (e *editorService) resetLocked() {
	e.settings = entities.DefaultSettings()
	e.currentID = ""
	e.preview = nil
}

// CreateNew resets the editor to a blank code.
func (e *editorService) CreateNew() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetLocked()
	return e.stateLocked()
}

// Delete removes the record once confirmer approves. Map entries are
// removed according to the cascade policy.
func (e *editorService) Delete(ctx context.Context, id string, confirmer Confirmer) (DeleteStatus, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(id)
	if idx < 0 {
		return "", ErrRecordNotFound
	}
	if confirmer == nil || !confirmer.Confirm(ctx, DeletePrompt) {
		return DeleteCancelled, nil
	}

	next := make([]entities.QRRecord, 0, len(e.collection)-1)
	next = append(next, e.collection[:idx]...)
	next = append(next, e.collection[idx+1:]...)

	if err := e.records.SaveAll(ctx, next); err != nil {
		return "", fmt.Errorf("failed to save QR codes: %w", err)
	}
	e.collection = next
	if e.currentID == id {
		e.resetLocked()
	}
	e.logger.Info("deleted QR code", zap.String("id", id), zap.String("cascade", string(e.cascade)))

	// The record is gone at this point; leftover map entries are only logged.
	if e.cascade == CascadeRedirect || e.cascade == CascadeAll {
		if err := e.redirects.Delete(ctx, id); err != nil {
			e.logger.Error("failed to delete redirect destination", zap.String("id", id), zap.Error(err))
		}
	}
	if e.cascade == CascadeAll {
		if err := e.shortURLs.Delete(ctx, id); err != nil {
			e.logger.Error("failed to delete short URL mapping", zap.String("id", id), zap.Error(err))
		}
	}

	return DeleteRemoved, nil
}

// Duplicate inserts a copy of the record under a new id at the front.
func (e *editorService) Duplicate(ctx context.Context, id string) (*entities.QRRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(id)
	if idx < 0 {
		return nil, ErrRecordNotFound
	}

	now := e.now().UTC()
	dup := e.collection[idx]
	dup.ID = e.newID()
	dup.Name = dup.Name + " (Copy)"
	dup.CreatedAt = now
	dup.UpdatedAt = now

	next := make([]entities.QRRecord, 0, len(e.collection)+1)
	next = append(next, dup)
	next = append(next, e.collection...)

	if err := e.records.SaveAll(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save QR codes: %w", err)
	}
	e.collection = next
	e.logger.Info("duplicated QR code", zap.String("id", id), zap.String("copy_id", dup.ID))

	return &dup, nil
}

// UpdateRedirectDestination points the current redirect record at the
// editor's destination. The encoded text is left alone.
func (e *editorService) UpdateRedirectDestination(ctx context.Context) (*entities.QRRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(e.currentID)
	if e.currentID == "" || idx < 0 || !e.settings.UseRedirectSystem {
		return nil, ErrNotEditing
	}
	dest := e.settings.ActualDestination
	if strings.TrimSpace(dest) == "" {
		return nil, ErrEmptyPayload
	}

	if err := e.redirects.SetDestination(ctx, e.currentID, dest); err != nil {
		return nil, fmt.Errorf("failed to save redirect destination: %w", err)
	}

	next := make([]entities.QRRecord, len(e.collection))
	copy(next, e.collection)
	next[idx].ActualDestination = dest
	next[idx].UpdatedAt = e.now().UTC()

	if err := e.records.SaveAll(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save QR codes: %w", err)
	}
	e.collection = next
	e.logger.Info("updated redirect destination", zap.String("id", e.currentID))

	rec := next[idx]
	return &rec, nil
}

// RedirectDestination returns "" when id has no redirect entry.
func (e *editorService) RedirectDestination(ctx context.Context, id string) (string, error) {
	dest, err := e.redirects.GetDestination(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to get redirect destination: %w", err)
	}
	return dest, nil
}

// ShortURLMapping returns nil when id has no short URL.
func (e *editorService) ShortURLMapping(ctx context.Context, id string) (*entities.ShortURLMapping, error) {
	m, err := e.shortURLs.GetMapping(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get short URL mapping: %w", err)
	}
	return m, nil
}

// shortenLocked creates a short URL for destination, records the mapping and
// points the record at it. Nothing is written if the shortener fails.
// Redirect records are refused since their text must stay the redirect URL.
func (e *editorService) shortenLocked(ctx context.Context, id, destination string) (*entities.ShortURLMapping, error) {
	idx := e.indexOf(id)
	if idx < 0 {
		return nil, ErrRecordNotFound
	}
	if usesRedirect(e.collection[idx].QRSettings) {
		return nil, ErrRedirectRecord
	}
	if strings.TrimSpace(destination) == "" {
		return nil, ErrEmptyPayload
	}
	normalized := NormalizeURL(destination)

	short, err := e.shortener.Shorten(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShortenerFailed, err)
	}

	m, err := e.shortURLs.SetMapping(ctx, id, short, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to save short URL mapping: %w", err)
	}

	next := make([]entities.QRRecord, len(e.collection))
	copy(next, e.collection)
	next[idx].Text = short
	next[idx].ActualDestination = destination
	next[idx].UpdatedAt = e.now().UTC()

	if err := e.records.SaveAll(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save QR codes: %w", err)
	}
	e.collection = next

	return m, nil
}

// CreateShortURL shortens destination for a saved record.
func (e *editorService) CreateShortURL(ctx context.Context, id, destination string) (*entities.ShortURLMapping, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.shortenLocked(ctx, id, destination)
	if err != nil {
		e.logger.Error("failed to create short URL", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	e.logger.Info("created short URL", zap.String("id", id), zap.String("short_url", m.ShortURL))
	return m, nil
}

// UpdateShortURLDestination replaces the short URL of a record that already
// has one. The second result is false when there was no mapping or any step
// failed; failures are logged, not returned.
func (e *editorService) UpdateShortURLDestination(ctx context.Context, id, destination string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if strings.TrimSpace(destination) == "" {
		return "", false
	}

	existing, err := e.shortURLs.GetMapping(ctx, id)
	if err != nil {
		e.logger.Error("failed to get short URL mapping", zap.String("id", id), zap.Error(err))
		return "", false
	}
	if existing == nil || existing.ShortURL == "" {
		return "", false
	}

	m, err := e.shortenLocked(ctx, id, destination)
	if err != nil {
		e.logger.Error("failed to update short URL", zap.String("id", id), zap.Error(err))
		return "", false
	}
	e.logger.Info("updated short URL",
		zap.String("id", id),
		zap.String("previous", existing.ShortURL),
		zap.String("short_url", m.ShortURL),
	)
	return m.ShortURL, true
}

// ExportRaster renders the current code at export scale onto a PNG of the
// selected pixel size.
func (e *editorService) ExportRaster(ctx context.Context) (*RasterExport, RenderStatus, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	payload := e.payloadLocked()
	if payload == "" {
		return nil, RenderSkipped, nil
	}

	size := e.settings.Size
	img, err := e.symbol(payload, float64(size)/ExportScaleDivisor)
	if err != nil {
		return nil, RenderSkipped, err
	}

	fg, err := render.ParseHexColor(e.settings.ForegroundColor)
	if err != nil {
		return nil, RenderSkipped, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	var bg color.Color
	if !e.settings.BackgroundTransparent {
		c, err := render.ParseHexColor(e.settings.BackgroundColor)
		if err != nil {
			return nil, RenderSkipped, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
		bg = c
	}

	if err := ctx.Err(); err != nil {
		return nil, RenderSkipped, err
	}

	canvas, err := render.Rasterize(img, size, fg, bg)
	if err != nil {
		return nil, RenderSkipped, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	data, err := render.EncodePNG(canvas)
	if err != nil {
		return nil, RenderSkipped, err
	}

	return &RasterExport{
		PNG:      data,
		FileName: RasterExportFileName,
	}, RenderOK, nil
}

// ExportVector serializes the displayed preview as-is.
func (e *editorService) ExportVector() (*VectorExport, RenderStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.preview == nil {
		return nil, RenderSkipped
	}
	return &VectorExport{
		SVG:      e.preview.MarshalSVG(),
		FileName: VectorExportFileName,
	}, RenderOK
}
