package api

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/myit/inventory/internal/imaging"
	"github.com/myit/inventory/internal/model"
	"github.com/myit/inventory/internal/store"
)

// maxImageBytes caps photo uploads.
const maxImageBytes = 5 << 20

// AssetsHandler handles asset CRUD endpoints.
type AssetsHandler struct {
	DB           *sql.DB
	Images       *imaging.Processor
	MaxBodyBytes int64
}

// assetRequest is the body of create and update calls. Absent optional
// fields are stored as empty strings.
type assetRequest struct {
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number"`
	Category     string `json:"category"`
	Location     string `json:"location"`
	User         string `json:"user"`
	UserEmail    string `json:"user_email"`
	Status       string `json:"status"`
	LoanDate     string `json:"loan_date"`
	WarrantyDate string `json:"warranty_date"`
	PurchaseDate string `json:"purchase_date"`
}

func (req *assetRequest) asset() model.Asset {
	return model.Asset{
		Name:         strings.TrimSpace(req.Name),
		SerialNumber: strings.TrimSpace(req.SerialNumber),
		Category:     strings.TrimSpace(req.Category),
		Location:     strings.TrimSpace(req.Location),
		User:         req.User,
		UserEmail:    req.UserEmail,
		Status:       strings.TrimSpace(req.Status),
		LoanDate:     req.LoanDate,
		WarrantyDate: req.WarrantyDate,
		PurchaseDate: req.PurchaseDate,
	}
}

// missingField names the first required field that is empty, if any.
func missingField(a model.Asset, withStatus bool) string {
	switch {
	case a.Name == "":
		return "name"
	case a.SerialNumber == "":
		return "serial_number"
	case a.Category == "":
		return "category"
	case a.Location == "":
		return "location"
	case withStatus && a.Status == "":
		return "status"
	}
	return ""
}

// List handles GET /api/assets.
func (h *AssetsHandler) List(w http.ResponseWriter, r *http.Request) {
	assets, err := store.ListAssets(r.Context(), h.DB)
	if err != nil {
		internalError(w, r, "failed to list assets", err)
		return
	}
	if assets == nil {
		assets = []model.Asset{}
	}
	jsonResponse(w, http.StatusOK, assets)
}

// Get handles GET /api/assets/{id}.
func (h *AssetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	asset, err := store.GetAsset(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		internalError(w, r, "failed to get asset", err)
		return
	}
	if asset == nil {
		jsonError(w, http.StatusNotFound, "asset not found")
		return
	}
	jsonResponse(w, http.StatusOK, asset)
}

// Create handles POST /api/assets. Any status in the body is ignored; new
// assets always start "In Use".
func (h *AssetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := decodeJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a := req.asset()
	if field := missingField(a, false); field != "" {
		jsonError(w, http.StatusBadRequest, field+" required")
		return
	}

	asset, err := store.CreateAsset(r.Context(), h.DB, a)
	if err != nil {
		internalError(w, r, "failed to create asset", err)
		return
	}

	s, _ := GetSession(r.Context())
	slog.Info("asset created", "user", s.Username, "asset_id", asset.ID, "serial_number", asset.SerialNumber)
	jsonResponse(w, http.StatusCreated, map[string]string{"id": asset.ID, "message": "asset created"})
}

// Update handles PUT /api/assets/{id}. Every mutable field is replaced, so
// callers resend the fields they do not change.
func (h *AssetsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req assetRequest
	if err := decodeJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a := req.asset()
	if field := missingField(a, true); field != "" {
		jsonError(w, http.StatusBadRequest, field+" required")
		return
	}

	err := store.UpdateAsset(r.Context(), h.DB, id, a)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "asset not found")
		return
	}
	if err != nil {
		internalError(w, r, "failed to update asset", err)
		return
	}

	s, _ := GetSession(r.Context())
	slog.Info("asset updated", "user", s.Username, "asset_id", id, "status", a.Status)
	jsonResponse(w, http.StatusOK, map[string]string{"status": "success"})
}

// Delete handles DELETE /api/assets/{id}. Deleting a missing asset succeeds.
func (h *AssetsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := store.DeleteAsset(r.Context(), h.DB, id); err != nil {
		internalError(w, r, "failed to delete asset", err)
		return
	}

	s, _ := GetSession(r.Context())
	slog.Info("asset deleted", "user", s.Username, "asset_id", id)
	jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UploadImage handles PUT /api/assets/{id}/image.
func (h *AssetsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "failed to read image")
		return
	}

	processed, err := h.Images.Process(data)
	if err != nil {
		slog.Warn("rejected asset image", "asset_id", id, "error", err)
		jsonError(w, http.StatusBadRequest, "image must be a valid JPEG or PNG")
		return
	}

	err = store.SetAssetImage(r.Context(), h.DB, id, processed, imaging.OutputMIME)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "asset not found")
		return
	}
	if err != nil {
		internalError(w, r, "failed to save asset image", err)
		return
	}

	s, _ := GetSession(r.Context())
	slog.Info("asset image uploaded", "user", s.Username, "asset_id", id, "bytes", len(processed))
	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/assets/{id}/image.
func (h *AssetsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetAssetImage(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		internalError(w, r, "failed to get asset image", err)
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}
