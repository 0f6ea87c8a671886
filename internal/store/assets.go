package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/myit/inventory/internal/model"
)

// now is the clock used for server-assigned timestamps.
var now = time.Now

const assetColumns = `id, name, serial_number, COALESCE(category, ''), COALESCE(location, ''),
	COALESCE("user", ''), COALESCE(user_email, ''), COALESCE(status, ''), COALESCE(created_at, ''),
	COALESCE(loan_date, ''), COALESCE(warranty_date, ''), COALESCE(purchase_date, ''),
	image IS NOT NULL`

type scanner interface {
	Scan(dest ...any) error
}

func scanAsset(s scanner, a *model.Asset) error {
	return s.Scan(&a.ID, &a.Name, &a.SerialNumber, &a.Category, &a.Location,
		&a.User, &a.UserEmail, &a.Status, &a.CreatedAt,
		&a.LoanDate, &a.WarrantyDate, &a.PurchaseDate, &a.HasImage)
}

// CreateAsset inserts a new asset. The ID, creation timestamp and status are
// assigned here; the corresponding fields of a are ignored.
func CreateAsset(ctx context.Context, db *sql.DB, a model.Asset) (*model.Asset, error) {
	a.ID = uuid.NewString()
	a.CreatedAt = now().Format(model.TimestampLayout)
	a.Status = model.AssetStatusInUse

	_, err := db.ExecContext(ctx,
		`INSERT INTO assets (id, name, serial_number, category, location, "user", user_email,
		                     status, created_at, loan_date, warranty_date, purchase_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.SerialNumber, a.Category, a.Location, a.User, a.UserEmail,
		a.Status, a.CreatedAt, a.LoanDate, a.WarrantyDate, a.PurchaseDate,
	)
	if err != nil {
		return nil, fmt.Errorf("creating asset: %w", err)
	}

	return &a, nil
}

// GetAsset returns an asset by ID, or nil if there is none.
func GetAsset(ctx context.Context, db *sql.DB, id string) (*model.Asset, error) {
	a := &model.Asset{}
	err := scanAsset(db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = ?`, id,
	), a)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting asset: %w", err)
	}
	return a, nil
}

// ListAssets returns every asset, most recently created first.
func ListAssets(ctx context.Context, db *sql.DB) ([]model.Asset, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	defer rows.Close()

	var assets []model.Asset
	for rows.Next() {
		var a model.Asset
		if err := scanAsset(rows, &a); err != nil {
			return nil, fmt.Errorf("scanning asset: %w", err)
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// UpdateAsset replaces every mutable field of an asset. The ID and creation
// timestamp are kept. Returns ErrNotFound if no asset has the given ID.
func UpdateAsset(ctx context.Context, db *sql.DB, id string, a model.Asset) error {
	result, err := db.ExecContext(ctx,
		`UPDATE assets
		 SET name = ?, serial_number = ?, category = ?, location = ?, "user" = ?, user_email = ?,
		     status = ?, loan_date = ?, warranty_date = ?, purchase_date = ?
		 WHERE id = ?`,
		a.Name, a.SerialNumber, a.Category, a.Location, a.User, a.UserEmail,
		a.Status, a.LoanDate, a.WarrantyDate, a.PurchaseDate, id,
	)
	if err != nil {
		return fmt.Errorf("updating asset: %w", err)
	}
	return requireAffected(result, "updating asset")
}

// DeleteAsset removes an asset. Deleting a missing asset is not an error.
func DeleteAsset(ctx context.Context, db *sql.DB, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting asset: %w", err)
	}
	return nil
}

// SetAssetImage stores the photo of an asset. Returns ErrNotFound if no asset
// has the given ID.
func SetAssetImage(ctx context.Context, db *sql.DB, id string, image []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE assets SET image = ?, image_mime = ? WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting asset image: %w", err)
	}
	return requireAffected(result, "setting asset image")
}

// GetAssetImage returns an asset's photo and its MIME type. Data is nil if
// the asset does not exist or has no photo.
func GetAssetImage(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM assets WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting asset image: %w", err)
	}
	return image, mime.String, nil
}
