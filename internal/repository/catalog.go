package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"provideo-rentals/internal/model"
)

const catalogRowID = "default"

type CatalogRepository interface {
	Get(tx *gorm.DB) (*model.CatalogDocument, int64, error)
	Version(tx *gorm.DB) (int64, error)
	Replace(tx *gorm.DB, doc *model.CatalogDocument) (int64, error)
}

type catalogRepoImpl struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepoImpl{db: db}
}

func (r *catalogRepoImpl) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Get parses the JSON blob columns into the typed document. This is the only
// place the blobs are deserialized.
func (r *catalogRepoImpl) Get(tx *gorm.DB) (*model.CatalogDocument, int64, error) {
	var row model.RentalConfig
	err := r.conn(tx).Where("id = ?", catalogRowID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.CatalogDocument{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("load rental config: %w", err)
	}

	doc := &model.CatalogDocument{}
	if err := unmarshalColumn(row.Packages, &doc.Packages); err != nil {
		return nil, 0, fmt.Errorf("parse packages column: %w", err)
	}
	if err := unmarshalColumn(row.AddOns, &doc.AddOns); err != nil {
		return nil, 0, fmt.Errorf("parse add-ons column: %w", err)
	}
	if err := unmarshalColumn(row.KeyFeatures, &doc.KeyFeatures); err != nil {
		return nil, 0, fmt.Errorf("parse key features column: %w", err)
	}
	if err := unmarshalColumn(row.AddonGroups, &doc.AddonGroups); err != nil {
		return nil, 0, fmt.Errorf("parse addon groups column: %w", err)
	}
	return doc, row.Version, nil
}

func unmarshalColumn(raw string, dst interface{}) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}

func (r *catalogRepoImpl) Version(tx *gorm.DB) (int64, error) {
	var version int64
	err := r.conn(tx).Model(&model.RentalConfig{}).
		Where("id = ?", catalogRowID).
		Select("version").
		Scan(&version).Error
	if err != nil {
		return 0, fmt.Errorf("read rental config version: %w", err)
	}
	return version, nil
}

// Replace re-serializes and writes the whole document, bumping the version
// stamp so readers holding a cached copy know it is stale.
func (r *catalogRepoImpl) Replace(tx *gorm.DB, doc *model.CatalogDocument) (int64, error) {
	packages, err := json.Marshal(doc.Packages)
	if err != nil {
		return 0, fmt.Errorf("marshal packages: %w", err)
	}
	addOns, err := json.Marshal(doc.AddOns)
	if err != nil {
		return 0, fmt.Errorf("marshal add-ons: %w", err)
	}
	keyFeatures, err := json.Marshal(doc.KeyFeatures)
	if err != nil {
		return 0, fmt.Errorf("marshal key features: %w", err)
	}
	addonGroups, err := json.Marshal(doc.AddonGroups)
	if err != nil {
		return 0, fmt.Errorf("marshal addon groups: %w", err)
	}

	var newVersion int64
	err = r.conn(tx).Transaction(func(tx *gorm.DB) error {
		current, err := r.Version(tx)
		if err != nil {
			return err
		}
		newVersion = current + 1

		row := &model.RentalConfig{
			ID:          catalogRowID,
			Version:     newVersion,
			Packages:    string(packages),
			AddOns:      string(addOns),
			KeyFeatures: string(keyFeatures),
			AddonGroups: string(addonGroups),
			UpdatedAt:   time.Now(),
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(row).Error
	})
	if err != nil {
		return 0, fmt.Errorf("replace rental config: %w", err)
	}
	return newVersion, nil
}
