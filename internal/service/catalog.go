package service

import (
	"fmt"
	"sync"

	"github.com/gosimple/slug"

	"provideo-rentals/internal/model"
	"provideo-rentals/internal/repository"
)

type CatalogService interface {
	Get() (*model.CatalogDocument, error)
	Replace(doc *model.CatalogDocument) error
}

// catalogServiceImpl serves the catalog through a version-stamped read-through
// cache. The cached copy is only served while its version matches the stored
// one, so a write from another process invalidates it on the next read. The
// cache lives on the service, not as package state.
type catalogServiceImpl struct {
	repo repository.CatalogRepository

	mu            sync.RWMutex
	cached        *model.CatalogDocument
	cachedVersion int64
}

func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogServiceImpl{repo: repo}
}

func (s *catalogServiceImpl) Get() (*model.CatalogDocument, error) {
	stored, err := s.repo.Version(nil)
	if err != nil {
		return nil, fmt.Errorf("check catalog version: %w", err)
	}

	s.mu.RLock()
	if s.cached != nil && s.cachedVersion == stored {
		doc := s.cached
		s.mu.RUnlock()
		return doc, nil
	}
	s.mu.RUnlock()

	doc, version, err := s.repo.Get(nil)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	s.mu.Lock()
	s.cached = doc
	s.cachedVersion = version
	s.mu.Unlock()

	return doc, nil
}

func (s *catalogServiceImpl) Replace(doc *model.CatalogDocument) error {
	if err := validateCatalog(doc); err != nil {
		return err
	}

	version, err := s.repo.Replace(nil, doc)
	if err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}

	s.mu.Lock()
	s.cached = doc
	s.cachedVersion = version
	s.mu.Unlock()

	return nil
}

func validateCatalog(doc *model.CatalogDocument) error {
	seen := make(map[string]bool)
	for _, p := range doc.Packages {
		if p.ID == "" || p.ID != slug.Make(p.ID) {
			return fmt.Errorf("%w: package %q: id must be a stable slug", ErrValidation, p.Name)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate package id %q", ErrValidation, p.ID)
		}
		seen[p.ID] = true
	}

	addOnIDs := make(map[string]bool)
	addOnValues := make(map[string]bool)
	for _, a := range doc.AddOns {
		if a.ID == "" {
			return fmt.Errorf("%w: add-on %q: id is required", ErrValidation, a.Name)
		}
		if addOnIDs[a.ID] {
			return fmt.Errorf("%w: duplicate add-on id %q", ErrValidation, a.ID)
		}
		addOnIDs[a.ID] = true
		if a.Value != "" {
			addOnValues[a.Value] = true
		}
		for _, pkgID := range a.Packages {
			if !seen[pkgID] {
				return fmt.Errorf("%w: add-on %q references unknown package %q", ErrValidation, a.ID, pkgID)
			}
		}
	}

	for _, g := range doc.AddonGroups {
		for _, v := range g.AddOnValues {
			if !addOnValues[v] {
				return fmt.Errorf("%w: addon group %q references unknown add-on value %q", ErrValidation, g.Name, v)
			}
		}
	}
	return nil
}
