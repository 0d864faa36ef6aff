package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"campbook/internal/cache"
	"campbook/internal/domain"
	"campbook/internal/domain/models"
	"campbook/internal/utils"
)

// CatalogService manages what can be sold: projects, packages and accommodation places.
// Writes drop the public catalog cache.
type CatalogService struct {
	Projects       ProjectStore
	Packages       PackageStore
	Accommodations AccommodationStore
	Tx             Transactor
	Cache          cache.Store
	RequestID      string
}

type ProjectInput struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes"`
	Capacity        int    `json:"capacity"`
	Price           int64  `json:"price"`
	ImageURL        string `json:"imageUrl"`
	IsActive        *bool  `json:"isActive"`
}

type PackageInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	ChildPrice  int64   `json:"childPrice"`
	Days        int     `json:"days"`
	ImageURL    string  `json:"imageUrl"`
	IsActive    *bool   `json:"isActive"`
	ProjectIDs  []int64 `json:"projectIds"`
}

type AccommodationInput struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Capacity      int    `json:"capacity"`
	PricePerNight int64  `json:"pricePerNight"`
	IsActive      *bool  `json:"isActive"`
	Notes         string `json:"notes"`
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func (s CatalogService) store() cache.Store {
	if s.Cache != nil {
		return s.Cache
	}
	return cache.NoopStore{}
}

func (s CatalogService) invalidate(ctx context.Context, keys ...string) {
	if err := s.store().Delete(ctx, keys...); err != nil {
		utils.LogEvent(s.RequestID, "catalog", "invalidate", err.Error())
	}
}

// Projects

func (s CatalogService) ListProjects(ctx context.Context, f models.ProjectFilter) ([]models.Project, error) {
	return s.Projects.List(ctx, f)
}

func (s CatalogService) GetProject(ctx context.Context, id int64) (models.Project, error) {
	p, err := s.Projects.GetByID(ctx, id)
	return p, notFound(err, "project")
}

func (in ProjectInput) toModel(defActive bool) (models.Project, error) {
	p := models.Project{
		Name:            utils.NormalizeSpace(in.Name),
		Category:        strings.TrimSpace(in.Category),
		Description:     strings.TrimSpace(in.Description),
		DurationMinutes: in.DurationMinutes,
		Capacity:        in.Capacity,
		Price:           in.Price,
		ImageURL:        strings.TrimSpace(in.ImageURL),
		IsActive:        boolOr(in.IsActive, defActive),
	}
	if p.Name == "" {
		return p, required("name")
	}
	if p.DurationMinutes < 1 {
		return p, domain.ValidationError{Field: "durationMinutes", Msg: "must be at least 1"}
	}
	if p.Capacity < 1 {
		return p, domain.ValidationError{Field: "capacity", Msg: "must be at least 1"}
	}
	if p.Price < 0 {
		return p, domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	return p, nil
}

func (s CatalogService) CreateProject(ctx context.Context, in ProjectInput) (models.Project, error) {
	p, err := in.toModel(true)
	if err != nil {
		return p, err
	}
	id, err := s.Projects.Create(ctx, &p)
	if err != nil {
		return p, mapRepoErr(err, "project", domain.CodeDuplicateName, "")
	}
	s.invalidate(ctx, cache.KeyPublicProjects, cache.KeyPublicPackages)
	utils.LogEvent(s.RequestID, "projects", "create", fmt.Sprintf("project_id=%d", id))
	return s.GetProject(ctx, id)
}

func (s CatalogService) UpdateProject(ctx context.Context, id int64, in ProjectInput) (models.Project, error) {
	cur, err := s.Projects.GetByID(ctx, id)
	if err != nil {
		return cur, notFound(err, "project")
	}
	p, err := in.toModel(cur.IsActive)
	if err != nil {
		return p, err
	}
	p.ID = id
	if err := s.Projects.Update(ctx, &p); err != nil {
		return p, mapRepoErr(err, "project", domain.CodeDuplicateName, "")
	}
	s.invalidate(ctx, cache.KeyPublicProjects, cache.KeyPublicPackages)
	utils.LogEvent(s.RequestID, "projects", "update", fmt.Sprintf("project_id=%d", id))
	return s.GetProject(ctx, id)
}

func (s CatalogService) DeleteProject(ctx context.Context, id int64) error {
	if _, err := s.Projects.GetByID(ctx, id); err != nil {
		return notFound(err, "project")
	}
	n, err := s.Projects.CountSchedules(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return inUse("project", domain.CodeProjectInUse, n)
	}
	if err := s.Projects.Delete(ctx, id); err != nil {
		return mapRepoErr(err, "project", "", domain.CodeProjectInUse)
	}
	s.invalidate(ctx, cache.KeyPublicProjects, cache.KeyPublicPackages)
	utils.LogEvent(s.RequestID, "projects", "delete", fmt.Sprintf("project_id=%d", id))
	return nil
}

// Packages

func (s CatalogService) ListPackages(ctx context.Context, activeOnly bool) ([]models.Package, error) {
	return s.Packages.List(ctx, activeOnly)
}

// GetPackage returns the package with its projects expanded.
func (s CatalogService) GetPackage(ctx context.Context, id int64) (models.Package, error) {
	p, err := s.Packages.GetByID(ctx, id)
	if err != nil {
		return p, notFound(err, "package")
	}
	projects, err := s.Projects.GetByIDs(ctx, p.ProjectIDs)
	if err != nil {
		return p, err
	}
	p.Projects = projects
	return p, nil
}

func (s CatalogService) packageFromInput(ctx context.Context, in PackageInput, defActive bool) (models.Package, []int64, error) {
	p := models.Package{
		Name:        utils.NormalizeSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		ChildPrice:  in.ChildPrice,
		Days:        in.Days,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		IsActive:    boolOr(in.IsActive, defActive),
	}
	if p.Name == "" {
		return p, nil, required("name")
	}
	if p.Price < 0 {
		return p, nil, domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	if p.ChildPrice < 0 {
		return p, nil, domain.ValidationError{Field: "childPrice", Msg: "must not be negative"}
	}
	if p.ChildPrice == 0 {
		p.ChildPrice = p.Price
	}
	if p.Days < 1 {
		p.Days = 1
	}

	ids := uniqueIDs(in.ProjectIDs)
	if len(ids) > 0 {
		found, err := s.Projects.GetByIDs(ctx, ids)
		if err != nil {
			return p, nil, err
		}
		if len(found) != len(ids) {
			return p, nil, domain.ValidationError{Field: "projectIds", Msg: "contains unknown projects"}
		}
	}
	return p, ids, nil
}

func (s CatalogService) CreatePackage(ctx context.Context, in PackageInput) (models.Package, error) {
	p, ids, err := s.packageFromInput(ctx, in, true)
	if err != nil {
		return p, err
	}
	var id int64
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if id, err = s.Packages.Create(ctx, &p); err != nil {
			return err
		}
		return s.Packages.ReplaceProjects(ctx, id, ids)
	})
	if err != nil {
		return p, mapRepoErr(err, "package", domain.CodeDuplicateName, "")
	}
	s.invalidate(ctx, cache.KeyPublicPackages)
	utils.LogEvent(s.RequestID, "packages", "create", fmt.Sprintf("package_id=%d projects=%d", id, len(ids)))
	return s.GetPackage(ctx, id)
}

func (s CatalogService) UpdatePackage(ctx context.Context, id int64, in PackageInput) (models.Package, error) {
	cur, err := s.Packages.GetByID(ctx, id)
	if err != nil {
		return cur, notFound(err, "package")
	}
	p, ids, err := s.packageFromInput(ctx, in, cur.IsActive)
	if err != nil {
		return p, err
	}
	p.ID = id
	err = s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Packages.Update(ctx, &p); err != nil {
			return err
		}
		return s.Packages.ReplaceProjects(ctx, id, ids)
	})
	if err != nil {
		return p, mapRepoErr(err, "package", domain.CodeDuplicateName, "")
	}
	s.invalidate(ctx, cache.KeyPublicPackages)
	utils.LogEvent(s.RequestID, "packages", "update", fmt.Sprintf("package_id=%d", id))
	return s.GetPackage(ctx, id)
}

func (s CatalogService) DeletePackage(ctx context.Context, id int64) error {
	if _, err := s.Packages.GetByID(ctx, id); err != nil {
		return notFound(err, "package")
	}
	n, err := s.Packages.CountOrderItems(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ConflictError{
			Resource: "package",
			Msg:      "is used by existing orders, deactivate it instead",
			Code:     domain.CodePackageInUse,
			Details:  map[string]int{"references": n},
		}
	}
	if err := s.Packages.Delete(ctx, id); err != nil {
		return mapRepoErr(err, "package", "", domain.CodePackageInUse)
	}
	s.invalidate(ctx, cache.KeyPublicPackages)
	utils.LogEvent(s.RequestID, "packages", "delete", fmt.Sprintf("package_id=%d", id))
	return nil
}

// Accommodation places

func (s CatalogService) ListAccommodations(ctx context.Context, activeOnly bool) ([]models.AccommodationPlace, error) {
	return s.Accommodations.List(ctx, activeOnly)
}

func (s CatalogService) GetAccommodation(ctx context.Context, id int64) (models.AccommodationPlace, error) {
	a, err := s.Accommodations.GetByID(ctx, id)
	return a, notFound(err, "accommodation place")
}

func (in AccommodationInput) toModel(defActive bool) (models.AccommodationPlace, error) {
	a := models.AccommodationPlace{
		Name:          utils.NormalizeSpace(in.Name),
		Type:          strings.ToLower(strings.TrimSpace(in.Type)),
		Capacity:      in.Capacity,
		PricePerNight: in.PricePerNight,
		IsActive:      boolOr(in.IsActive, defActive),
		Notes:         strings.TrimSpace(in.Notes),
	}
	if a.Name == "" {
		return a, required("name")
	}
	if a.Type == "" {
		a.Type = "room"
	}
	if !models.ValidAccommodationType(a.Type) {
		return a, domain.ValidationError{Field: "type", Msg: "must be one of " + strings.Join(models.AccommodationTypes, ", ")}
	}
	if a.Capacity < 1 {
		return a, domain.ValidationError{Field: "capacity", Msg: "must be at least 1"}
	}
	if a.PricePerNight < 0 {
		return a, domain.ValidationError{Field: "pricePerNight", Msg: "must not be negative"}
	}
	return a, nil
}

func (s CatalogService) CreateAccommodation(ctx context.Context, in AccommodationInput) (models.AccommodationPlace, error) {
	a, err := in.toModel(true)
	if err != nil {
		return a, err
	}
	id, err := s.Accommodations.Create(ctx, &a)
	if err != nil {
		return a, mapRepoErr(err, "accommodation place", domain.CodeDuplicateName, "")
	}
	utils.LogEvent(s.RequestID, "accommodations", "create", fmt.Sprintf("place_id=%d", id))
	return s.GetAccommodation(ctx, id)
}

func (s CatalogService) UpdateAccommodation(ctx context.Context, id int64, in AccommodationInput) (models.AccommodationPlace, error) {
	cur, err := s.Accommodations.GetByID(ctx, id)
	if err != nil {
		return cur, notFound(err, "accommodation place")
	}
	a, err := in.toModel(cur.IsActive)
	if err != nil {
		return a, err
	}
	a.ID = id
	if err := s.Accommodations.Update(ctx, &a); err != nil {
		return a, mapRepoErr(err, "accommodation place", domain.CodeDuplicateName, "")
	}
	utils.LogEvent(s.RequestID, "accommodations", "update", fmt.Sprintf("place_id=%d", id))
	return s.GetAccommodation(ctx, id)
}

func (s CatalogService) DeleteAccommodation(ctx context.Context, id int64) error {
	if _, err := s.Accommodations.GetByID(ctx, id); err != nil {
		return notFound(err, "accommodation place")
	}
	n, err := s.Accommodations.CountOrders(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return inUse("accommodation place", domain.CodeAccommodationInUse, n)
	}
	if err := s.Accommodations.Delete(ctx, id); err != nil {
		return mapRepoErr(err, "accommodation place", "", domain.CodeAccommodationInUse)
	}
	utils.LogEvent(s.RequestID, "accommodations", "delete", fmt.Sprintf("place_id=%d", id))
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
