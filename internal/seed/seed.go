// Package seed loads reference data from a TOML file on startup.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"campbook/internal/domain"
	"campbook/internal/domain/models"
	"campbook/internal/services"
	"campbook/internal/utils"

	"github.com/BurntSushi/toml"
)

// File mirrors the seed document. Amounts are decimal strings such as "120.50".
type File struct {
	Users          []User          `toml:"users"`
	Projects       []Project       `toml:"projects"`
	Packages       []Package       `toml:"packages"`
	Coaches        []Coach         `toml:"coaches"`
	Vehicles       []Vehicle       `toml:"vehicles"`
	Drivers        []Driver        `toml:"drivers"`
	Accommodations []Accommodation `toml:"accommodations"`
}

type User struct {
	Username string `toml:"username"`
	Name     string `toml:"name"`
	Phone    string `toml:"phone"`
	Password string `toml:"password"`
	Role     string `toml:"role"`
}

type Project struct {
	Name            string `toml:"name"`
	Category        string `toml:"category"`
	Description     string `toml:"description"`
	DurationMinutes int    `toml:"duration_minutes"`
	Capacity        int    `toml:"capacity"`
	Price           string `toml:"price"`
	ImageURL        string `toml:"image_url"`
}

type Package struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Price       string   `toml:"price"`
	ChildPrice  string   `toml:"child_price"`
	Days        int      `toml:"days"`
	Projects    []string `toml:"projects"`
}

type Coach struct {
	Name        string `toml:"name"`
	Phone       string `toml:"phone"`
	Specialties string `toml:"specialties"`
}

type Vehicle struct {
	PlateNumber string `toml:"plate_number"`
	Model       string `toml:"model"`
	Seats       int    `toml:"seats"`
}

type Driver struct {
	Name      string `toml:"name"`
	Phone     string `toml:"phone"`
	LicenseNo string `toml:"license_no"`
}

type Accommodation struct {
	Name          string `toml:"name"`
	Type          string `toml:"type"`
	Capacity      int    `toml:"capacity"`
	PricePerNight string `toml:"price_per_night"`
}

// Result counts inserted rows per section.
type Result map[string]int

// Seeder inserts seed rows through the services so the same validation applies.
type Seeder struct {
	Users     services.UserService
	Catalog   services.CatalogService
	Coaches   services.CoachService
	Fleet     services.FleetService
	RequestID string
}

func Decode(r io.Reader) (File, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return f, fmt.Errorf("decode seed: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return f, fmt.Errorf("decode seed: unknown keys %v", undecoded)
	}
	return f, nil
}

func LoadFile(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open seed: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}

func amount(field, v string) (int64, error) {
	if strings.TrimSpace(v) == "" {
		return 0, nil
	}
	c, err := utils.ParseAmountToCents(v)
	if err != nil {
		return 0, domain.ValidationError{Field: field, Msg: err.Error()}
	}
	return c, nil
}

// Apply inserts every row whose unique key is not present yet. Existing rows are left untouched.
func (s Seeder) Apply(ctx context.Context, f File) (Result, error) {
	res := Result{}
	steps := []struct {
		name string
		run  func(context.Context, File) (int, error)
	}{
		{"users", s.users},
		{"projects", s.projects},
		{"packages", s.packages},
		{"accommodations", s.accommodations},
		{"coaches", s.coaches},
		{"vehicles", s.vehicles},
		{"drivers", s.drivers},
	}
	for _, st := range steps {
		n, err := st.run(ctx, f)
		if err != nil {
			return res, fmt.Errorf("seed %s: %w", st.name, err)
		}
		res[st.name] = n
	}
	utils.LogEvent(s.RequestID, "seed", "apply", fmt.Sprintf("%v", map[string]int(res)))
	return res, nil
}

func (s Seeder) users(ctx context.Context, f File) (int, error) {
	if len(f.Users) == 0 {
		return 0, nil
	}
	existing, err := s.Users.List(ctx)
	if err != nil {
		return 0, err
	}
	have := map[string]bool{}
	for _, u := range existing {
		have[u.Username] = true
	}
	n := 0
	for _, u := range f.Users {
		if have[strings.TrimSpace(u.Username)] {
			continue
		}
		if _, err := s.Users.Create(ctx, services.UserInput{
			Username: u.Username, Name: u.Name, Phone: u.Phone, Password: u.Password, Role: u.Role,
		}); err != nil {
			return n, fmt.Errorf("%s: %w", u.Username, err)
		}
		n++
	}
	return n, nil
}

func (s Seeder) projects(ctx context.Context, f File) (int, error) {
	if len(f.Projects) == 0 {
		return 0, nil
	}
	have, err := s.projectIDs(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range f.Projects {
		if _, ok := have[utils.NormalizeSpace(p.Name)]; ok {
			continue
		}
		price, err := amount("price", p.Price)
		if err != nil {
			return n, err
		}
		if _, err := s.Catalog.CreateProject(ctx, services.ProjectInput{
			Name: p.Name, Category: p.Category, Description: p.Description,
			DurationMinutes: p.DurationMinutes, Capacity: p.Capacity, Price: price, ImageURL: p.ImageURL,
		}); err != nil {
			return n, fmt.Errorf("%s: %w", p.Name, err)
		}
		n++
	}
	return n, nil
}

func (s Seeder) projectIDs(ctx context.Context) (map[string]int64, error) {
	list, err := s.Catalog.ListProjects(ctx, models.ProjectFilter{})
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(list))
	for _, p := range list {
		out[p.Name] = p.ID
	}
	return out, nil
}

func (s Seeder) packages(ctx context.Context, f File) (int, error) {
	if len(f.Packages) == 0 {
		return 0, nil
	}
	existing, err := s.Catalog.ListPackages(ctx, false)
	if err != nil {
		return 0, err
	}
	have := map[string]bool{}
	for _, p := range existing {
		have[p.Name] = true
	}
	projects, err := s.projectIDs(ctx)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, p := range f.Packages {
		if have[utils.NormalizeSpace(p.Name)] {
			continue
		}
		price, err := amount("price", p.Price)
		if err != nil {
			return n, err
		}
		child, err := amount("child_price", p.ChildPrice)
		if err != nil {
			return n, err
		}
		ids := make([]int64, 0, len(p.Projects))
		for _, name := range p.Projects {
			id, ok := projects[utils.NormalizeSpace(name)]
			if !ok {
				return n, fmt.Errorf("%s: unknown project %q", p.Name, name)
			}
			ids = append(ids, id)
		}
		if _, err := s.Catalog.CreatePackage(ctx, services.PackageInput{
			Name: p.Name, Description: p.Description, Price: price, ChildPrice: child, Days: p.Days, ProjectIDs: ids,
		}); err != nil {
			return n, fmt.Errorf("%s: %w", p.Name, err)
		}
		n++
	}
	return n, nil
}

func (s Seeder) accommodations(ctx context.Context, f File) (int, error) {
	if len(f.Accommodations) == 0 {
		return 0, nil
	}
	existing, err := s.Catalog.ListAccommodations(ctx, false)
	if err != nil {
		return 0, err
	}
	have := map[string]bool{}
	for _, a := range existing {
		have[a.Name] = true
	}
	n := 0
	for _, a := range f.Accommodations {
		if have[utils.NormalizeSpace(a.Name)] {
			continue
		}
		price, err := amount("price_per_night", a.PricePerNight)
		if err != nil {
			return n, err
		}
		if _, err := s.Catalog.CreateAccommodation(ctx, services.AccommodationInput{
			Name: a.Name, Type: a.Type, Capacity: a.Capacity, PricePerNight: price,
		}); err != nil {
			return n, fmt.Errorf("%s: %w", a.Name, err)
		}
		n++
	}
	return n, nil
}

func (s Seeder) coaches(ctx context.Context, f File) (int, error) {
	if len(f.Coaches) == 0 {
		return 0, nil
	}
	existing, err := s.Coaches.List(ctx, "", "")
	if err != nil {
		return 0, err
	}
	have := map[string]bool{}
	for _, c := range existing {
		have[c.Name] = true
	}
	n := 0
	for _, c := range f.Coaches {
		if have[utils.NormalizeSpace(c.Name)] {
			continue
		}
		if _, err := s.Coaches.Create(ctx, services.CoachInput{Name: c.Name, Phone: c.Phone, Specialties: c.Specialties}); err != nil {
			return n, fmt.Errorf("%s: %w", c.Name, err)
		}
		n++
	}
	return n, nil
}

func (s Seeder) vehicles(ctx context.Context, f File) (int, error) {
	if len(f.Vehicles) == 0 {
		return 0, nil
	}
	existing, err := s.Fleet.ListVehicles(ctx, "", "")
	if err != nil {
		return 0, err
	}
	have := map[string]bool{}
	for _, v := range existing {
		have[v.PlateNumber] = true
	}
	n := 0
	for _, v := range f.Vehicles {
		if have[strings.ToUpper(strings.Join(strings.Fields(v.PlateNumber), ""))] {
			continue
		}
		if _, err := s.Fleet.CreateVehicle(ctx, services.VehicleInput{PlateNumber: v.PlateNumber, Model: v.Model, Seats: v.Seats}); err != nil {
			return n, fmt.Errorf("%s: %w", v.PlateNumber, err)
		}
		n++
	}
	return n, nil
}

func (s Seeder) drivers(ctx context.Context, f File) (int, error) {
	if len(f.Drivers) == 0 {
		return 0, nil
	}
	existing, err := s.Fleet.ListDrivers(ctx, "", "")
	if err != nil {
		return 0, err
	}
	have := map[string]bool{}
	for _, d := range existing {
		have[d.Phone] = true
	}
	n := 0
	for _, d := range f.Drivers {
		if have[utils.NormalizePhone(d.Phone)] {
			continue
		}
		if _, err := s.Fleet.CreateDriver(ctx, services.DriverInput{Name: d.Name, Phone: d.Phone, LicenseNo: d.LicenseNo}); err != nil {
			return n, fmt.Errorf("%s: %w", d.Name, err)
		}
		n++
	}
	return n, nil
}
