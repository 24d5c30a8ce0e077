// Package seed loads YAML fixtures of services and their related entities
// into a services.Store. It backs the in-memory demo source and can prime a
// Firestore database.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/illmade-knight/service-info/pkg/services"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoData []byte

// Dataset is a decoded fixture file.
type Dataset struct {
	ProviderTypes []services.ProviderType
	Providers     []services.Provider
	ServiceAreas  []services.ServiceArea
	ServiceTypes  []services.ServiceType
	Services      []services.Service
}

type localizedYAML struct {
	EN string `yaml:"en"`
	AR string `yaml:"ar"`
	FR string `yaml:"fr"`
}

func (l localizedYAML) toLocalized() services.Localized {
	return services.Localized{EN: l.EN, AR: l.AR, FR: l.FR}
}

type hoursYAML struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

type fileYAML struct {
	ProviderTypes []struct {
		ID     string        `yaml:"id"`
		Number int           `yaml:"number"`
		Name   localizedYAML `yaml:"name"`
	} `yaml:"providertypes"`
	Providers []struct {
		ID                           string        `yaml:"id"`
		Name                         localizedYAML `yaml:"name"`
		Description                  localizedYAML `yaml:"description"`
		PhoneNumber                  string        `yaml:"phone_number"`
		Website                      string        `yaml:"website"`
		NumberOfMonthlyBeneficiaries int           `yaml:"number_of_monthly_beneficiaries"`
		Type                         string        `yaml:"type"`
	} `yaml:"providers"`
	ServiceAreas []struct {
		ID     string        `yaml:"id"`
		Name   localizedYAML `yaml:"name"`
		Parent string        `yaml:"parent"`
	} `yaml:"serviceareas"`
	ServiceTypes []struct {
		ID     string        `yaml:"id"`
		Number int           `yaml:"number"`
		Name   localizedYAML `yaml:"name"`
		Icon   string        `yaml:"icon"`
	} `yaml:"servicetypes"`
	Services []struct {
		ID                string               `yaml:"id"`
		Name              localizedYAML        `yaml:"name"`
		Description       localizedYAML        `yaml:"description"`
		Location          string               `yaml:"location"`
		Status            string               `yaml:"status"`
		Cost              localizedYAML        `yaml:"cost"`
		SelectionCriteria localizedYAML        `yaml:"selection_criteria"`
		Schedule          map[string]hoursYAML `yaml:"schedule"`
		Provider          string               `yaml:"provider"`
		AreaOfService     string               `yaml:"area_of_service"`
		Type              string               `yaml:"type"`
	} `yaml:"services"`
}

var weekdayIndex = map[string]int{
	"sunday": 0, "monday": 1, "tuesday": 2, "wednesday": 3,
	"thursday": 4, "friday": 5, "saturday": 6,
}

// Demo returns the embedded demonstration dataset.
func Demo() (Dataset, error) {
	return Decode(bytes.NewReader(demoData))
}

// Decode reads a fixture file. Schedule keys are lower-case weekday names.
func Decode(r io.Reader) (Dataset, error) {
	var f fileYAML
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return Dataset{}, fmt.Errorf("failed to decode seed data: %w", err)
	}

	var ds Dataset
	for _, pt := range f.ProviderTypes {
		ds.ProviderTypes = append(ds.ProviderTypes, services.ProviderType{ID: pt.ID, Number: pt.Number, Name: pt.Name.toLocalized()})
	}
	for _, p := range f.Providers {
		ds.Providers = append(ds.Providers, services.Provider{
			ID:                           p.ID,
			Name:                         p.Name.toLocalized(),
			Description:                  p.Description.toLocalized(),
			PhoneNumber:                  p.PhoneNumber,
			Website:                      p.Website,
			NumberOfMonthlyBeneficiaries: p.NumberOfMonthlyBeneficiaries,
			TypeRef:                      p.Type,
		})
	}
	for _, a := range f.ServiceAreas {
		ds.ServiceAreas = append(ds.ServiceAreas, services.ServiceArea{ID: a.ID, Name: a.Name.toLocalized(), ParentRef: a.Parent})
	}
	for _, st := range f.ServiceTypes {
		ds.ServiceTypes = append(ds.ServiceTypes, services.ServiceType{ID: st.ID, Number: st.Number, Name: st.Name.toLocalized(), IconURL: st.Icon})
	}
	for _, s := range f.Services {
		svc := services.Service{
			ID:                s.ID,
			Name:              s.Name.toLocalized(),
			Description:       s.Description.toLocalized(),
			Location:          s.Location,
			Status:            s.Status,
			Cost:              s.Cost.toLocalized(),
			SelectionCriteria: s.SelectionCriteria.toLocalized(),
			ProviderRef:       s.Provider,
			AreaRef:           s.AreaOfService,
			TypeRef:           s.Type,
		}
		for day, hours := range s.Schedule {
			i, ok := weekdayIndex[strings.ToLower(day)]
			if !ok {
				return Dataset{}, fmt.Errorf("service %s: unknown weekday %q", s.ID, day)
			}
			svc.Schedule[i] = services.OpeningHours{Open: hours.Open, Close: hours.Close}
		}
		ds.Services = append(ds.Services, svc)
	}
	return ds, nil
}

// Apply writes every entity of the dataset to store, related entities first.
func (ds Dataset) Apply(ctx context.Context, store services.Store) error {
	for _, pt := range ds.ProviderTypes {
		if err := store.AddProviderType(ctx, pt); err != nil {
			return fmt.Errorf("failed to add provider type %s: %w", pt.ID, err)
		}
	}
	for _, p := range ds.Providers {
		if err := store.AddProvider(ctx, p); err != nil {
			return fmt.Errorf("failed to add provider %s: %w", p.ID, err)
		}
	}
	for _, a := range ds.ServiceAreas {
		if err := store.AddServiceArea(ctx, a); err != nil {
			return fmt.Errorf("failed to add service area %s: %w", a.ID, err)
		}
	}
	for _, st := range ds.ServiceTypes {
		if err := store.AddServiceType(ctx, st); err != nil {
			return fmt.Errorf("failed to add service type %s: %w", st.ID, err)
		}
	}
	for _, s := range ds.Services {
		if err := store.AddService(ctx, s); err != nil {
			return fmt.Errorf("failed to add service %s: %w", s.ID, err)
		}
	}
	return nil
}
