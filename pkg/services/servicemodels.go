// FILE: pkg/services/servicemodels.go

package services

import "strings"

// Localized holds the per-language variants of a text field. The backend
// stores English, Arabic and French columns (name_en, name_ar, name_fr).
type Localized struct {
	EN string `json:"en,omitempty"`
	AR string `json:"ar,omitempty"`
	FR string `json:"fr,omitempty"`
}

// In returns the text for lang, falling back to English when that variant
// is empty or lang is not one of the stored languages.
func (l Localized) In(lang string) string {
	var s string
	switch strings.ToLower(lang) {
	case "ar":
		s = l.AR
	case "fr":
		s = l.FR
	}
	if s == "" {
		return l.EN
	}
	return s
}

// OpeningHours is one day of a service's schedule. Times are "HH:MM" (or
// "HH:MM:SS" as the backend sends them); an empty Open means closed that day.
type OpeningHours struct {
	Open  string `json:"open,omitempty"`
	Close string `json:"close,omitempty"`
}

// Closed reports whether the service does not open that day.
func (h OpeningHours) Closed() bool {
	return h.Open == ""
}

// Schedule is indexed like the weekday labels: 0 is Sunday, 6 is Saturday.
type Schedule [7]OpeningHours

// RelationKind names a sub-entity a record points at.
type RelationKind string

const (
	RelationProvider     RelationKind = "provider"
	RelationProviderType RelationKind = "provider_type"
	RelationArea         RelationKind = "area_of_service"
	RelationServiceType  RelationKind = "service_type"
)

// Relation is a reference from one record to a sub-entity. Ref is either the
// sub-entity's id or its API URL; see RefID.
type Relation struct {
	Kind RelationKind
	Ref  string
}

// Service is a service offered by a provider, as published in the directory.
type Service struct {
	ID                string    `json:"id"`
	Name              Localized `json:"name"`
	Description       Localized `json:"description"`
	Location          string    `json:"location,omitempty"`
	Status            string    `json:"status,omitempty"`
	Cost              Localized `json:"cost,omitempty"`
	SelectionCriteria Localized `json:"selection_criteria,omitempty"`
	Schedule          Schedule  `json:"schedule"`

	ProviderRef string `json:"provider_ref,omitempty"`
	AreaRef     string `json:"area_ref,omitempty"`
	TypeRef     string `json:"type_ref,omitempty"`
}

// Relations lists the sub-entities this service declares. Empty references
// are left out.
func (s Service) Relations() []Relation {
	return nonEmpty(
		Relation{Kind: RelationProvider, Ref: s.ProviderRef},
		Relation{Kind: RelationArea, Ref: s.AreaRef},
		Relation{Kind: RelationServiceType, Ref: s.TypeRef},
	)
}

// Provider is the organisation offering a service.
type Provider struct {
	ID                           string    `json:"id"`
	Name                         Localized `json:"name"`
	Description                  Localized `json:"description"`
	PhoneNumber                  string    `json:"phone_number,omitempty"`
	Website                      string    `json:"website,omitempty"`
	NumberOfMonthlyBeneficiaries int       `json:"number_of_monthly_beneficiaries,omitempty"`
	TypeRef                      string    `json:"type_ref,omitempty"`
}

// Relations lists the sub-entities a provider declares.
func (p Provider) Relations() []Relation {
	return nonEmpty(Relation{Kind: RelationProviderType, Ref: p.TypeRef})
}

// ProviderType classifies providers ("Local NGO", "UN Agency", ...).
type ProviderType struct {
	ID     string    `json:"id"`
	Number int       `json:"number"`
	Name   Localized `json:"name"`
}

// ServiceType classifies services.
type ServiceType struct {
	ID      string    `json:"id"`
	Number  int       `json:"number"`
	Name    Localized `json:"name"`
	IconURL string    `json:"icon_url,omitempty"`
}

// ServiceArea is a geographic area of service. Areas form a tree through
// ParentRef.
type ServiceArea struct {
	ID        string    `json:"id"`
	Name      Localized `json:"name"`
	ParentRef string    `json:"parent_ref,omitempty"`
}

// RefID returns the id a reference points at. References are either a bare
// id ("12") or an API URL whose last path segment is the id
// ("https://host/api/providers/12/").
func RefID(ref string) string {
	trimmed := strings.TrimRight(ref, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

func nonEmpty(rels ...Relation) []Relation {
	out := rels[:0]
	for _, r := range rels {
		if r.Ref != "" {
			out = append(out, r)
		}
	}
	return out
}
