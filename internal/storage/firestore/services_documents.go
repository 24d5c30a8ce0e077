package firestore

import "github.com/illmade-knight/service-info/pkg/services"

// The document structs below are the private shapes used for Firestore
// marshalling. This keeps the domain model in `pkg/services` free of
// persistence-specific tags.

type localizedDocument struct {
	EN string `firestore:"en,omitempty"`
	AR string `firestore:"ar,omitempty"`
	FR string `firestore:"fr,omitempty"`
}

func fromLocalized(l services.Localized) localizedDocument {
	return localizedDocument{EN: l.EN, AR: l.AR, FR: l.FR}
}

func (d localizedDocument) toLocalized() services.Localized {
	return services.Localized{EN: d.EN, AR: d.AR, FR: d.FR}
}

type hoursDocument struct {
	Open  string `firestore:"open,omitempty"`
	Close string `firestore:"close,omitempty"`
}

type serviceDocument struct {
	Name              localizedDocument `firestore:"name"`
	Description       localizedDocument `firestore:"description"`
	Location          string            `firestore:"location,omitempty"`
	Status            string            `firestore:"status,omitempty"`
	Cost              localizedDocument `firestore:"cost"`
	SelectionCriteria localizedDocument `firestore:"selectionCriteria"`
	// Schedule holds seven entries, Sunday first.
	Schedule    []hoursDocument `firestore:"schedule"`
	ProviderRef string          `firestore:"providerRef,omitempty"`
	AreaRef     string          `firestore:"areaRef,omitempty"`
	TypeRef     string          `firestore:"typeRef,omitempty"`
}

type providerDocument struct {
	Name                         localizedDocument `firestore:"name"`
	Description                  localizedDocument `firestore:"description"`
	PhoneNumber                  string            `firestore:"phoneNumber,omitempty"`
	Website                      string            `firestore:"website,omitempty"`
	NumberOfMonthlyBeneficiaries int               `firestore:"numberOfMonthlyBeneficiaries"`
	TypeRef                      string            `firestore:"typeRef,omitempty"`
}

type typeDocument struct {
	Number  int               `firestore:"number"`
	Name    localizedDocument `firestore:"name"`
	IconURL string            `firestore:"iconUrl,omitempty"`
}

type areaDocument struct {
	Name      localizedDocument `firestore:"name"`
	ParentRef string            `firestore:"parentRef,omitempty"`
}

func toServiceDocument(s services.Service) serviceDocument {
	schedule := make([]hoursDocument, len(s.Schedule))
	for i, h := range s.Schedule {
		schedule[i] = hoursDocument{Open: h.Open, Close: h.Close}
	}
	return serviceDocument{
		Name:              fromLocalized(s.Name),
		Description:       fromLocalized(s.Description),
		Location:          s.Location,
		Status:            s.Status,
		Cost:              fromLocalized(s.Cost),
		SelectionCriteria: fromLocalized(s.SelectionCriteria),
		Schedule:          schedule,
		ProviderRef:       s.ProviderRef,
		AreaRef:           s.AreaRef,
		TypeRef:           s.TypeRef,
	}
}

func toService(docID string, d serviceDocument) services.Service {
	var schedule services.Schedule
	for i := 0; i < len(schedule) && i < len(d.Schedule); i++ {
		schedule[i] = services.OpeningHours{Open: d.Schedule[i].Open, Close: d.Schedule[i].Close}
	}
	return services.Service{
		ID:                docID,
		Name:              d.Name.toLocalized(),
		Description:       d.Description.toLocalized(),
		Location:          d.Location,
		Status:            d.Status,
		Cost:              d.Cost.toLocalized(),
		SelectionCriteria: d.SelectionCriteria.toLocalized(),
		Schedule:          schedule,
		ProviderRef:       d.ProviderRef,
		AreaRef:           d.AreaRef,
		TypeRef:           d.TypeRef,
	}
}
