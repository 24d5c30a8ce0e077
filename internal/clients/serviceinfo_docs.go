package clients

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/illmade-knight/service-info/pkg/services"
)

// flexID accepts both numeric and string ids.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %s", b)
	}
	*f = flexID(n.String())
	return nil
}

// localizedDoc carries the name_xx / description_xx column triplets.
type localizedDoc struct {
	NameEN        string `json:"name_en"`
	NameAR        string `json:"name_ar"`
	NameFR        string `json:"name_fr"`
	DescriptionEN string `json:"description_en"`
	DescriptionAR string `json:"description_ar"`
	DescriptionFR string `json:"description_fr"`
}

func (l localizedDoc) names() services.Localized {
	return services.Localized{EN: l.NameEN, AR: l.NameAR, FR: l.NameFR}
}

func (l localizedDoc) descriptions() services.Localized {
	return services.Localized{EN: l.DescriptionEN, AR: l.DescriptionAR, FR: l.DescriptionFR}
}

type serviceDoc struct {
	localizedDoc
	ID                  flexID `json:"id"`
	Provider            string `json:"provider"`
	AreaOfService       string `json:"area_of_service"`
	Type                string `json:"type"`
	Location            string `json:"location"`
	Status              string `json:"status"`
	CostOfServiceEN     string `json:"cost_of_service_en"`
	CostOfServiceAR     string `json:"cost_of_service_ar"`
	CostOfServiceFR     string `json:"cost_of_service_fr"`
	SelectionCriteriaEN string `json:"selection_criteria_en"`
	SelectionCriteriaAR string `json:"selection_criteria_ar"`
	SelectionCriteriaFR string `json:"selection_criteria_fr"`

	SundayOpen     string `json:"sunday_open"`
	SundayClose    string `json:"sunday_close"`
	MondayOpen     string `json:"monday_open"`
	MondayClose    string `json:"monday_close"`
	TuesdayOpen    string `json:"tuesday_open"`
	TuesdayClose   string `json:"tuesday_close"`
	WednesdayOpen  string `json:"wednesday_open"`
	WednesdayClose string `json:"wednesday_close"`
	ThursdayOpen   string `json:"thursday_open"`
	ThursdayClose  string `json:"thursday_close"`
	FridayOpen     string `json:"friday_open"`
	FridayClose    string `json:"friday_close"`
	SaturdayOpen   string `json:"saturday_open"`
	SaturdayClose  string `json:"saturday_close"`
}

func (d serviceDoc) toService() services.Service {
	return services.Service{
		ID:                string(d.ID),
		Name:              d.names(),
		Description:       d.descriptions(),
		Location:          d.Location,
		Status:            d.Status,
		Cost:              services.Localized{EN: d.CostOfServiceEN, AR: d.CostOfServiceAR, FR: d.CostOfServiceFR},
		SelectionCriteria: services.Localized{EN: d.SelectionCriteriaEN, AR: d.SelectionCriteriaAR, FR: d.SelectionCriteriaFR},
		Schedule: services.Schedule{
			{Open: d.SundayOpen, Close: d.SundayClose},
			{Open: d.MondayOpen, Close: d.MondayClose},
			{Open: d.TuesdayOpen, Close: d.TuesdayClose},
			{Open: d.WednesdayOpen, Close: d.WednesdayClose},
			{Open: d.ThursdayOpen, Close: d.ThursdayClose},
			{Open: d.FridayOpen, Close: d.FridayClose},
			{Open: d.SaturdayOpen, Close: d.SaturdayClose},
		},
		ProviderRef: d.Provider,
		AreaRef:     d.AreaOfService,
		TypeRef:     d.Type,
	}
}

type providerDoc struct {
	localizedDoc
	ID                           flexID `json:"id"`
	Type                         string `json:"type"`
	PhoneNumber                  string `json:"phone_number"`
	Website                      string `json:"website"`
	NumberOfMonthlyBeneficiaries int    `json:"number_of_monthly_beneficiaries"`
}

func (d providerDoc) toProvider() services.Provider {
	return services.Provider{
		ID:                           string(d.ID),
		Name:                         d.names(),
		Description:                  d.descriptions(),
		PhoneNumber:                  d.PhoneNumber,
		Website:                      d.Website,
		NumberOfMonthlyBeneficiaries: d.NumberOfMonthlyBeneficiaries,
		TypeRef:                      d.Type,
	}
}

type typeDoc struct {
	localizedDoc
	ID     flexID `json:"id"`
	Number int    `json:"number"`
	Icon   string `json:"icon"`
}

type areaDoc struct {
	localizedDoc
	ID     flexID `json:"id"`
	Parent string `json:"parent"`
}
