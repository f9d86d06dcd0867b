// FILE: internal/dto/procurement_dto.go
//
// Wire shapes of the procurement body as the analysis backend returns them.
// Field names are camelCase because the backend relays the EIS parser output
// verbatim. Ambiguous nested shapes (chronology events, delivery places) are
// kept raw here and normalized once in internal/procurement.
package dto

import "encoding/json"

type ContactPerson struct {
	LastName   *string `json:"lastName"`
	FirstName  *string `json:"firstName"`
	MiddleName *string `json:"middleName"`
}

type ResponsibleOrg struct {
	Role          *string        `json:"role"`
	FullName      string         `json:"fullName"`
	INN           string         `json:"inn"`
	KPP           string         `json:"kpp"`
	FactAddress   *string        `json:"factAddress"`
	ContactPerson *ContactPerson `json:"contactPerson"`
	ContactEmail  *string        `json:"contactEmail"`
	ContactPhone  *string        `json:"contactPhone"`
}

type ProcedureInfo struct {
	Start             *string `json:"start"`
	End               *string `json:"end"`
	SecondPartsDate   *string `json:"secondPartsDate"`
	SummarizingDate   *string `json:"summarizingDate"`
	DeliveryTermStart *string `json:"deliveryTermStart"`
	DeliveryTermEnd   *string `json:"deliveryTermEnd"`
}

type PurchaseObject struct {
	Number    int      `json:"number"`
	Name      string   `json:"name"`
	OKPD2     string   `json:"OKPD2"`
	OKPD2Name string   `json:"OKPD2Name"`
	KTRU      *string  `json:"KTRU"`
	OKEIName  *string  `json:"OKEIName"`
	Quantity  *float64 `json:"quantity"`
	Price     *float64 `json:"price"`
	Sum       *float64 `json:"sum"`
}

type PurchaseObjects struct {
	PurchaseObject    []PurchaseObject `json:"purchaseObject"`
	TotalSum          *float64         `json:"totalSum,omitempty"`
	QuantityUndefined string           `json:"quantityUndefined,omitempty"`
}

type Enforcement struct {
	ApplicationGuaranteeAmount      *float64 `json:"applicationGuaranteeAmount"`
	ApplicationGuaranteePart        *float64 `json:"applicationGuaranteePart"`
	ContractGuaranteeAmount         *float64 `json:"contractGuaranteeAmount"`
	ContractGuaranteePart           *float64 `json:"contractGuaranteePart"`
	ContractProvisionWarrantyAmount *float64 `json:"contractProvisionWarrantyAmount"`
	ContractProvisionWarrantyPart   *float64 `json:"contractProvisionWarrantyPart"`
}

type Customer struct {
	FullName                        string         `json:"fullName"`
	INN                             string         `json:"inn"`
	KPP                             string         `json:"kpp"`
	OGRN                            *string        `json:"ogrn"`
	FactualAddress                  *string        `json:"factualAddress"`
	PostalAddress                   *string        `json:"postalAddress"`
	ContactPerson                   *ContactPerson `json:"contactPerson"`
	Email                           *string        `json:"email"`
	Phone                           *string        `json:"phone"`
	Fax                             *string        `json:"fax"`
	IKZ                             *string        `json:"ikz"`
	TenderPlanPositionNumber        *string        `json:"tenderPlanPositionNumber"`
	CustomerMaxPrice                *float64       `json:"customerMaxPrice"`
	AdvanceSumPercents              *float64       `json:"advanceSumPercents"`
	SelfFunds                       *bool          `json:"selfFunds"`
	MustPublicDiscussion            *bool          `json:"mustPublicDiscussion"`
	TreasurySupportContractRequired *bool          `json:"treasurySupportContractRequired"`
	DeliveryTermStart               *string        `json:"deliveryTermStart"`
	DeliveryTermEnd                 *string        `json:"deliveryTermEnd"`
	// Array in recent snapshots, single object in older ones.
	DeliveryPlaces json.RawMessage `json:"deliveryPlaces"`
	Enforcement    Enforcement     `json:"enforcement"`
}

type Customers struct {
	Customer []Customer `json:"customer"`
}

type AddRequirement struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Content *string `json:"content"`
}

type Requirement struct {
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	Content         *string          `json:"content"`
	AddRequirements []AddRequirement `json:"addRequirements"`
}

type Requirements struct {
	Requirement []Requirement `json:"requirement"`
}

type Preference struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Value *string `json:"value"`
}

// "preferense" is the backend's spelling, kept as-is.
type Preferences struct {
	Preferense []Preference `json:"preferense"`
}

type Lot struct {
	LotNumber               int             `json:"lotNumber"`
	MaxPrice                *float64        `json:"maxPrice"`
	Currency                *string         `json:"currency"`
	PurchaseObjectsTotalSum *float64        `json:"purchaseObjectsTotalSum"`
	LotDrugPurchase         *bool           `json:"lotDrugPurchase"`
	LotSmp                  *bool           `json:"lotSmp"`
	LotSubContractors       *bool           `json:"lotSubContractors"`
	PurchaseObjects         PurchaseObjects `json:"purchaseObjects"`
	Customers               Customers       `json:"customers"`
	Requirements            Requirements    `json:"requirements"`
	Preferenses             Preferences     `json:"preferenses"`
}

type Lots struct {
	Lot []Lot `json:"lot"`
}

type Attachment struct {
	FileName       string  `json:"fileName"`
	DocDescription *string `json:"docDescription"`
	DocDate        *string `json:"docDate"`
	FileSize       *string `json:"fileSize"`
	DocKindCode    *string `json:"docKindCode"`
	DocKindName    *string `json:"docKindName,omitempty"`
	URL            *string `json:"url"`
}

type Attachments struct {
	Attachment []Attachment `json:"attachment"`
}

type DeadlineStatus struct {
	IsExpired   bool   `json:"isExpired"`
	HoursAgo    *int   `json:"hoursAgo"`
	HoursLeft   *int   `json:"hoursLeft"`
	DisplayText string `json:"displayText"`
}

type ComputedData struct {
	DocumentsCount            int               `json:"documentsCount"`
	PositionsCount            int               `json:"positionsCount"`
	DeadlineStatus            DeadlineStatus    `json:"deadlineStatus"`
	HasAdditionalRequirements bool              `json:"hasAdditionalRequirements"`
	Chronology                []json.RawMessage `json:"chronology"`
}

type ProcurementBody struct {
	PurchaseNumber     string         `json:"purchaseNumber"`
	PurchaseObjectInfo string         `json:"purchaseObjectInfo"`
	PlacingWay         string         `json:"placingWay"`
	ETP                string         `json:"ETP"`
	Stage              string         `json:"stage"`
	Region             *string        `json:"region"`
	Href               string         `json:"href"`
	Cancelled          bool           `json:"cancelled"`
	FullNMCK           *float64       `json:"fullNMCK"`
	DocPublishDate     *string        `json:"docPublishDate"`
	FirstPublishDate   *string        `json:"firstPublishDate"`
	ProcedureInfo      ProcedureInfo  `json:"procedureInfo"`
	ResponsibleOrg     ResponsibleOrg `json:"responsibleOrg"`
	Lots               Lots           `json:"lots"`
	Attachments        Attachments    `json:"attachments"`
	Computed           ComputedData   `json:"computed"`
}
