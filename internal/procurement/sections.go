// FILE: internal/procurement/sections.go
//
// Section view models for the procurement detail screen. Dispatch is a
// lookup table keyed by section id; adding a section means adding one
// builder, nothing else changes.
package procurement

import (
	"fmt"
	"time"

	"procurement-dashboard-be/internal/analysis"
	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/format"
)

type SectionID string

const (
	SectionOverview     SectionID = "overview"
	SectionLots         SectionID = "lots"
	SectionRequirements SectionID = "requirements"
	SectionDocuments    SectionID = "documents"
	SectionContacts     SectionID = "contacts"
	SectionChronology   SectionID = "chronology"
	SectionRSS          SectionID = "rss"

	// SectionAnalysis is navigation-only: it leads to the rule report, not
	// to a body section, so it has no builder and KnownSection rejects it.
	SectionAnalysis SectionID = "analysis"
)

// UIState tracks where the reader is inside the detail screen.
type UIState struct {
	ActiveSection SectionID `json:"active_section"`
	ActiveLot     int       `json:"active_lot"`
}

func DefaultUIState() UIState {
	return UIState{ActiveSection: SectionOverview, ActiveLot: 0}
}

type builder func(body *dto.ProcurementBody, state UIState, now time.Time) interface{}

// The RSS section has no builder here: its data comes from the portal feed,
// not the procurement body, so the service assembles it.
var builders = map[SectionID]builder{
	SectionOverview:     buildOverview,
	SectionLots:         buildLots,
	SectionRequirements: buildRequirements,
	SectionDocuments:    buildDocuments,
	SectionContacts:     buildContacts,
	SectionChronology:   buildChronology,
}

// KnownSection reports whether the id names a detail-screen section,
// including the feed-backed one.
func KnownSection(id SectionID) bool {
	if id == SectionRSS {
		return true
	}
	_, ok := builders[id]
	return ok
}

// BuildSection assembles the view model for one section of the body.
func BuildSection(id SectionID, body *dto.ProcurementBody, state UIState, now time.Time) (interface{}, error) {
	b, ok := builders[id]
	if !ok {
		return nil, fmt.Errorf("unknown section %q", id)
	}
	return b(body, state, now), nil
}

// --- Sidebar ---

type SidebarItem struct {
	ID      SectionID `json:"id"`
	Title   string    `json:"title"`
	Count   *int      `json:"count,omitempty"`
	Active  bool      `json:"active"`
	Enabled bool      `json:"enabled"`
	Status  string    `json:"status,omitempty"`
}

// Sidebar lists the detail-screen sections plus the analysis entry, whose
// enabled flag and status mirror the report banner: the user sees job
// progress without leaving the current section.
func Sidebar(body *dto.ProcurementBody, state UIState, banner analysis.Banner) []SidebarItem {
	lots := len(body.Lots.Lot)
	docs := body.Computed.DocumentsCount
	if docs == 0 {
		docs = len(body.Attachments.Attachment)
	}
	chron := len(body.Computed.Chronology)

	items := []SidebarItem{
		{ID: SectionOverview, Title: "Обзор"},
		{ID: SectionLots, Title: "Лоты", Count: &lots},
		{ID: SectionRequirements, Title: "Требования"},
		{ID: SectionDocuments, Title: "Документы", Count: &docs},
		{ID: SectionContacts, Title: "Контакты"},
		{ID: SectionChronology, Title: "Хронология", Count: &chron},
		{ID: SectionRSS, Title: "События размещения"},
	}
	for i := range items {
		items[i].Active = items[i].ID == state.ActiveSection
		items[i].Enabled = true
	}

	items = append(items, SidebarItem{
		ID:      SectionAnalysis,
		Title:   "ИИ анализ",
		Enabled: banner.State != analysis.BannerNotStarted,
		Status:  string(banner.State),
	})
	return items
}

// --- Overview ---

type OverviewKPI struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type OverviewView struct {
	Title        string        `json:"title"`
	PurchaseID   string        `json:"purchase_id"`
	Stage        string        `json:"stage"`
	Cancelled    bool          `json:"cancelled"`
	DeadlineInfo string        `json:"deadline_info"`
	PortalURL    string        `json:"portal_url"`
	KPIs         []OverviewKPI `json:"kpis"`
}

func buildOverview(body *dto.ProcurementBody, state UIState, now time.Time) interface{} {
	lot := activeLot(body, state)

	var enforcement *dto.Enforcement
	var lotPrice *float64
	if lot != nil {
		lotPrice = lot.MaxPrice
		if customer := PrimaryCustomer(lot); customer != nil {
			enforcement = &customer.Enforcement
		}
	}
	nmck := body.FullNMCK
	if nmck == nil {
		nmck = lotPrice
	}
	if lotPrice == nil {
		lotPrice = nmck
	}

	kpis := []OverviewKPI{
		{Label: "НМЦК", Value: format.Currency(nmck)},
		{Label: "Способ размещения", Value: body.PlacingWay},
		{Label: "Электронная площадка", Value: body.ETP},
		{Label: "Регион", Value: format.Text(body.Region)},
		{Label: "Дата публикации", Value: format.Date(body.FirstPublishDate)},
		{Label: "Окончание подачи заявок", Value: format.DateTime(body.ProcedureInfo.End)},
	}
	if enforcement != nil {
		kpis = append(kpis,
			OverviewKPI{
				Label: "Обеспечение заявки",
				Value: format.Currency(GuaranteeAmount(
					enforcement.ApplicationGuaranteeAmount,
					enforcement.ApplicationGuaranteePart,
					lotPrice)),
			},
			OverviewKPI{
				Label: "Обеспечение контракта",
				Value: format.Currency(GuaranteeAmount(
					enforcement.ContractGuaranteeAmount,
					enforcement.ContractGuaranteePart,
					lotPrice)),
			},
		)
	}

	return &OverviewView{
		Title:        body.PurchaseObjectInfo,
		PurchaseID:   body.PurchaseNumber,
		Stage:        body.Stage,
		Cancelled:    body.Cancelled,
		DeadlineInfo: format.Deadline(body.ProcedureInfo.End, body.Cancelled, now),
		PortalURL:    body.Href,
		KPIs:         kpis,
	}
}

// --- Lots ---

type PositionView struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	OKPD2    string `json:"okpd2"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Price    string `json:"price"`
	Sum      string `json:"sum"`
}

type LotView struct {
	LotNumber      int            `json:"lot_number"`
	MaxPrice       string         `json:"max_price"`
	DrugPurchase   string         `json:"drug_purchase"`
	SMP            string         `json:"smp"`
	SubContractors string         `json:"sub_contractors"`
	DeliveryPlaces []string       `json:"delivery_places"`
	Positions      []PositionView `json:"positions"`
	Active         bool           `json:"active"`
}

type LotsView struct {
	ActiveLot int      `json:"active_lot"`
	Lots      []LotView `json:"lots"`
}

func buildLots(body *dto.ProcurementBody, state UIState, _ time.Time) interface{} {
	view := &LotsView{ActiveLot: state.ActiveLot, Lots: make([]LotView, 0, len(body.Lots.Lot))}
	for i, lot := range body.Lots.Lot {
		lv := LotView{
			LotNumber:      lot.LotNumber,
			MaxPrice:       format.Currency(lot.MaxPrice),
			DrugPurchase:   format.YesNo(lot.LotDrugPurchase),
			SMP:            format.YesNo(lot.LotSmp),
			SubContractors: format.YesNo(lot.LotSubContractors),
			Active:         i == state.ActiveLot,
		}
		if customer := PrimaryCustomer(&body.Lots.Lot[i]); customer != nil {
			lv.DeliveryPlaces = NormalizeDeliveryPlaces(customer.DeliveryPlaces)
		}
		for _, p := range lot.PurchaseObjects.PurchaseObject {
			lv.Positions = append(lv.Positions, PositionView{
				Number:   p.Number,
				Name:     p.Name,
				OKPD2:    p.OKPD2,
				Quantity: format.Number(p.Quantity),
				Unit:     format.Text(p.OKEIName),
				Price:    format.Currency(p.Price),
				Sum:      format.Currency(p.Sum),
			})
		}
		view.Lots = append(view.Lots, lv)
	}
	return view
}

// --- Requirements ---

type RequirementView struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Content string   `json:"content"`
	Extra   []string `json:"extra,omitempty"`
}

type RequirementsView struct {
	HasAdditional bool              `json:"has_additional"`
	Requirements  []RequirementView `json:"requirements"`
	Preferences   []RequirementView `json:"preferences"`
}

func buildRequirements(body *dto.ProcurementBody, state UIState, _ time.Time) interface{} {
	view := &RequirementsView{HasAdditional: body.Computed.HasAdditionalRequirements}
	lot := activeLot(body, state)
	if lot == nil {
		return view
	}

	for _, r := range lot.Requirements.Requirement {
		rv := RequirementView{Code: r.Code, Name: r.Name, Content: format.Text(r.Content)}
		for _, add := range r.AddRequirements {
			rv.Extra = append(rv.Extra, add.Name+": "+format.Text(add.Content))
		}
		view.Requirements = append(view.Requirements, rv)
	}
	for _, p := range lot.Preferenses.Preferense {
		view.Preferences = append(view.Preferences, RequirementView{
			Code: p.Code, Name: p.Name, Content: format.Text(p.Value),
		})
	}
	return view
}

// --- Documents ---

type DocumentView struct {
	FileName    string `json:"file_name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Size        string `json:"size"`
	Kind        string `json:"kind"`
	URL         string `json:"url"`
}

type DocumentsView struct {
	Count     int            `json:"count"`
	Documents []DocumentView `json:"documents"`
}

func buildDocuments(body *dto.ProcurementBody, _ UIState, _ time.Time) interface{} {
	attachments := body.Attachments.Attachment
	view := &DocumentsView{Count: len(attachments)}
	for _, a := range attachments {
		view.Documents = append(view.Documents, DocumentView{
			FileName:    a.FileName,
			Description: format.Text(a.DocDescription),
			Date:        format.Date(a.DocDate),
			Size:        attachmentSize(a.FileSize),
			Kind:        format.Text(a.DocKindName),
			URL:         format.Text(a.URL),
		})
	}
	return view
}

// attachmentSize handles the portal's stringly-typed byte count.
func attachmentSize(s *string) string {
	if s == nil {
		return format.Placeholder
	}
	var n int64
	if _, err := fmt.Sscanf(*s, "%d", &n); err != nil {
		// Already human-readable ("1.5 МБ" style), pass through.
		return *s
	}
	return format.FileSize(&n)
}

// --- Contacts ---

type ContactView struct {
	Organization string `json:"organization"`
	Role         string `json:"role"`
	INN          string `json:"inn"`
	KPP          string `json:"kpp"`
	Address      string `json:"address"`
	Person       string `json:"person"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

type ContactsView struct {
	Responsible ContactView   `json:"responsible"`
	Customers   []ContactView `json:"customers"`
}

func buildContacts(body *dto.ProcurementBody, state UIState, _ time.Time) interface{} {
	org := body.ResponsibleOrg
	view := &ContactsView{
		Responsible: ContactView{
			Organization: org.FullName,
			Role:         format.Text(org.Role),
			INN:          org.INN,
			KPP:          org.KPP,
			Address:      format.Text(org.FactAddress),
			Person:       personName(org.ContactPerson),
			Email:        format.Text(org.ContactEmail),
			Phone:        contactPhone(org.ContactPhone),
		},
	}

	if lot := activeLot(body, state); lot != nil {
		for _, c := range lot.Customers.Customer {
			view.Customers = append(view.Customers, ContactView{
				Organization: c.FullName,
				INN:          c.INN,
				KPP:          c.KPP,
				Address:      format.Text(c.FactualAddress),
				Person:       personName(c.ContactPerson),
				Email:        format.Text(c.Email),
				Phone:        contactPhone(c.Phone),
			})
		}
	}
	return view
}

func personName(p *dto.ContactPerson) string {
	if p == nil {
		return format.Placeholder
	}
	parts := make([]string, 0, 3)
	for _, s := range []*string{p.LastName, p.FirstName, p.MiddleName} {
		if s != nil && *s != "" {
			parts = append(parts, *s)
		}
	}
	if len(parts) == 0 {
		return format.Placeholder
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return out
}

func contactPhone(p *string) string {
	if p == nil || *p == "" {
		return format.Placeholder
	}
	return format.Phone(*p)
}

// --- Chronology ---

type ChronologyView struct {
	Events []ChronologyEvent `json:"events"`
}

func buildChronology(body *dto.ProcurementBody, _ UIState, _ time.Time) interface{} {
	return &ChronologyView{Events: NormalizeChronology(body.Computed.Chronology)}
}

// activeLot clamps the selection so a stale lot index never panics.
func activeLot(body *dto.ProcurementBody, state UIState) *dto.Lot {
	lots := body.Lots.Lot
	if len(lots) == 0 {
		return nil
	}
	i := state.ActiveLot
	if i < 0 || i >= len(lots) {
		i = 0
	}
	return &lots[i]
}
