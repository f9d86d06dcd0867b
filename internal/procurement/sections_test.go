package procurement

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement-dashboard-be/internal/analysis"
	"procurement-dashboard-be/internal/dto"
	"procurement-dashboard-be/internal/format"
)

func testBody() *dto.ProcurementBody {
	nmck := 1000000.0
	part := 1.0
	end := "15.03.2025 15:00"
	smp := true
	return &dto.ProcurementBody{
		PurchaseNumber:     "0373100000125000001",
		PurchaseObjectInfo: "Поставка канцелярских товаров",
		PlacingWay:         "Электронный аукцион",
		ETP:                "Сбербанк-АСТ",
		Stage:              "Подача заявок",
		Href:               "https://zakupki.gov.ru/epz/order/notice/ea20/view/common-info.html?regNumber=0373100000125000001",
		FullNMCK:           &nmck,
		ProcedureInfo:      dto.ProcedureInfo{End: &end},
		Lots: dto.Lots{Lot: []dto.Lot{{
			LotNumber: 1,
			MaxPrice:  &nmck,
			LotSmp:    &smp,
			Customers: dto.Customers{Customer: []dto.Customer{{
				FullName:       "ГБУ Заказчик",
				INN:            "7701234567",
				KPP:            "770101001",
				DeliveryPlaces: json.RawMessage(`[{"deliveryPlace":"г. Москва"}]`),
				Enforcement: dto.Enforcement{
					ApplicationGuaranteePart: &part,
				},
			}}},
		}}},
		Computed: dto.ComputedData{
			Chronology: []json.RawMessage{
				json.RawMessage(`{"event":"Размещение извещения","date":"01.02.2025"}`),
			},
		},
	}
}

func TestBuildOverviewDerivesGuaranteeFromPart(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	v, err := BuildSection(SectionOverview, testBody(), DefaultUIState(), now)
	require.NoError(t, err)

	overview := v.(*OverviewView)
	assert.Equal(t, "осталось 5 дн. 3 ч.", overview.DeadlineInfo)

	kpis := map[string]string{}
	for _, k := range overview.KPIs {
		kpis[k.Label] = k.Value
	}
	assert.Equal(t, "1 000 000 ₽", kpis["НМЦК"])
	// 1% of the lot price.
	assert.Equal(t, "10 000 ₽", kpis["Обеспечение заявки"])
	assert.Equal(t, format.Placeholder, kpis["Обеспечение контракта"])
	assert.Equal(t, format.Placeholder, kpis["Регион"])
}

func TestBuildOverviewCancelled(t *testing.T) {
	body := testBody()
	body.Cancelled = true
	v, err := BuildSection(SectionOverview, body, DefaultUIState(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, format.CancelledLabel, v.(*OverviewView).DeadlineInfo)
}

func TestBuildLotsNormalizesDeliveryPlaces(t *testing.T) {
	v, err := BuildSection(SectionLots, testBody(), DefaultUIState(), time.Now())
	require.NoError(t, err)

	lots := v.(*LotsView)
	require.Len(t, lots.Lots, 1)
	assert.Equal(t, []string{"г. Москва"}, lots.Lots[0].DeliveryPlaces)
	assert.Equal(t, "Да", lots.Lots[0].SMP)
	assert.True(t, lots.Lots[0].Active)
}

func TestUnknownSectionRejected(t *testing.T) {
	_, err := BuildSection(SectionID("bogus"), testBody(), DefaultUIState(), time.Now())
	assert.Error(t, err)
	assert.False(t, KnownSection(SectionID("bogus")))
	assert.True(t, KnownSection(SectionRSS))
}

func TestActiveLotClamped(t *testing.T) {
	state := UIState{ActiveSection: SectionContacts, ActiveLot: 99}
	v, err := BuildSection(SectionContacts, testBody(), state, time.Now())
	require.NoError(t, err)

	contacts := v.(*ContactsView)
	require.Len(t, contacts.Customers, 1)
	assert.Equal(t, "ГБУ Заказчик", contacts.Customers[0].Organization)
}

func sidebarByID(items []SidebarItem) map[SectionID]SidebarItem {
	byID := map[SectionID]SidebarItem{}
	for _, it := range items {
		byID[it.ID] = it
	}
	return byID
}

func TestSidebarCountsAndActiveFlag(t *testing.T) {
	state := UIState{ActiveSection: SectionChronology}
	byID := sidebarByID(Sidebar(testBody(), state, analysis.ResolveBanner(nil, false)))

	require.NotNil(t, byID[SectionLots].Count)
	assert.Equal(t, 1, *byID[SectionLots].Count)
	require.NotNil(t, byID[SectionChronology].Count)
	assert.Equal(t, 1, *byID[SectionChronology].Count)
	assert.True(t, byID[SectionChronology].Active)
	assert.True(t, byID[SectionChronology].Enabled)
	assert.False(t, byID[SectionOverview].Active)
}

func TestSidebarAnalysisEntryMirrorsBanner(t *testing.T) {
	state := DefaultUIState()

	// no dispatched task: entry present but disabled
	byID := sidebarByID(Sidebar(testBody(), state, analysis.ResolveBanner(nil, false)))
	entry, ok := byID[SectionAnalysis]
	require.True(t, ok)
	assert.Equal(t, "ИИ анализ", entry.Title)
	assert.False(t, entry.Enabled)
	assert.Equal(t, string(analysis.BannerNotStarted), entry.Status)

	// running task: enabled, status carries the job progress
	running := analysis.ResolveBanner(&dto.TaskStatus{AnalysisStatus: dto.StatusRunning}, true)
	entry = sidebarByID(Sidebar(testBody(), state, running))[SectionAnalysis]
	assert.True(t, entry.Enabled)
	assert.Equal(t, string(analysis.BannerRunning), entry.Status)

	// navigation-only: not a body section
	assert.False(t, KnownSection(SectionAnalysis))
}
