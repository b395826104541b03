package scheduling

import (
	"time"

	"github.com/m04kA/realty-intake-service/internal/domain"
)

// Choice значение поля формы и подпись для посетителя
type Choice struct {
	Value string
	Label string
}

// TimeSlots часы консультаций
var TimeSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
}

var ServiceTypes = []Choice{
	{Value: string(domain.ServiceBuy), Label: "Buying a Home"},
	{Value: string(domain.ServiceSell), Label: "Selling a Home"},
	{Value: string(domain.ServiceInvest), Label: "Investment Properties"},
	{Value: string(domain.ServiceRent), Label: "Rental Properties"},
	{Value: string(domain.ServiceConsultation), Label: "General Consultation"},
}

var PropertyTypes = []Choice{
	{Value: "single-family", Label: "Single Family Home"},
	{Value: "condo", Label: "Condominium"},
	{Value: "townhouse", Label: "Townhouse"},
	{Value: "multi-family", Label: "Multi-Family"},
	{Value: "commercial", Label: "Commercial"},
	{Value: "land", Label: "Land/Lot"},
}

var BudgetRanges = []string{
	"Under $500K", "$500K - $750K", "$750K - $1M",
	"$1M - $2M", "$2M - $5M", "Above $5M", "Not sure yet",
}

// IsBookableDate календарь не предлагает прошедшие дни и воскресенья
func IsBookableDate(date, today time.Time) bool {
	d := truncateDay(date)
	if d.Before(truncateDay(today)) {
		return false
	}
	return d.Weekday() != time.Sunday
}

// IsTimeSlot проверяет, что время есть в сетке консультаций
func IsTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
