package store

import "strings"

// regionalMarker identifies regional branch departments, which are never shown
const regionalMarker = "tarmoqlarda"

var allowedDepartments = []string{
	"O'rta biznes markazi",
	"Agrosanoat klasterini moliyalashtirishni muvofiqlashtirish xizmati",
	"Aktivlar va passivlar xizmati",
	"Aloqa markazi",
	"Axborotlarni muhofaza qilish markazi",
	"Aholini moliyaviy qo'llab-quvvatlash va tadbirlarga jalb qilish xizmati",
	"Axborot texnologiyalari departamenti",
	"Bank kartalari tizimlarini qo'llab-quvvatlash departamenti",
	"Bank tarmoqlari faoliyatini muvofiqlashtirish departamenti",
	"Bankni strategik rivojlantirish departamenti",
	"Birinchi bo'lim",
	"Buxgalteriya hisobi va hisobot departamenti",
	"Ijroni boshqarish va rivojlanishni tahlil qilish departamenti",
	"Investitsion bank departamenti",
	"Ichki audit departamenti",
	"Ichki xavfsizlik departamenti",
	"Komplaens nazorat departamenti",
	"Korporativ biznes departamenti",
	"Korporativ boshqaruv xizmati",
	"Korporativ markaz",
	"Korrupsiyaga qarshi kurashish xizmati",
	"Kredit monitoringi va nazorati departamenti",
	"Kreditlarni ma'qullash departamenti",
	"Kreditlash departamenti",
	"Loyiha boshqaruvi ofisi",
	"Marketing departamenti",
	"Ma'lumotlarni boshqarish markazi",
	"Ma'muriy-xo'jalik departamenti",
	"Mikro va kichik biznes departamenti",
	"Moliya institutlari va investorlar bilan ishlash departamenti",
	"Moliyaviy menejment xizmati",
	"Operatsion departament",
	"Raqamli biznes departamenti",
	"Rahbariyat",
	"Risk menejment departamenti",
	"Sun'iy intellekt departamenti",
	"Tranzaksion bank departamenti",
	"Xalqaro moliyaviy hisobotlar va konsalting xizmati",
	"Xaridlarni tashkil etish xizmati",
	"Xodimlar va tashkiliy rivojlantirish departamenti",
	"Chakana biznes departamenti",
	"Yuridik departament",
	"Yakuniy nazorat xizmati",
	"Kredit qarzdorliklari bilan ishlash departamenti",
	"G'aznachilik departamenti",
	"Qurilish materiallari sanoatini rivojlantirish departamenti",
	"Sustainable Finance departamenti",
}

var normalizedDepartments = func() []string {
	out := make([]string, len(allowedDepartments))
	for i, d := range allowedDepartments {
		out[i] = normalizeDepartment(d)
	}
	return out
}()

// DepartmentAllowed reports whether people from dept appear on the panel.
// A department matches when it contains an allow-listed name or is contained in one.
func DepartmentAllowed(dept string) bool {
	d := normalizeDepartment(dept)
	if strings.Contains(d, regionalMarker) {
		return false
	}

	for _, allowed := range normalizedDepartments {
		if strings.Contains(d, allowed) || strings.Contains(allowed, d) {
			return true
		}
	}
	return false
}

func normalizeDepartment(dept string) string {
	return strings.ToLower(strings.TrimSpace(dept))
}
