// Package menu maps a role to the navigation its dashboard renders.
package menu

import (
	"strings"

	"madrese/auth-service/internal/model/user"
)

// DashboardPrefix 仪表盘路由前缀
const DashboardPrefix = "/dashboard"

// Entry is one sidebar item. Order within a role's list is significant.
type Entry struct {
	Label       string `json:"label"`
	Destination string `json:"destination"`
	Icon        string `json:"icon"`
}

// DashboardRoute is the single place where a role tag becomes a path segment.
func DashboardRoute(role string) string {
	return DashboardPrefix + "/" + strings.ReplaceAll(role, "_", "-")
}

func home(role user.Role) Entry {
	return Entry{Label: "خانه", Destination: DashboardRoute(string(role)), Icon: "home"}
}

var baseline = []Entry{
	{Label: "خانه", Destination: DashboardPrefix, Icon: "home"},
}

// For returns a fresh copy of role's menu; unknown roles get the baseline.
// Every list starts with home.
func For(role user.Role) []Entry {
	var entries []Entry

	switch role {
	case user.RoleStudent:
		entries = []Entry{
			home(role),
			{Label: "تکالیف", Destination: "/assignments", Icon: "book-open"},
			{Label: "نمرات", Destination: "/grades", Icon: "award"},
			{Label: "حضور و غیاب", Destination: "/attendance", Icon: "calendar-check"},
			{Label: "برنامه هفتگی", Destination: "/schedule", Icon: "calendar"},
			{Label: "پروفایل", Destination: "/profile", Icon: "user"},
		}
	case user.RoleTeacher:
		entries = []Entry{
			home(role),
			{Label: "کلاس‌ها", Destination: "/classes", Icon: "users"},
			{Label: "تکالیف", Destination: "/assignments", Icon: "book-open"},
			{Label: "ثبت نمره", Destination: "/grading", Icon: "edit"},
			{Label: "حضور و غیاب", Destination: "/attendance", Icon: "calendar-check"},
			{Label: "برنامه هفتگی", Destination: "/schedule", Icon: "calendar"},
			{Label: "پروفایل", Destination: "/profile", Icon: "user"},
		}
	case user.RoleCounselor:
		entries = []Entry{
			home(role),
			{Label: "دانش‌آموزان", Destination: "/students", Icon: "users"},
			{Label: "جلسات مشاوره", Destination: "/counseling", Icon: "message-circle"},
			{Label: "گزارش‌ها", Destination: "/reports", Icon: "bar-chart"},
			{Label: "پروفایل", Destination: "/profile", Icon: "user"},
		}
	case user.RoleEducationalDeputy:
		entries = []Entry{
			home(role),
			{Label: "معلمان", Destination: "/teachers", Icon: "briefcase"},
			{Label: "کلاس‌ها", Destination: "/classes", Icon: "users"},
			{Label: "برنامه هفتگی", Destination: "/schedule", Icon: "calendar"},
			{Label: "نمرات", Destination: "/grades", Icon: "award"},
			{Label: "گزارش‌ها", Destination: "/reports", Icon: "bar-chart"},
			{Label: "پروفایل", Destination: "/profile", Icon: "user"},
		}
	case user.RoleLiaisonOffice:
		entries = []Entry{
			home(role),
			{Label: "ارسال پیامک", Destination: "/sms", Icon: "send"},
			{Label: "اولیا", Destination: "/parents", Icon: "users"},
			{Label: "اطلاعیه‌ها", Destination: "/announcements", Icon: "bell"},
			{Label: "پروفایل", Destination: "/profile", Icon: "user"},
		}
	case user.RoleParent:
		entries = []Entry{
			home(role),
			{Label: "فرزندان", Destination: "/children", Icon: "users"},
			{Label: "نمرات", Destination: "/grades", Icon: "award"},
			{Label: "حضور و غیاب", Destination: "/attendance", Icon: "calendar-check"},
			{Label: "پیام‌ها", Destination: "/messages", Icon: "mail"},
			{Label: "پروفایل", Destination: "/profile", Icon: "user"},
		}
	case user.RolePrincipal:
		entries = []Entry{
			home(role),
			{Label: "کارکنان", Destination: "/staff", Icon: "briefcase"},
			{Label: "دانش‌آموزان", Destination: "/students", Icon: "users"},
			{Label: "کلاس‌ها", Destination: "/classes", Icon: "layers"},
			{Label: "گزارش‌ها", Destination: "/reports", Icon: "bar-chart"},
			{Label: "ارسال پیامک", Destination: "/sms", Icon: "send"},
			{Label: "تنظیمات", Destination: "/settings", Icon: "settings"},
			{Label: "پروفایل", Destination: "/profile", Icon: "user"},
		}
	case user.RoleVicePrincipal:
		entries = []Entry{
			home(role),
			{Label: "دانش‌آموزان", Destination: "/students", Icon: "users"},
			{Label: "حضور و غیاب", Destination: "/attendance", Icon: "calendar-check"},
			{Label: "انضباط", Destination: "/discipline", Icon: "shield"},
			{Label: "گزارش‌ها", Destination: "/reports", Icon: "bar-chart"},
			{Label: "پروفایل", Destination: "/profile", Icon: "user"},
		}
	default:
		entries = make([]Entry, len(baseline))
		copy(entries, baseline)
	}

	return entries
}

// ForString is For over an unparsed role tag.
func ForString(role string) []Entry {
	r, ok := user.ParseRole(role)
	if !ok {
		return For("")
	}
	return For(r)
}
