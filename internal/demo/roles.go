// Package demo synthesizes statistically plausible meeting calendars per
// professional role, for users who want to see the dashboard without
// connecting a real calendar.
package demo

import (
	"fmt"

	"github.com/cleberrangel/meeting-cost-api/internal/model"
)

// Role identifies one of the supported demo profiles. The set is closed.
type Role string

const (
	RoleSoftwareEngineer Role = "software-engineer"
	RoleStaffEngineer    Role = "staff-engineer"
	RoleProductManager   Role = "product-manager"
	RoleDesigner         Role = "designer"
	RoleDirector         Role = "director"
	RoleCLevel           Role = "c-level"
)

// IntRange is a closed integer interval.
type IntRange struct {
	Min, Max int
}

// DurationRange is a closed interval of decimal hours. SkewLong marks roles
// that occasionally run a meeting one hour longer than the nominal range.
type DurationRange struct {
	Min, Max float64
	SkewLong bool
}

// AttendeeRange is a closed integer interval. SkewLarge marks roles that
// occasionally double the room size.
type AttendeeRange struct {
	Min, Max  int
	SkewLarge bool
}

// Profile is the static per-role tuning that drives generation. More senior
// roles get denser calendars, bigger rooms and higher nominal rates.
type Profile struct {
	Label          string
	Titles         []string
	MeetingsPerDay IntRange
	Duration       DurationRange
	Attendees      AttendeeRange
	// Probability [0,1] that a generated meeting is recurring
	RecurringChance float64
	// Representative hourly rate; consumers seed Settings.HourlyRate with it
	HourlyRate float64
}

// roleOrder fixes the enumeration order for listings.
var roleOrder = []Role{
	RoleSoftwareEngineer,
	RoleStaffEngineer,
	RoleProductManager,
	RoleDesigner,
	RoleDirector,
	RoleCLevel,
}

var profiles = map[Role]Profile{
	RoleSoftwareEngineer: {
		Label:           "Software Engineer",
		Titles:          []string{"Daily Standup", "Sprint Planning", "Retrospective", "Pair Programming", "Team Sync", "Demo Day", "Architecture Review"},
		MeetingsPerDay:  IntRange{Min: 1, Max: 3},
		Duration:        DurationRange{Min: 0.5, Max: 1},
		Attendees:       AttendeeRange{Min: 3, Max: 8},
		RecurringChance: 0.9,
		HourlyRate:      150,
	},
	RoleStaffEngineer: {
		Label:           "Staff Engineer",
		Titles:          []string{"Architecture Review", "Tech Spec Review", "Cross-team Sync", "Leadership Sync", "Incident Review", "Mentoring", "System Design"},
		MeetingsPerDay:  IntRange{Min: 2, Max: 5},
		Duration:        DurationRange{Min: 0.5, Max: 1.5},
		Attendees:       AttendeeRange{Min: 2, Max: 12},
		RecurringChance: 0.6,
		HourlyRate:      300,
	},
	RoleProductManager: {
		Label:           "Product Manager",
		Titles:          []string{"Customer Interview", "Stakeholder Sync", "Roadmap Planning", "Design Review", "Engineering Sync", "Sales Sync", "Weekly Business Review"},
		MeetingsPerDay:  IntRange{Min: 4, Max: 8},
		Duration:        DurationRange{Min: 0.5, Max: 1},
		Attendees:       AttendeeRange{Min: 2, Max: 6},
		RecurringChance: 0.7,
		HourlyRate:      150,
	},
	RoleDesigner: {
		Label:           "Designer",
		Titles:          []string{"Design Critique", "User Testing", "Design System Sync", "Product Sync", "Handoff Meeting", "Creative Jam", "Sprint Planning"},
		MeetingsPerDay:  IntRange{Min: 2, Max: 5},
		Duration:        DurationRange{Min: 0.5, Max: 2, SkewLong: true},
		Attendees:       AttendeeRange{Min: 3, Max: 6},
		RecurringChance: 0.6,
		HourlyRate:      150,
	},
	RoleDirector: {
		Label:           "Director",
		Titles:          []string{"Department Strategy", "Budget Review", "Hiring Sync", "Management Weekly", "Board Prep", "All Hands", "Quarterly Planning"},
		MeetingsPerDay:  IntRange{Min: 5, Max: 9},
		Duration:        DurationRange{Min: 0.5, Max: 2},
		Attendees:       AttendeeRange{Min: 4, Max: 20, SkewLarge: true},
		RecurringChance: 0.8,
		HourlyRate:      500,
	},
	RoleCLevel: {
		Label:           "C-Level Exec",
		Titles:          []string{"Board Meeting", "Investor Call", "Executive Staff", "Strategic Partnership", "Press/Media", "All Hands", "Budget Committee"},
		MeetingsPerDay:  IntRange{Min: 4, Max: 10},
		Duration:        DurationRange{Min: 0.5, Max: 3, SkewLong: true},
		Attendees:       AttendeeRange{Min: 2, Max: 50, SkewLarge: true},
		RecurringChance: 0.5,
		HourlyRate:      700,
	},
}

// Roles returns every supported role in fixed order.
func Roles() []Role {
	out := make([]Role, len(roleOrder))
	copy(out, roleOrder)
	return out
}

// ParseRole validates a role string coming from the API.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := profiles[r]; !ok {
		return "", fmt.Errorf("%w: %q", model.ErrUnknownRole, s)
	}
	return r, nil
}

// GetProfile returns the profile for a role. It panics on unknown roles;
// callers validate with ParseRole first.
func GetProfile(r Role) Profile {
	p, ok := profiles[r]
	if !ok {
		panic(fmt.Sprintf("demo: unknown role %q", r))
	}
	return p
}

// Label returns the display label for a role.
func Label(r Role) string {
	return GetProfile(r).Label
}

// HourlyRate returns the representative hourly rate for a role, used to seed
// the dashboard settings.
func HourlyRate(r Role) float64 {
	return GetProfile(r).HourlyRate
}
