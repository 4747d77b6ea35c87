// Package navigation derives the visible dashboard sections from a resolved
// capability set. It holds a fixed ordered catalog; each section is gated by
// exactly one capability bit and the package never re-derives role logic of
// its own.
package navigation

import "github.com/smartcafe/cafehub/pkg/access"

// Section is one top-level dashboard entry.
type Section struct {
	Name string `json:"name"`
	Path string `json:"path"`

	gate      func(access.CapabilitySet) bool
	adminOnly bool
}

// catalog is the authoritative section order. The user-management entry is
// additionally restricted to administrators on top of its capability bit.
var catalog = []Section{
	{Name: "Dashboard", Path: "/dashboard", gate: func(c access.CapabilitySet) bool { return c.ViewDashboard }},
	{Name: "Orders", Path: "/orders", gate: func(c access.CapabilitySet) bool { return c.ManageOrders }},
	{Name: "Inventory", Path: "/inventory", gate: func(c access.CapabilitySet) bool { return c.ManageInventory }},
	{Name: "Analytics", Path: "/analytics", gate: func(c access.CapabilitySet) bool { return c.ViewAnalytics }},
	{Name: "Reports", Path: "/reports", gate: func(c access.CapabilitySet) bool { return c.GenerateReports }},
	{Name: "Feedback", Path: "/feedback", gate: func(c access.CapabilitySet) bool { return c.ViewFeedback }},
	{Name: "User Management", Path: "/users", gate: func(c access.CapabilitySet) bool { return c.ApproveUsers }, adminOnly: true},
	{Name: "Cafés", Path: "/cafes", gate: func(c access.CapabilitySet) bool { return c.ManageCafes }},
}

// Visible returns the catalog sub-sequence whose gating capability is set,
// preserving catalog order. A zero capability set (loading, pending,
// signed out) yields no sections.
func Visible(caps access.CapabilitySet, isAdmin bool) []Section {
	out := make([]Section, 0, len(catalog))
	for _, s := range catalog {
		if !s.gate(caps) {
			continue
		}
		if s.adminOnly && !isAdmin {
			continue
		}
		out = append(out, s)
	}
	return out
}
