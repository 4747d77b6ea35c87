package access

// CapabilitySet is the fixed set of permission bits consumed by navigation
// and action gating. Field names mirror the document-store convention used
// by the web client, so the JSON form round-trips unchanged.
type CapabilitySet struct {
	ViewDashboard   bool `json:"canViewDashboard"`
	ManageOrders    bool `json:"canManageOrders"`
	ManageInventory bool `json:"canManageInventory"`
	ViewAnalytics   bool `json:"canViewAnalytics"`
	GenerateReports bool `json:"canGenerateReports"`
	ViewFeedback    bool `json:"canViewFeedback"`
	ApproveUsers    bool `json:"canApproveUsers"`
	ManageCafes     bool `json:"canManageCafes"`
}

// None reports whether every capability bit is false. A zero CapabilitySet
// is the deny-everything set used for loading, pending and signed-out
// states.
func (c CapabilitySet) None() bool {
	return c == CapabilitySet{}
}

// Fixed capability table. These values are the authoritative mapping; no
// other code re-derives role semantics.
var (
	staffCapabilities = CapabilitySet{
		ViewDashboard: true,
		ManageOrders:  true,
		ViewFeedback:  true,
	}

	adminCapabilities = CapabilitySet{
		ViewDashboard:   true,
		ManageOrders:    true,
		ManageInventory: true,
		ViewAnalytics:   true,
		GenerateReports: true,
		ViewFeedback:    true,
		ApproveUsers:    true,
	}

	superAdminCapabilities = CapabilitySet{
		ViewDashboard:   true,
		ManageOrders:    true,
		ManageInventory: true,
		ViewAnalytics:   true,
		GenerateReports: true,
		ViewFeedback:    true,
		ApproveUsers:    true,
		ManageCafes:     true,
	}
)
