package dto

// DashboardResponse usage statistics for the admin dashboard.
type DashboardResponse struct {
	TotalAccounts int `json:"total_accounts"`
	Pending       int `json:"pending"`
	Active        int `json:"active"`
	Disabled      int `json:"disabled"`
	Rejected      int `json:"rejected"`
	// ExpiringSoon counts active subscriptions inside the warning window.
	ExpiringSoon int `json:"expiring_soon"`
}

// AccountListResponse paginated account listing.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}
