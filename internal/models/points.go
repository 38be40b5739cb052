package models

// ChargeRequest purchases points
type ChargeRequest struct {
	Amount           int    `json:"amount"`
	PaymentMethod    string `json:"paymentMethod"`
	PaymentReference string `json:"paymentReference"`
	Description      string `json:"description"`
}

// DeductRequest deducts points for a listing
type DeductRequest struct {
	Amount      int    `json:"amount"`
	ListingID   string `json:"listingId"`
	Description string `json:"description"`
}

// RefundRequest refunds a previous deduction. Amount defaults to the deducted amount.
type RefundRequest struct {
	Amount      int    `json:"amount"`
	ListingID   string `json:"listingId"`
	Description string `json:"description"`
}

// CostBreakdown is the itemised result of the listing cost formula
type CostBreakdown struct {
	BaseCost        int     `json:"baseCost"`
	TypeMultiplier  float64 `json:"typeMultiplier"`
	SizeFactor      float64 `json:"sizeFactor"`
	BedroomFactor   float64 `json:"bedroomFactor"`
	AmenitiesFactor float64 `json:"amenitiesFactor"`
	ImagesFactor    float64 `json:"imagesFactor"`
}

// CostResponse is returned by the cost calculation endpoint
type CostResponse struct {
	TotalCost int           `json:"totalCost"`
	Breakdown CostBreakdown `json:"breakdown"`
}

// CostQuote is the gate's view of whether a user can afford a cost
type CostQuote struct {
	Cost           int  `json:"requiredPoints"`
	CurrentBalance int  `json:"currentBalance"`
	Bypass         bool `json:"bypass"`
}

// DeductionResult describes the outcome of a deduction attempt
type DeductionResult struct {
	Charged     bool              `json:"charged"`
	Balance     int               `json:"balance"`
	Transaction *PointTransaction `json:"transaction,omitempty"`
}

// BalanceResponse summarises a user's ledger
type BalanceResponse struct {
	Balance            int                 `json:"balance"`
	TotalPurchased     int                 `json:"totalPurchased"`
	TotalUsed          int                 `json:"totalUsed"`
	TotalRefunded      int                 `json:"totalRefunded"`
	IsTrial            bool                `json:"isTrial"`
	HasUnlimitedPoints bool                `json:"hasUnlimitedPoints"`
	RecentTransactions []*PointTransaction `json:"recentTransactions"`
}

// TransactionPage is one page of a user's transaction history
type TransactionPage struct {
	Transactions []*PointTransaction `json:"transactions"`
	Page         int                 `json:"page"`
	Limit        int                 `json:"limit"`
	Total        int64               `json:"total"`
	TotalPages   int64               `json:"totalPages"`
}
