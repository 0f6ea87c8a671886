package model

// Asset is a tracked hardware or software item. Dates are kept as the
// strings the client sent; CreatedAt is an ISO-8601 timestamp set by the server.
type Asset struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number"`
	Category     string `json:"category"`
	Location     string `json:"location"`
	User         string `json:"user"`
	UserEmail    string `json:"user_email"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	LoanDate     string `json:"loan_date"`
	WarrantyDate string `json:"warranty_date"`
	PurchaseDate string `json:"purchase_date"`
	HasImage     bool   `json:"has_image"`
}

// Asset statuses. The set is open-ended; these are the ones the server
// itself interprets.
const (
	AssetStatusInUse    = "In Use"
	AssetStatusDisposed = "Disposed"
)

// TimestampLayout is the layout of Asset.CreatedAt and User.CreatedAt.
// Lexicographic order of such strings is chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// DateLayout is the layout of loan, warranty and purchase dates.
const DateLayout = "2006-01-02"
