package request

// CreateClientRequest represents the request body for registering a client
type CreateClientRequest struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	City              string `json:"city"`
	CountryCode       string `json:"countryCode"`
	PreferredCurrency string `json:"preferredCurrency"`
}

type UpdateClientRequest struct {
	FirstName         *string `json:"firstName,omitempty"`
	LastName          *string `json:"lastName,omitempty"`
	Email             *string `json:"email,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Address           *string `json:"address,omitempty"`
	City              *string `json:"city,omitempty"`
	CountryCode       *string `json:"countryCode,omitempty"`
	PreferredCurrency *string `json:"preferredCurrency,omitempty"`
	Active            *bool   `json:"active,omitempty"`
}

// WalletRequest represents a deposit or withdrawal against a client's wallet
type WalletRequest struct {
	Amount float64 `json:"amount"`
}
