package validation

import (
	"regexp"
	"strings"

	"github.com/moneymap/moneymap-backend/internal/api/request"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidateCreateClient(req request.CreateClientRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.FirstName) == "" {
		errors["firstName"] = "firstName is required"
	} else if len(req.FirstName) > 100 {
		errors["firstName"] = "firstName must be 100 characters or less"
	}

	if strings.TrimSpace(req.LastName) == "" {
		errors["lastName"] = "lastName is required"
	} else if len(req.LastName) > 100 {
		errors["lastName"] = "lastName must be 100 characters or less"
	}

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	} else if !emailPattern.MatchString(req.Email) {
		errors["email"] = "email is not a valid address"
	}

	if req.CountryCode != "" && len(req.CountryCode) != 2 {
		errors["countryCode"] = "countryCode must be a 2-letter ISO code"
	}
	if req.PreferredCurrency != "" && len(req.PreferredCurrency) != 3 {
		errors["preferredCurrency"] = "preferredCurrency must be a 3-letter ISO code"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateClient(req request.UpdateClientRequest) error {
	errors := make(map[string]string)

	// Only validate provided fields
	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) == "" {
		errors["firstName"] = "firstName cannot be empty"
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) == "" {
		errors["lastName"] = "lastName cannot be empty"
	}
	if req.Email != nil && !emailPattern.MatchString(*req.Email) {
		errors["email"] = "email is not a valid address"
	}
	if req.CountryCode != nil && len(*req.CountryCode) != 2 {
		errors["countryCode"] = "countryCode must be a 2-letter ISO code"
	}
	if req.PreferredCurrency != nil && len(*req.PreferredCurrency) != 3 {
		errors["preferredCurrency"] = "preferredCurrency must be a 3-letter ISO code"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateWallet(req request.WalletRequest) error {
	if req.Amount <= 0 {
		return &Error{Fields: map[string]string{"amount": "amount must be positive"}}
	}
	return nil
}
