package validation

import (
	"strings"
	"time"

	"github.com/moneymap/moneymap-backend/internal/api/request"
	"github.com/moneymap/moneymap-backend/internal/model"
)

func ValidateTrade(req request.TradeRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.PortfolioID); err != nil {
		errors["portfolioId"] = "portfolioId must be a valid UUID"
	}
	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}
	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateRecordTransaction(req request.RecordTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.AssetID); err != nil {
		errors["assetId"] = "assetId must be a valid UUID"
	}

	txType := model.TransactionType(req.Type)
	if !txType.Valid() {
		errors["type"] = "type must be a known transaction type"
	} else if txType == model.TransactionBuy || txType == model.TransactionSell {
		errors["type"] = "BUY and SELL orders must go through the trading endpoints"
	}

	if req.Quantity < 0 {
		errors["quantity"] = "quantity cannot be negative"
	}
	if req.PricePerUnit < 0 {
		errors["pricePerUnit"] = "pricePerUnit cannot be negative"
	}
	if req.Date != "" {
		if _, err := time.Parse("2006-01-02", req.Date); err != nil {
			errors["date"] = "date must be YYYY-MM-DD"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
