package validation

import (
	"strings"
	"time"

	"github.com/moneymap/moneymap-backend/internal/api/request"
	"github.com/moneymap/moneymap-backend/internal/model"
)

// detailFieldsByType maps each asset type to the detail fields it owns.
// A request setting a field outside its declared type is rejected.
func foreignDetailFields(t model.AssetType, d request.AssetDetails) []string {
	var foreign []string

	stock := d.Exchange != "" || d.Sector != "" || d.DividendYield != 0 || d.FractionalAllowed
	crypto := d.Blockchain != "" || d.WalletAddress != "" || d.StakingApy != 0
	gold := d.Purity != "" || d.WeightInGrams != 0 || d.StorageType != ""
	fund := d.FundHouse != "" || d.FundCode != "" || d.ExpenseRatio != 0

	if stock && t != model.AssetTypeStock {
		foreign = append(foreign, "stock fields")
	}
	if crypto && t != model.AssetTypeCrypto {
		foreign = append(foreign, "crypto fields")
	}
	if gold && t != model.AssetTypeGold {
		foreign = append(foreign, "gold fields")
	}
	if fund && t != model.AssetTypeMutualFund {
		foreign = append(foreign, "mutual fund fields")
	}
	return foreign
}

func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.PortfolioID); err != nil {
		errors["portfolioId"] = "portfolioId must be a valid UUID"
	}

	assetType := model.AssetType(req.Type)
	if !assetType.Valid() {
		errors["type"] = "type must be one of STOCK, CRYPTO, GOLD, MUTUAL_FUND"
	}

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if req.Quantity < 0 {
		errors["quantity"] = "quantity cannot be negative"
	}
	if req.PurchasePrice < 0 {
		errors["purchasePrice"] = "purchasePrice cannot be negative"
	}

	if req.PurchaseDate == "" {
		errors["purchaseDate"] = "purchaseDate is required"
	} else if date, err := time.Parse("2006-01-02", req.PurchaseDate); err != nil {
		errors["purchaseDate"] = "purchaseDate must be YYYY-MM-DD"
	} else if date.After(time.Now()) {
		errors["purchaseDate"] = "purchaseDate cannot be in the future"
	}

	if assetType.Valid() {
		if foreign := foreignDetailFields(assetType, req.Details); len(foreign) > 0 {
			errors["details"] = "details contain " + strings.Join(foreign, ", ") + " not belonging to type " + req.Type
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateAsset(req request.UpdateAssetRequest) error {
	errors := make(map[string]string)

	// Only validate provided fields
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		errors["quantity"] = "quantity cannot be negative"
	}
	if req.PurchasePrice != nil && *req.PurchasePrice < 0 {
		errors["purchasePrice"] = "purchasePrice cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// BuildAssetDetails converts the flat request payload into the typed variant
// for the declared asset type. Call after ValidateCreateAsset has passed.
func BuildAssetDetails(t model.AssetType, d request.AssetDetails) model.AssetDetails {
	switch t {
	case model.AssetTypeStock:
		return model.StockDetails{
			Exchange:          d.Exchange,
			Sector:            d.Sector,
			DividendYield:     d.DividendYield,
			FractionalAllowed: d.FractionalAllowed,
		}
	case model.AssetTypeCrypto:
		return model.CryptoDetails{
			Blockchain:    d.Blockchain,
			WalletAddress: d.WalletAddress,
			StakingApy:    d.StakingApy,
		}
	case model.AssetTypeGold:
		return model.GoldDetails{
			Purity:        d.Purity,
			WeightInGrams: d.WeightInGrams,
			StorageType:   d.StorageType,
		}
	case model.AssetTypeMutualFund:
		return model.MutualFundDetails{
			FundHouse:    d.FundHouse,
			FundCode:     d.FundCode,
			ExpenseRatio: d.ExpenseRatio,
		}
	default:
		return nil
	}
}
