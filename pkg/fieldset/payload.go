package fieldset

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-walletforms/pkg/validators"
)

// KYC statuses accepted by the customer update endpoint.
const (
	KycUnknown    = "UNKNOWN"
	KycUnverified = "UNVERIFIED"
	KycVerified   = "VERIFIED"
	KycContracted = "CONTRACTED"
)

var (
	// ErrInvalidNationalID is returned when the national id is not a whole
	// number.
	ErrInvalidNationalID = errors.New("fieldset: national id is not numeric")
	// ErrInvalidLimit is returned when a wallet limit is not a number.
	ErrInvalidLimit = errors.New("fieldset: wallet limit is not numeric")
	// ErrLimitMismatch is returned when the daily limit is not below the
	// monthly limit.
	ErrLimitMismatch = errors.New("fieldset: daily limit must be below monthly limit")
)

// Address is the nested address block of a customer request.
type Address struct {
	Country    string `json:"country"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Line1      string `json:"line1"`
}

// CustomerCreateRequest is the body of a create-customer call.
type CustomerCreateRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	DateOfBirth string  `json:"dateOfBirth"`
	NationalID  int64   `json:"nationalId"`
	Address     Address `json:"address"`
}

// CustomerUpdateRequest is the body of an update-customer call.
type CustomerUpdateRequest struct {
	CustomerCreateRequest
	KycStatus string `json:"kycStatus"`
	IsActive  bool   `json:"isActive"`
}

// WalletLimitsRequest is the body of an update-limits call.
type WalletLimitsRequest struct {
	DailyLimit   float64 `json:"dailyLimit"`
	MonthlyLimit float64 `json:"monthlyLimit"`
}

// CustomerCreatePayload shapes a submitted customer.create value: strings are
// trimmed and the national id becomes a number.
func CustomerCreatePayload(value map[string]any) (CustomerCreateRequest, error) {
	address, _ := value["address"].(map[string]any)
	nationalID, err := wholeNumber(value["nationalId"])
	if err != nil {
		return CustomerCreateRequest{}, err
	}
	return CustomerCreateRequest{
		Name:        trimmed(value["name"]),
		Email:       trimmed(value["email"]),
		Phone:       trimmed(value["phone"]),
		DateOfBirth: trimmed(value["dateOfBirth"]),
		NationalID:  nationalID,
		Address: Address{
			Country:    trimmed(address["country"]),
			City:       trimmed(address["city"]),
			PostalCode: trimmed(address["postalCode"]),
			Line1:      trimmed(address["line1"]),
		},
	}, nil
}

// CustomerUpdatePayload shapes a submitted customer.edit value. A blank KYC
// status falls back to UNKNOWN; the wallet number is never sent.
func CustomerUpdatePayload(value map[string]any) (CustomerUpdateRequest, error) {
	base, err := CustomerCreatePayload(value)
	if err != nil {
		return CustomerUpdateRequest{}, err
	}
	kyc := trimmed(value["kycStatus"])
	if kyc == "" {
		kyc = KycUnknown
	}
	active, _ := value["isActive"].(bool)
	return CustomerUpdateRequest{
		CustomerCreateRequest: base,
		KycStatus:             kyc,
		IsActive:              active,
	}, nil
}

// WalletLimitsPayload converts a submitted wallet.limits value and refuses a
// daily limit that is not below the monthly one.
func WalletLimitsPayload(value map[string]any) (WalletLimitsRequest, error) {
	daily, ok := validators.Number(value["dailyLimit"])
	if !ok {
		return WalletLimitsRequest{}, fmt.Errorf("%w: dailyLimit", ErrInvalidLimit)
	}
	monthly, ok := validators.Number(value["monthlyLimit"])
	if !ok {
		return WalletLimitsRequest{}, fmt.Errorf("%w: monthlyLimit", ErrInvalidLimit)
	}
	if daily >= monthly {
		return WalletLimitsRequest{}, ErrLimitMismatch
	}
	return WalletLimitsRequest{DailyLimit: daily, MonthlyLimit: monthly}, nil
}

func trimmed(value any) string {
	s, _ := value.(string)
	return strings.TrimSpace(s)
}

func wholeNumber(value any) (int64, error) {
	n, ok := validators.Number(value)
	if !ok || n != math.Trunc(n) || math.Abs(n) > 1<<53 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidNationalID, value)
	}
	return int64(n), nil
}
