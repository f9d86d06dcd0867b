// FILE: internal/dto/billing_dto.go
package dto

type TariffsListResponse struct {
	Items []Tariff `json:"items"`
}

type CurrentTariffResponse struct {
	Tariff        Tariff `json:"tariff"`
	TokensBalance int    `json:"tokens_balance"`
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID           int           `json:"id"`
	TokensAmount int           `json:"tokens_amount"`
	Status       PaymentStatus `json:"status"`
	Description  *string       `json:"description"`
	ExternalID   *string       `json:"external_id"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
}

type PaymentsListResponse struct {
	Items []Payment `json:"items"`
}

type CreatePaymentRequest struct {
	TokensAmount int    `json:"tokens_amount" validate:"required,gt=0"`
	Description  string `json:"description,omitempty"`
	ExternalID   string `json:"external_id,omitempty"`
}

type TokenTransaction struct {
	ID         int    `json:"id"`
	Delta      int    `json:"delta"`
	Reason     string `json:"reason"`
	AnalysisID *int   `json:"analysis_id"`
	PaymentID  *int   `json:"payment_id"`
	CreatedAt  string `json:"created_at"`
}

type TokenTransactionsResponse struct {
	Items []TokenTransaction `json:"items"`
}
