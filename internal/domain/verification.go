package domain

// AccountCredential é um par conta de anúncio + token enviado para verificação
type AccountCredential struct {
	AdAccountID string `json:"ad_account_id"`
	AccessToken string `json:"access_token"`
}

const (
	VerificationStatusVerified    = "Verified"
	VerificationStatusNotVerified = "Not Verified"
)

// VerifiedAccount é o resultado da verificação de uma conta junto à plataforma
type VerifiedAccount struct {
	AdAccountID       string  `json:"ad_account_id"`
	AdAccountStatus   string  `json:"ad_account_status"`
	AdAccountError    *string `json:"ad_account_error"`
	AccessTokenStatus string  `json:"access_token_status"`
	AccessTokenError  *string `json:"access_token_error"`
}
