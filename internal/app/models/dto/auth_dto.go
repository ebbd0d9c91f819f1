package dto

// NonceRequest asks for a login challenge for a wallet address.
type NonceRequest struct {
	Address string `json:"address" binding:"required" example:"0xab5801a7d398351b8be11c439e05c5b3259aec9b"`
}

// NonceResponse carries the challenge message the wallet must sign.
type NonceResponse struct {
	Nonce   string `json:"nonce" example:"8c9d0e1f-2a3b-4c5d-9f1b-2c3d4e5f6a7b"`
	Message string `json:"message" example:"certchain login: 8c9d0e1f-..."`
}

// LoginRequest presents the signed challenge.
type LoginRequest struct {
	Address   string `json:"address" binding:"required" example:"0xab5801a7d398351b8be11c439e05c5b3259aec9b"`
	Signature string `json:"signature" binding:"required" example:"0x5d99..."`
}

// LoginResponse returns the bearer token for institute operations.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"43200"`
	Address     string `json:"address" example:"0xab5801a7d398351b8be11c439e05c5b3259aec9b"`
}
