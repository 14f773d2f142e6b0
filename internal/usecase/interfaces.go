package usecase

// TokenService issues session tokens for authenticated users.
type TokenService interface {
	GenerateToken(userID int64, username string) (string, error)
}
