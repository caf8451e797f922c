package token

// Function variables so tests can swap JWT generation/parsing for mocks
var (
	GenerateJWTFunc        = GenerateJWT
	ParseJWTFunc           = ParseJWT
	GenerateResetTokenFunc = GeneratePasswordResetToken
	ParseResetTokenFunc    = ParsePasswordResetToken
)
