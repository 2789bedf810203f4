package entity

// OperatorLoginData is the identity carried by a bearer token.
type OperatorLoginData struct {
	ID       string
	Username string
	Email    string
}
