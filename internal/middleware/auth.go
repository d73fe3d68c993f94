package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// Credentials is the single account the API accepts. When PasswordHash is set
// it is compared as a bcrypt hash; otherwise Password is compared in constant
// time.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// BasicAuth rejects requests whose HTTP Basic credentials do not match before
// any handler runs.
func BasicAuth(realm string, creds Credentials) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok || !creds.match(username, password) {
				w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", realm))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"Unauthorized","code":401}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (c Credentials) match(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1

	if c.PasswordHash != "" {
		passOK := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
		return userOK && passOK
	}

	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	return userOK && passOK
}
