package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
)

const adminEmailKey contextKey = "adminEmail"

type adminMiddleware struct {
	AuthClient *auth.Client
	allowlist  map[string]struct{}
}

// NewAdminMiddleware guards the admin surface: a valid Firebase ID token
// whose email claim is on the allowlist. An empty allowlist denies all
// admin access rather than opening it up.
func NewAdminMiddleware(client *auth.Client, allowedEmails []string) *adminMiddleware {
	allow := make(map[string]struct{}, len(allowedEmails))
	for _, e := range allowedEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			allow[e] = struct{}{}
		}
	}
	return &adminMiddleware{AuthClient: client, allowlist: allow}
}

func (m *adminMiddleware) AdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "invalid Authorization header", http.StatusUnauthorized)
			return
		}

		token, err := m.AuthClient.VerifyIDToken(r.Context(), parts[1])
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		email, _ := token.Claims["email"].(string)
		email = strings.ToLower(email)
		if _, ok := m.allowlist[email]; !ok {
			http.Error(w, "not an administrator", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), adminEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminEmail extracts the authenticated administrator's email.
func AdminEmail(ctx context.Context) string {
	email, _ := ctx.Value(adminEmailKey).(string)
	return email
}
