package server

import (
	"context"
	"log"
	"net/http"
	"strings"
)

type contextKey string

const userIDKey contextKey = "userID"

// withAuth validates the Authorization bearer token and puts the acting
// user's ID into the request context.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			http.Error(w, "malformed Authorization header, expected Bearer {token}", http.StatusUnauthorized)
			return
		}

		claims, err := s.tokens.Validate(parts[1])
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logRequests logs method, path and remote address per request.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

// ownerID returns the acting user's ID from the request context.
func ownerID(r *http.Request) uint {
	id, _ := r.Context().Value(userIDKey).(uint)
	return id
}
