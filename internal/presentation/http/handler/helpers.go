package handler

import (
	"math"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// contextValue reads a typed value the auth middleware stored on the context.
func contextValue[T any](c *gin.Context, key string) (T, bool) {
	var zero T
	raw, exists := c.Get(key)
	if !exists {
		return zero, false
	}
	val, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return val, true
}

// GetUserID returns the authenticated user's ID, or nil outside the auth
// middleware.
func GetUserID(c *gin.Context) *uuid.UUID {
	userID, ok := contextValue[uuid.UUID](c, "user_id")
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRoles returns the role names from the access token.
func GetUserRoles(c *gin.Context) []string {
	roles, _ := contextValue[[]string](c, "user_roles")
	return roles
}

// IsSuperAdmin reports whether the caller holds the super-admin role.
func IsSuperAdmin(c *gin.Context) bool {
	return slices.Contains(GetUserRoles(c), "super-admin")
}

// ToCents converts a currency amount from the request body to cents.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ParseDateRange reads optional start_date/end_date query params (YYYY-MM-DD).
// The end date is pushed to the end of its day so the range is inclusive.
func ParseDateRange(c *gin.Context) (start, end *time.Time, err error) {
	if s := c.Query("start_date"); s != "" {
		t, parseErr := time.Parse("2006-01-02", s)
		if parseErr != nil {
			return nil, nil, parseErr
		}
		start = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, parseErr := time.Parse("2006-01-02", s)
		if parseErr != nil {
			return nil, nil, parseErr
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}
	return start, end, nil
}
