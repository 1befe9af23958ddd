package helpers

import (
	"github.com/labstack/echo/v4"

	"github.com/avatarctic/study-assistant-api/internal/core/domain/auth"
)

type ctxKey string

const (
	keyUserID      ctxKey = "user_id"
	keyClaims      ctxKey = "claims"
	keyOperationID ctxKey = "operation_id"
)

func SetUserID(c echo.Context, id string) { c.Set(string(keyUserID), id) }
func GetUserIDRaw(c echo.Context) (string, bool) {
	v := c.Get(string(keyUserID))
	id, ok := v.(string)
	return id, ok && id != ""
}

func SetClaims(c echo.Context, claims *auth.Claims) { c.Set(string(keyClaims), claims) }
func GetClaimsRaw(c echo.Context) (*auth.Claims, bool) {
	v := c.Get(string(keyClaims))
	claims, ok := v.(*auth.Claims)
	return claims, ok && claims != nil
}

func SetOperationID(c echo.Context, id string) { c.Set(string(keyOperationID), id) }
func GetOperationIDRaw(c echo.Context) (string, bool) {
	v := c.Get(string(keyOperationID))
	id, ok := v.(string)
	return id, ok
}
