package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"go-gin-event-ticketing/internal/middleware"
	"go-gin-event-ticketing/internal/model"
	apperrors "go-gin-event-ticketing/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

var (
	InvalidJSON = `{"invalid": json}`

	adminIdentity = model.Identity{UserID: 1, Email: "admin@test.com", Name: "Admin", Role: model.RoleAdmin}
	userIdentity  = model.Identity{UserID: 2, Email: "user@test.com", Name: "User", Role: model.RoleUser}
)

const (
	adminToken = "admin-token"
	userToken  = "user-token"
)

type staticValidator map[string]model.Identity

func (v staticValidator) ValidateToken(ctx context.Context, token string) (model.Identity, error) {
	identity, ok := v[token]
	if !ok {
		return model.Identity{}, apperrors.ErrInvalidToken
	}
	return identity, nil
}

func testAuthenticate() gin.HandlerFunc {
	return middleware.Authenticate(staticValidator{
		adminToken: adminIdentity,
		userToken:  userIdentity,
	})
}

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	if s, ok := data.(string); ok {
		return bytes.NewBufferString(s)
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req, err := http.NewRequest(method, url, createJSONRequest(data))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withToken(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func decodeBody(body *bytes.Buffer) map[string]interface{} {
	var out map[string]interface{}
	_ = json.Unmarshal(body.Bytes(), &out)
	return out
}
