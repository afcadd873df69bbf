package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"laptop-gallery/logging"
	"laptop-gallery/utils"
)

type TokenIssuer interface {
	Issue(claims map[string]interface{}) (string, error)
}

// TokenController hands out access tokens
type TokenController struct {
	Tokens TokenIssuer
}

func NewTokenController(tokens TokenIssuer) *TokenController {
	return &TokenController{Tokens: tokens}
}

// Issue signs the request body as the token's claim set. An empty body
// yields a token carrying only iat and exp.
func (tc *TokenController) Issue(w http.ResponseWriter, r *http.Request) {
	var claims map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&claims); err != nil && !errors.Is(err, io.EOF) {
		utils.WriteMessage(w, http.StatusBadRequest, msgBadBody)
		return
	}

	token, err := tc.Tokens.Issue(claims)
	if err != nil {
		logging.FromContext(r.Context()).Error("issue token", "error", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}
