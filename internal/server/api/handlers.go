package api

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/paydesk/internal/server/models"
	"github.com/dmitrijs2005/paydesk/internal/server/services"
)

type authResponse struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    models.User `json:"user"`
}

func newAuthResponse(res *services.AuthResult) authResponse {
	return authResponse{Access: res.AccessToken, Refresh: res.RefreshToken, User: res.User}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("JSON parse error - %v", err))
		return false
	}
	return true
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAuthResponse(res))
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := s.users.Register(r.Context(), req)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newAuthResponse(res))
}

func (s *HTTPServer) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Token == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Token is required"})
		return
	}
	res, err := s.users.GoogleLogin(r.Context(), req.Token)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAuthResponse(res))
}

// Tokens are stateless, so logging out only acknowledges.
// handleLogout acknowledges without touching state; tokens are stateless.
func (s *HTTPServer) handleLogout(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleListSamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.samples.List(r.Context()))
}

func (s *HTTPServer) handleAddSample(w http.ResponseWriter, r *http.Request) {
	var req services.AddSampleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	created, err := s.samples.Add(r.Context(), req)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": created.ID, "message": "sample created successfully"})
}

func (s *HTTPServer) handleAccount(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	// Reload: the context copy predates any completed checkout.
	fresh, err := s.store.UserByID(r.Context(), u.ID)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"account_value": fresh.AccountValue,
		"username":      fresh.Username,
	})
}

func (s *HTTPServer) handleProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.payments.Products(r.Context()))
}

func (s *HTTPServer) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, services.FieldErrors{"product_id": {"This field is required."}})
		return
	}
	u, _ := userFrom(r.Context())
	url, err := s.payments.Checkout(r.Context(), u.ID, req.ProductID)
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"checkout_url": url})
}

func (s *HTTPServer) handlePaymentHistory(w http.ResponseWriter, r *http.Request) {
	u, _ := userFrom(r.Context())
	writeJSON(w, http.StatusOK, s.payments.History(r.Context(), u.ID))
}

// handleCheckout plays the payment provider's hosted page: opening the
// link settles the transaction.
func (s *HTTPServer) handleCheckout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transactionID")
	tx, err := s.payments.Complete(r.Context(), id)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintln(w, "<html><body><h1>Unknown checkout session</h1></body></html>")
		return
	}
	s.logger.Info(r.Context(), "checkout completed", "transaction_id", tx.TransactionID, "credits", tx.Credits)
	fmt.Fprintf(w, "<html><body><h1>Payment %s</h1><p>%s %s, transaction %s. You can close this tab.</p></body></html>\n",
		html.EscapeString(tx.Status), tx.Amount.StringFixed(2), html.EscapeString(tx.Currency), html.EscapeString(tx.TransactionID))
}
