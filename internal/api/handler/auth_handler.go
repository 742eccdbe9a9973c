package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"quizzical/internal/app/service"
	"quizzical/internal/common"
)

type AuthHandler struct {
	authService *service.AuthService
	selfURL     string
	client      *http.Client
}

func NewAuthHandler(authService *service.AuthService, selfURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		selfURL:     selfURL,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Login sits behind the BasicAuth middleware, so reaching it means the
// credentials already checked out.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, true)
}

// Test verifies the running server end to end: it logs in over HTTP as the
// first stored user and lists subjects through the public listener. Returns
// true when both checks pass, 500 with detail otherwise.
func (h *AuthHandler) Test(w http.ResponseWriter, r *http.Request) {
	if err := h.checkAuthentication(r); err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.checkSubjects(r); err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, true)
}

func (h *AuthHandler) checkAuthentication(r *http.Request) error {
	user, err := h.authService.FirstUser(r.Context())
	if err != nil {
		return fmt.Errorf("loading first user: %w", err)
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, h.selfURL+"/login", nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(user.Username, user.Password)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("login self-check request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("login self-check returned status %d", resp.StatusCode)
	}
	return nil
}

func (h *AuthHandler) checkSubjects(r *http.Request) error {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, h.selfURL+"/subjects", nil)
	if err != nil {
		return err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("subjects self-check request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("subjects self-check returned status %d", resp.StatusCode)
	}

	var subjects []string
	if err := json.NewDecoder(resp.Body).Decode(&subjects); err != nil {
		return fmt.Errorf("subjects self-check returned invalid JSON: %w", err)
	}
	if len(subjects) <= 1 {
		return fmt.Errorf("subjects self-check expected more than one subject, got %d", len(subjects))
	}
	return nil
}
