package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"tasklist-api/domain/dto"
	"tasklist-api/domain/services"
	"tasklist-api/pkg/config"
	"tasklist-api/pkg/logger"
	"tasklist-api/pkg/utils"
)

const (
	googleUserInfoURL    = "https://www.googleapis.com/oauth2/v2/userinfo"
	oauthStateCookie     = "oauth_state"
	oauthVerifierCookie  = "oauth_verifier"
	oauthCookieMaxAge    = 300 // 5 นาที
	tokenExchangeTimeout = 30 * time.Second
)

type AuthHandler struct {
	userService services.UserService
	oauthConfig *oauth2.Config
	frontendURL string
}

func NewAuthHandler(userService services.UserService, googleConfig config.GoogleOAuthConfig) *AuthHandler {
	h := &AuthHandler{
		userService: userService,
		frontendURL: googleConfig.FrontendURL,
	}

	if googleConfig.Enabled() {
		h.oauthConfig = &oauth2.Config{
			ClientID:     googleConfig.ClientID,
			ClientSecret: googleConfig.ClientSecret,
			RedirectURL:  googleConfig.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	return h
}

func (h *AuthHandler) setShortCookie(c *fiber.Ctx, name, value string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: "Lax",
		MaxAge:   maxAge,
	})
}

// GoogleLogin redirect ไปยัง Google OAuth consent screen (PKCE)
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	if h.oauthConfig == nil {
		return utils.NotFoundResponse(c, "Google login is not configured")
	}

	state := utils.GenerateOAuthState()
	verifier := oauth2.GenerateVerifier()

	h.setShortCookie(c, oauthStateCookie, state, oauthCookieMaxAge)
	h.setShortCookie(c, oauthVerifierCookie, verifier, oauthCookieMaxAge)

	authURL := h.oauthConfig.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))

	logger.InfoContext(c.UserContext(), "Redirecting to Google OAuth")
	return c.Redirect(authURL, fiber.StatusTemporaryRedirect)
}

// GoogleCallback รับ callback จาก Google OAuth
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if h.oauthConfig == nil {
		return utils.NotFoundResponse(c, "Google login is not configured")
	}

	if errorParam := c.Query("error"); errorParam != "" {
		logger.WarnContext(ctx, "Google OAuth error", "error", errorParam)
		return h.redirectWithError(c, errorParam)
	}

	code := c.Query("code")
	if code == "" {
		return h.redirectWithError(c, "no_code")
	}

	savedState := c.Cookies(oauthStateCookie)
	verifier := c.Cookies(oauthVerifierCookie)
	if savedState == "" || savedState != c.Query("state") || verifier == "" {
		logger.WarnContext(ctx, "Invalid OAuth state")
		return h.redirectWithError(c, "invalid_state")
	}

	h.setShortCookie(c, oauthStateCookie, "", -1)
	h.setShortCookie(c, oauthVerifierCookie, "", -1)

	exchangeCtx, cancel := context.WithTimeout(ctx, tokenExchangeTimeout)
	defer cancel()

	token, err := h.oauthConfig.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		logger.ErrorContext(ctx, "Failed to exchange code for token", "error", err)
		return h.redirectWithError(c, "token_exchange_failed")
	}

	googleUser, err := h.fetchGoogleUser(exchangeCtx, token)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to get Google user info", "error", err)
		return h.redirectWithError(c, "user_info_failed")
	}

	jwtToken, user, err := h.userService.LoginOrRegisterWithGoogle(ctx, googleUser)
	if err != nil {
		logger.WarnContext(ctx, "Google login/register failed", "error", err)
		switch {
		case errors.Is(err, services.ErrAccountDisabled):
			return h.redirectWithError(c, "account_disabled")
		case errors.Is(err, services.ErrEmailNotVerified):
			return h.redirectWithError(c, "email_not_verified")
		}
		return h.redirectWithError(c, "login_failed")
	}

	logger.InfoContext(ctx, "Google auth successful", "user_id", user.ID)

	redirectURL := h.frontendURL + "/auth/google/callback?token=" + url.QueryEscape(jwtToken)
	return c.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) redirectWithError(c *fiber.Ctx, reason string) error {
	return c.Redirect(h.frontendURL+"/login?error="+url.QueryEscape(reason), fiber.StatusTemporaryRedirect)
}

// fetchGoogleUser เรียก userinfo ด้วย client ที่ oauth2 ใส่ access token ให้
func (h *AuthHandler) fetchGoogleUser(ctx context.Context, token *oauth2.Token) (*dto.GoogleUserInfo, error) {
	client := h.oauthConfig.Client(ctx, token)

	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var userInfo dto.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, err
	}
	if userInfo.ID == "" || userInfo.Email == "" {
		return nil, fmt.Errorf("userinfo missing id or email")
	}

	return &userInfo, nil
}
