package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// RecaptchaResult carries Google's verdict on a client token.
type RecaptchaResult struct {
	Success bool    `json:"success"`
	Score   float64 `json:"score"`
}

// VerifyRecaptcha checks a reCAPTCHA v3 token with Google. The token passes
// when Google reports success and the score meets RECAPTCHA_MIN_SCORE
// (default 0.5). Declared as a variable so tests can stub it out.
var VerifyRecaptcha = func(token string) (RecaptchaResult, error) {
	secret := os.Getenv("RECAPTCHA_SECRET_KEY")
	if secret == "" {
		return RecaptchaResult{}, fmt.Errorf("recaptcha not configured (RECAPTCHA_SECRET_KEY)")
	}

	resp, err := http.PostForm(recaptchaVerifyURL, url.Values{
		"secret":   {secret},
		"response": {token},
	})
	if err != nil {
		return RecaptchaResult{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Success bool    `json:"success"`
		Score   float64 `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return RecaptchaResult{}, err
	}

	minScore := 0.5
	if raw := strings.TrimSpace(os.Getenv("RECAPTCHA_MIN_SCORE")); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			minScore = parsed
		}
	}

	return RecaptchaResult{
		Success: payload.Success && payload.Score >= minScore,
		Score:   payload.Score,
	}, nil
}
