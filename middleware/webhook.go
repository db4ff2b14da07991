package middleware

import (
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/aurelia-jewels/jewelry-api/config"
	"github.com/gin-gonic/gin"
)

// PaymentWebhookAuth verifies the gateway's webhook signature. Sandbox/dev
// mode skips the check because the gateway's test environment does not sign
// callbacks.
func PaymentWebhookAuth(cfg config.PaymentConfig) gin.HandlerFunc {
	fieldList := []string{
		"tran_store", "tran_type", "tran_test", "tran_ref",
		"tran_currency", "tran_amount", "tran_cartid", "tran_status",
	}

	return func(c *gin.Context) {
		if cfg.Mode == "sandbox" || cfg.Mode == "dev" {
			c.Next()
			return
		}

		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse form for signature verification"})
			c.Abort()
			return
		}

		providedCheck := c.PostForm("tran_check")
		if providedCheck == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "missing tran_check signature"})
			c.Abort()
			return
		}

		parts := []string{cfg.WebhookSecret}
		for _, f := range fieldList {
			parts = append(parts, strings.TrimSpace(c.PostForm(f)))
		}

		h := sha1.New()
		h.Write([]byte(strings.Join(parts, ":")))
		calculated := hex.EncodeToString(h.Sum(nil))

		if !strings.EqualFold(calculated, providedCheck) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid webhook signature"})
			c.Abort()
			return
		}

		c.Next()
	}
}
