// utils/safelog.go
// ============================================================================
// SAFE LOGGING - masks personal and financial data in production
// ============================================================================
// Ledger amounts, employee contact details and tax/bank numbers are
// replaced before a line reaches the log in release mode.
// ============================================================================

package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ============================================================================
// CONFIGURATION
// ============================================================================

var (
	// IsProduction enables masking.
	IsProduction = os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"

	// LogLevel filters output (DEBUG, INFO, WARN, ERROR)
	LogLevel = ParseLogLevel(os.Getenv("LOG_LEVEL"))
)

const (
	LogLevelDebug = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func ParseLogLevel(level string) int {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Configure applies settings loaded after package init.
func Configure(mode, level string) {
	if mode == "release" {
		IsProduction = true
	}
	if level != "" {
		LogLevel = ParseLogLevel(level)
	}
}

// ============================================================================
// MASKING PATTERNS
// ============================================================================

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// "Rp 1.500.000", "Rp1500000,00", "IDR 250000"
	rupiahRegex = regexp.MustCompile(`(?i)\b(Rp\.?|IDR)\s?\d[\d.,]*`)

	// NPWP: 12.345.678.9-012.345
	npwpRegex = regexp.MustCompile(`\b\d{2}\.\d{3}\.\d{3}\.\d-\d{3}\.\d{3}\b`)

	// NIK and bank account numbers: long digit runs
	longNumberRegex = regexp.MustCompile(`\b\d{10,20}\b`)

	// Indonesian mobile numbers: 08xx / +628xx
	phoneRegex = regexp.MustCompile(`(\+62|\b0)8\d{1,3}[\s.-]?\d{3,4}[\s.-]?\d{3,5}\b`)

	uuidRegex = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// ============================================================================
// MASKING
// ============================================================================

// MaskString masks sensitive data in a string.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}

	result := input
	result = emailRegex.ReplaceAllString(result, "***@***.***")
	result = npwpRegex.ReplaceAllString(result, "**.***.***.*-***.***")
	result = phoneRegex.ReplaceAllString(result, "08**-****-****")
	result = longNumberRegex.ReplaceAllString(result, "****")
	result = rupiahRegex.ReplaceAllString(result, "Rp ***")
	result = uuidRegex.ReplaceAllStringFunc(result, func(uuid string) string {
		return uuid[:8] + "..."
	})
	return result
}

// MaskAmount renders an amount for logs.
func MaskAmount(amount decimal.Decimal) string {
	if IsProduction {
		return "Rp ***"
	}
	return FormatRupiah(amount)
}

// MaskID keeps the first 8 characters of an identifier.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

// ============================================================================
// LEVELLED LOGGING
// ============================================================================

func SafeLog(format string, args ...interface{}) {
	log.Print(MaskString(fmt.Sprintf(format, args...)))
}

func SafeDebug(format string, args ...interface{}) {
	if LogLevel > LogLevelDebug {
		return
	}
	log.Printf("[DEBUG] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeInfo(format string, args ...interface{}) {
	if LogLevel > LogLevelInfo {
		return
	}
	log.Printf("[INFO] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeWarn(format string, args ...interface{}) {
	if LogLevel > LogLevelWarn {
		return
	}
	log.Printf("[WARN] %s", MaskString(fmt.Sprintf(format, args...)))
}

// SafeError always logs.
func SafeError(format string, args ...interface{}) {
	log.Printf("[ERROR] %s", MaskString(fmt.Sprintf(format, args...)))
}

// ============================================================================
// DOMAIN LOGGING
// ============================================================================

// LogLedgerAction records a write on a cashflow transaction.
func LogLedgerAction(action string, id int64, txType string, amount decimal.Decimal) {
	log.Printf("[Ledger] %s - Transaction: %d Type: %s Amount: %s",
		action, id, txType, MaskAmount(amount))
}

// LogPayableChange records a movement of the kasbon balance.
func LogPayableChange(reason string, before, after decimal.Decimal) {
	log.Printf("[Kasbon] %s - Balance: %s -> %s", reason, MaskAmount(before), MaskAmount(after))
}

// LogAPIRequest records one served request.
func LogAPIRequest(method, path, requestID string, statusCode int, duration string) {
	log.Printf("[API] %s %s - Request: %s Status: %d Duration: %s",
		method, path, MaskID(requestID), statusCode, duration)
}

// LogWebSocket records a websocket event.
func LogWebSocket(action string, sessions int) {
	log.Printf("[WS] %s - Sessions: %d", action, sessions)
}

// ============================================================================
// STARTUP
// ============================================================================

func GetEnvMode() string {
	if IsProduction {
		return "production"
	}
	return "development"
}

func LogStartup(appName, version, port, storeDriver string) {
	log.Printf("🚀 %s v%s starting...", appName, version)
	log.Printf("   Mode: %s", GetEnvMode())
	log.Printf("   Port: %s", port)
	log.Printf("   Store: %s", storeDriver)
	log.Printf("   Log Level: %d", LogLevel)
	if IsProduction {
		log.Printf("   ⚠️  Production mode: Sensitive data will be masked in logs")
	}
}
