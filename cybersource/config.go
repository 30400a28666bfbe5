package cybersource

import (
	"os"
	"strings"
)

const (
	testURL = "https://ics2wstest.ic3.com/commerce/1.x/transactionProcessor"
	liveURL = "https://ics2ws.ic3.com/commerce/1.x/transactionProcessor"
)

// Config is the configuration for a gateway instance.
type Config struct {
	// Login is the CyberSource merchant ID; Password is the SOAP toolkit
	// transaction key generated in the merchant console.
	Login    string
	Password string
	// Test routes requests to the test endpoint and enables the canned
	// test-card shortcut.
	Test bool
	// VATRegNumber is the seller VAT registration sent with tax requests.
	VATRegNumber string
	// Nexus lists jurisdictions where the merchant has tax presence.
	Nexus []string
	// IgnoreAVS / IgnoreCVV ask the processor to disregard AVS and card
	// verification mismatches.
	IgnoreAVS bool
	IgnoreCVV bool
	// TestURL / LiveURL override the processor endpoints, mainly for tests.
	TestURL string
	LiveURL string
}

func DefaultConfig() *Config {
	return &Config{
		TestURL: testURL,
		LiveURL: liveURL,
	}
}

// ConfigFromEnv builds a Config from CYBERSOURCE_* environment variables.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	cfg.Login = getenv("CYBERSOURCE_LOGIN", "")
	cfg.Password = getenv("CYBERSOURCE_PASSWORD", "")
	cfg.Test = getenv("CYBERSOURCE_TEST", "true") == "true"
	cfg.VATRegNumber = getenv("CYBERSOURCE_VAT_REG_NUMBER", "")
	if nexus := getenv("CYBERSOURCE_NEXUS", ""); nexus != "" {
		cfg.Nexus = strings.Fields(nexus)
	}
	cfg.IgnoreAVS = getenv("CYBERSOURCE_IGNORE_AVS", "false") == "true"
	cfg.IgnoreCVV = getenv("CYBERSOURCE_IGNORE_CVV", "false") == "true"
	return cfg
}

// endpoint returns the URL for the configured mode.
func (c *Config) endpoint() string {
	if c.Test {
		if c.TestURL != "" {
			return c.TestURL
		}
		return testURL
	}
	if c.LiveURL != "" {
		return c.LiveURL
	}
	return liveURL
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
