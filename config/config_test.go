package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "9090")
	t.Setenv("PAYABLE_REVERSE_ON_DELETE", "true")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")

	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Database.Driver != "memory" || c.Server.Port != "9090" || c.Server.RateLimit != 30 {
		t.Errorf("config = %+v", c)
	}
	if !c.Ledger.PayableReverseOnDelete {
		t.Error("PAYABLE_REVERSE_ON_DELETE not applied")
	}
	if Get() != c {
		t.Error("Get does not return the loaded config")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(""); err == nil {
		t.Error("postgres without DATABASE_URL accepted")
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("COMPANY_NAME", "")
	path := filepath.Join(t.TempDir(), "finance.yaml")
	body := "database:\n  driver: memory\nledger:\n  company_name: CV Daniar\nauth:\n  jwt_secret: abc\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Database.Driver != "memory" || c.Ledger.CompanyName != "CV Daniar" || !c.AuthEnabled() {
		t.Errorf("config = %+v", c)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing explicit config file accepted")
	}
}
