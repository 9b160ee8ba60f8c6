package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Iraldo49/financeiro/internal/domain/finance"
)

// Config agrupa a configuração da aplicação (leitura via Viper de env e,
// opcionalmente, arquivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Storage StorageConfig
	Finance FinanceConfig
}

// AppConfig configuração geral da aplicação.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StorageConfig configuração da persistência em arquivos.
type StorageConfig struct {
	DataDir string
}

// FinanceConfig parâmetros do motor financeiro.
type FinanceConfig struct {
	// WalletPolicy define a fórmula do saldo de carteira: "liquida"
	// (fisico - eletronico, padrão) ou "aditiva" (fisico + eletronico).
	WalletPolicy finance.WalletPolicy
	// CurrencySymbol é o símbolo exibido na borda de apresentação.
	CurrencySymbol string
	// LedgerCapacity é o teto de transações do livro-razão.
	LedgerCapacity int
}

// Load lê a configuração de variáveis de ambiente (e opcionalmente de
// arquivo .env/config.env). As env vars têm prioridade.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos erro se não existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig() // mescla com o .env; ignoramos erro se não existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "Controle Financeiro"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Storage: StorageConfig{
			DataDir: getString(v, "DATA_DIR", "./data"),
		},
		Finance: FinanceConfig{
			WalletPolicy:   finance.WalletPolicy(getString(v, "WALLET_POLICY", string(finance.WalletPolicyNet))),
			CurrencySymbol: getString(v, "CURRENCY_SYMBOL", "MT"),
			LedgerCapacity: getInt(v, "LEDGER_CAPACITY", 999),
		},
	}

	if !cfg.Finance.WalletPolicy.Valid() {
		return nil, fmt.Errorf("WALLET_POLICY inválida: %q", cfg.Finance.WalletPolicy)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return def
}
