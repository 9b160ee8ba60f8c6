package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iraldo49/financeiro/internal/domain/finance"
	"github.com/Iraldo49/financeiro/pkg/config"
)

// chdir troca o diretório de trabalho e o restaura ao fim do teste;
// substitui t.Chdir, que só existe a partir do Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Padroes(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "./data", cfg.Storage.DataDir)
	assert.Equal(t, finance.WalletPolicyNet, cfg.Finance.WalletPolicy)
	assert.Equal(t, 999, cfg.Finance.LedgerCapacity)
}

// TestLoad_MesclaFontes o config.env complementa o .env em vez de substituí-lo:
// chaves só presentes no .env continuam valendo.
func TestLoad_MesclaFontes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/.env", []byte("DATA_DIR=./dados-env\n"), 0o644))
	require.NoError(t, os.WriteFile(dir+"/config.env", []byte("HTTP_PORT=9090\n"), 0o644))
	chdir(t, dir)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "./dados-env", cfg.Storage.DataDir, "o .env não pode ser descartado quando config.env existe")
}

func TestLoad_PoliticaInvalida(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/.env", []byte("WALLET_POLICY=percentual\n"), 0o644))
	chdir(t, dir)

	_, err := config.Load()
	assert.Error(t, err)
}
