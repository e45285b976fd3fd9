package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalDefaults(t *testing.T) {
	conf := Global()
	assert.Equal(t, "https://pubchem.ncbi.nlm.nih.gov", conf.RPC.PubChem.Addr)
	assert.Equal(t, 30, conf.RPC.PubChem.Timeout)
	assert.Equal(t, 5.0, conf.RPC.PubChem.RateLimit)
	assert.Equal(t, 8080, conf.Server.Port)
	assert.Equal(t, 9090, conf.Server.GrpcPort)
	assert.False(t, conf.Redis.Enable)
	assert.Equal(t, "info", conf.Log.LogLevel)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PUBCHEM_ADDR", "http://127.0.0.1:9999")
	t.Setenv("PUBCHEM_RATE_LIMIT", "2.5")
	t.Setenv("REDIS_ENABLE", "true")

	conf := &GlobalConfig{}
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.AutomaticEnv()
	require.NoError(t, v.Unmarshal(conf))

	assert.Equal(t, "http://127.0.0.1:9999", conf.RPC.PubChem.Addr)
	assert.Equal(t, 2.5, conf.RPC.PubChem.RateLimit)
	assert.True(t, conf.Redis.Enable)
}
