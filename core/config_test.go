package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTomlConfig = `
[core]
log_level = "DEBUG"

[fw]
reference_packet_size = 1000

[tables.content_store]
capacity = 50
replacement_policy = "lru"

[sim]
duration = 5000
nodes = ["Src1", "Rtr1"]

[[sim.links]]
a = "Src1"
b = "Rtr1"
bit_rate = 10000000
delay = 10

[[sim.consumers]]
node = "Src1"
prefix = "/dst1"
frequency = 100.0
lifetime = 2000
max_seq = 10
`

const testYamlConfig = `
core:
  log_level: WARN
tables:
  content_store:
    capacity: 7
sim:
  nodes: [A, B]
  producers:
    - node: B
      prefix: /b
      payload_size: 1200
`

func TestLoadConfigToml(t *testing.T) {
	defer SetConfig(DefaultConfig())

	require.NoError(t, LoadConfigBytes([]byte(testTomlConfig), "toml"))
	c := GetConfig()
	assert.Equal(t, "DEBUG", c.Core.LogLevel)
	assert.Equal(t, uint64(1000), c.Fw.ReferencePacketSize)
	assert.Equal(t, 50, c.Tables.ContentStore.Capacity)
	assert.Equal(t, "lru", c.Tables.ContentStore.ReplacementPolicy)
	assert.True(t, c.Tables.ContentStore.Admit)
	assert.Equal(t, 6000, c.Tables.DeadNonceList.Lifetime)
	assert.Equal(t, "drop-all", c.Fw.UnsolicitedPolicy)
	assert.Equal(t, 5000, c.Sim.Duration)
	assert.Equal(t, []string{"Src1", "Rtr1"}, c.Sim.Nodes)
	require.Len(t, c.Sim.Links, 1)
	assert.Equal(t, uint64(10000000), c.Sim.Links[0].BitRate)
	assert.Equal(t, 10, c.Sim.Links[0].Delay)
	require.Len(t, c.Sim.Consumers, 1)
	assert.Equal(t, "/dst1", c.Sim.Consumers[0].Prefix)
	assert.Equal(t, uint64(10), c.Sim.Consumers[0].MaxSeq)
}

func TestLoadConfigYaml(t *testing.T) {
	defer SetConfig(DefaultConfig())

	require.NoError(t, LoadConfigBytes([]byte(testYamlConfig), "yaml"))
	c := GetConfig()
	assert.Equal(t, "WARN", c.Core.LogLevel)
	assert.Equal(t, 7, c.Tables.ContentStore.Capacity)
	assert.Equal(t, "priority_fifo", c.Tables.ContentStore.ReplacementPolicy)
	assert.Equal(t, uint64(1500), c.Fw.ReferencePacketSize)
	require.Len(t, c.Sim.Producers, 1)
	assert.Equal(t, 1200, c.Sim.Producers[0].PayloadSize)
}

func TestLoadConfigErrors(t *testing.T) {
	defer SetConfig(DefaultConfig())

	err := LoadConfigBytes([]byte("a = 1"), "ini")
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	assert.Error(t, LoadConfigBytes([]byte("[core\nlog_level ="), "toml"))
	assert.Error(t, LoadConfig("/nonexistent/forwarder.toml"))

	// Failed loads leave the active configuration untouched
	assert.Equal(t, "INFO", GetConfig().Core.LogLevel)
}

func TestGenerateLogMessage(t *testing.T) {
	msg := generateLogMessage("Forwarder", "face=", uint64(3), " depth=", 2, " ok=", true)
	assert.Equal(t, "[Forwarder] face=3 depth=2 ok=true", msg)
	assert.Equal(t, "[X] boom", generateLogMessage("X", errors.New("boom")))
}
