package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argus/core"
)

const thresholdRuleYAML = `name: failed logins
description: too many 4625s
type: threshold
datasources:
  - winlog
timeframe: 1h
risk: 6
trigger:
  type: periodic
  value: 30m
group_by:
  - user.name
filters:
  - type: simple
    field: event.code
    operator: "=="
    value: "4625"
conditions:
  alert:
    - function: count
      field: ""
      operator: ">"
      limit: 10
      logic: AND
`

func TestLoadRuleDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rule.yaml")
	require.NoError(t, os.WriteFile(path, []byte(thresholdRuleYAML), 0o600))

	doc, err := loadRuleDocument(path)
	require.NoError(t, err)

	assert.Equal(t, "failed logins", doc.Name)
	assert.Equal(t, core.RuleKindThreshold, doc.Kind)
	assert.Equal(t, core.Timeframe1h, doc.Timeframe)
	assert.Equal(t, 6, doc.Risk)
	assert.Equal(t, core.TriggerPeriodic, doc.Trigger.Type)
	require.NotNil(t, doc.Conditions)
	require.Len(t, doc.Conditions.Alert, 1)
	assert.Equal(t, 10.0, doc.Conditions.Alert[0].Limit)
	assert.NoError(t, doc.Validate())
}

func TestLoadRuleDocument_MissingFile(t *testing.T) {
	_, err := loadRuleDocument(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRuleDocument_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rule.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))

	_, err := loadRuleDocument(path)
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-te", truncate("exactly-te", 10))
	assert.Equal(t, "a much lon...", truncate("a much longer string", 13))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
