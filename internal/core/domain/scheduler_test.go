package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSchedulerConfig(t *testing.T) {
	config := DefaultSchedulerConfig()

	assert.True(t, config.Enabled)
	assert.Len(t, config.TaskConfigs, 1)

	syncCfg := config.TaskConfigs[TaskIDCollectionSync]
	assert.True(t, syncCfg.Enabled)
	assert.Equal(t, 24*time.Hour, syncCfg.Interval)
}

func TestNewSchedulerConfig_Disabled(t *testing.T) {
	config := NewSchedulerConfig(0)

	assert.False(t, config.Enabled)
	assert.False(t, config.GetTaskConfig(TaskIDCollectionSync).Enabled)
}

func TestSchedulerConfig_GetTaskConfig(t *testing.T) {
	config := NewSchedulerConfig(6 * time.Hour)

	syncCfg := config.GetTaskConfig(TaskIDCollectionSync)
	assert.True(t, syncCfg.Enabled)
	assert.Equal(t, 6*time.Hour, syncCfg.Interval)

	// Non-existent task
	unknownCfg := config.GetTaskConfig("unknown-task")
	assert.False(t, unknownCfg.Enabled)
	assert.Equal(t, time.Duration(0), unknownCfg.Interval)
}

func TestSchedulerConfig_GetTaskConfig_NilMap(t *testing.T) {
	config := SchedulerConfig{}
	assert.Equal(t, TaskConfig{}, config.GetTaskConfig(TaskIDCollectionSync))
}
