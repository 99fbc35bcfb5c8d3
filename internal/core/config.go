package core

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sliink/expcollect/internal/model"
)

// ConfigManager handles loading, storing, and accessing configuration.
// Configuration lives in a flat JSON file with dotted-path access, e.g.
// "producers.sonar_metrics.project_key".
type ConfigManager struct {
	config     map[string]interface{}
	configFile string
	mutex      sync.RWMutex
	BaseComponent
}

// NewConfigManager creates a new configuration manager
func NewConfigManager() *ConfigManager {
	return &ConfigManager{
		config:        make(map[string]interface{}),
		BaseComponent: NewBaseComponent("config_manager", "Configuration Manager"),
	}
}

// Initialize prepares the configuration manager for operation
func (m *ConfigManager) Initialize() bool {
	m.SetStatus(model.StatusInitialized)
	return true
}

// Start begins configuration manager operation
func (m *ConfigManager) Start() bool {
	m.SetStatus(model.StatusRunning)
	return true
}

// Stop halts configuration manager operation
func (m *ConfigManager) Stop() bool {
	m.SetStatus(model.StatusStopped)
	return true
}

// LoadConfig loads configuration from a JSON file
func (m *ConfigManager) LoadConfig(configFile string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	data, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	var config map[string]interface{}
	if err := json.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}

	m.config = config
	m.configFile = configFile

	return nil
}

// SaveConfig saves the current configuration to a file
func (m *ConfigManager) SaveConfig(configFile string) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	// If no file specified, use the one we loaded from
	if configFile == "" {
		configFile = m.configFile
	}

	if configFile == "" {
		return fmt.Errorf("no config file specified")
	}

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// GetConfig retrieves a configuration value by dotted path
func (m *ConfigManager) GetConfig(path string, defaultValue interface{}) interface{} {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	// If no path, return entire config
	if path == "" {
		return m.config
	}

	parts := strings.Split(path, ".")
	current := m.config

	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return defaultValue
		}

		if i == len(parts)-1 {
			return v
		}

		current, ok = v.(map[string]interface{})
		if !ok {
			return defaultValue
		}
	}

	return defaultValue
}

// GetString retrieves a string configuration value by dotted path
func (m *ConfigManager) GetString(path, defaultValue string) string {
	if v, ok := m.GetConfig(path, defaultValue).(string); ok {
		return v
	}
	return defaultValue
}

// SetConfig sets a configuration value by dotted path, creating intermediate
// maps as needed
func (m *ConfigManager) SetConfig(path string, value interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if path == "" {
		newConfig, ok := value.(map[string]interface{})
		if !ok {
			return fmt.Errorf("cannot set root config to non-map value")
		}
		m.config = newConfig
		return nil
	}

	parts := strings.Split(path, ".")
	current := m.config

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]

		v, exists := current[part]
		if !exists {
			newMap := make(map[string]interface{})
			current[part] = newMap
			current = newMap
			continue
		}

		nextMap, ok := v.(map[string]interface{})
		if !ok {
			// Replace a scalar in the middle of the path with a map
			newMap := make(map[string]interface{})
			current[part] = newMap
			current = newMap
			continue
		}
		current = nextMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}
