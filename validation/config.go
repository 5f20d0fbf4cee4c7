package validation

import (
	"encoding/json"
	"fmt"

	"github.com/hyperlane-deploy/deploy-api/models"

	"github.com/ghodss/yaml"
	"gopkg.in/go-playground/validator.v9"
)

// decodeYAMLOrJSON decodes a YAML or JSON document into dest using dest's JSON tags
func decodeYAMLOrJSON(content []byte, dest interface{}) error {
	jsonBytes, err := yaml.YAMLToJSON(content)
	if err != nil {
		return fmt.Errorf("failed to parse as YAML or JSON: %s", err.Error())
	}

	if err := json.Unmarshal(jsonBytes, dest); err != nil {
		return fmt.Errorf("failed to decode document: %s", err.Error())
	}

	return nil
}

// DeployConfigValidator validates warp route deploy configs
type DeployConfigValidator struct {
	// Validator is the struct validator, see New
	Validator *validator.Validate
}

// Name implements ValidatorDescriber.Name()
func (v DeployConfigValidator) Name() string {
	return "deploy config"
}

// Summary implements ValidatorDescriber.Summary()
func (v DeployConfigValidator) Summary() string {
	return "Ensures a warp route deploy config has a valid token router for every chain"
}

// Validate implements ContentValidator.Validate()
func (v DeployConfigValidator) Validate(content []byte) error {
	var cfg models.WarpRouteDeployConfig
	if err := decodeYAMLOrJSON(content, &cfg); err != nil {
		return err
	}

	return v.Validator.Var(cfg, "required,min=1,dive")
}

// WarpConfigValidator validates warp core configs
type WarpConfigValidator struct {
	// Validator is the struct validator, see New
	Validator *validator.Validate
}

// Name implements ValidatorDescriber.Name()
func (v WarpConfigValidator) Name() string {
	return "warp config"
}

// Summary implements ValidatorDescriber.Summary()
func (v WarpConfigValidator) Summary() string {
	return "Ensures a warp core config lists well formed tokens"
}

// Validate implements ContentValidator.Validate()
func (v WarpConfigValidator) Validate(content []byte) error {
	var cfg models.WarpCoreConfig
	if err := decodeYAMLOrJSON(content, &cfg); err != nil {
		return err
	}

	return v.Validator.Struct(cfg)
}
