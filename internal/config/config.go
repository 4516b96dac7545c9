// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"

	"github.com/hwen6/loan-ledger/pkg/constants"
	"github.com/hwen6/loan-ledger/pkg/validation"
	"github.com/spf13/viper"
)

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = constants.DateLayout

// Configuration holds all configuration for loan-ledger.
type Configuration struct {
	Loan      Loan
	Scenarios []Scenario
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, xlsx, pdf
	File   string `yaml:"file,omitempty"`   // destination; required for xlsx and pdf
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory reader; the HTTP handlers use this for uploaded configs.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ActiveScenarios returns the scenarios flagged active, in config order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	profile := validation.LoanProfile{
		Principal:        c.Loan.Principal,
		TermMonths:       c.Loan.TermMonths(),
		FirstPaymentDate: c.Loan.FirstPaymentDate,
	}

	var scenarios []validation.ScenarioProfile
	for _, scenario := range c.Scenarios {
		scenarioProfile := validation.ScenarioProfile{
			Name:             scenario.Name,
			Active:           scenario.Active,
			UseNationalRates: scenario.UseNationalRates,
		}
		for _, change := range scenario.RateChanges {
			scenarioProfile.RateChanges = append(scenarioProfile.RateChanges, validation.RateChangePoint{
				Date: change.Date,
				Rate: change.Rate,
			})
		}
		for _, prepayment := range scenario.Prepayments {
			scenarioProfile.Prepayments = append(scenarioProfile.Prepayments, validation.PrepaymentPoint{
				Date:   prepayment.Date,
				Amount: prepayment.Amount,
			})
		}
		scenarios = append(scenarios, scenarioProfile)
	}

	validator := validation.ConfigValidator{
		Loan:      profile,
		Scenarios: scenarios,
	}

	return validator.ValidateAll()
}
