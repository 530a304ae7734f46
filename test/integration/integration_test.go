//go:build integration

// Package integration provides BDD integration tests using Godog/Cucumber.
package integration

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/life-index/backend/test/integration/steps"
)

// TestFeatures runs the feature files against an in-process server backed
// by sqlite, miniredis and a fake Resend API.
func TestFeatures(t *testing.T) {
	opts := godog.Options{
		Format:      "pretty",
		Paths:       []string{"features"},
		Output:      colors.Colored(os.Stdout),
		Concurrency: 1, // Scenarios share the database, redis and email fakes
		Randomize:   0,
		Strict:      true,
		TestingT:    t,
	}

	if tags := os.Getenv("GODOG_TAGS"); tags != "" {
		opts.Tags = tags
	}
	if format := os.Getenv("GODOG_FORMAT"); format != "" {
		opts.Format = format
	}

	suite := godog.TestSuite{
		Name:                 "life-index-api",
		ScenarioInitializer:  steps.InitializeScenario,
		TestSuiteInitializer: steps.InitializeTestSuite,
		Options:              &opts,
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
