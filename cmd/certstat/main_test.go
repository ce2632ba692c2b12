package main

import (
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	if os.Getenv("CERTSTAT_TEST_LOG") == "" {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}
	os.Exit(m.Run())
}
