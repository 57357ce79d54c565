package tests

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

func TestMain(m *testing.M) {
	godotenv.Load(".env.test") // nolint

	os.Exit(m.Run())
}
