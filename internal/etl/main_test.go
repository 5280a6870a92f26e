package etl

import (
	"os"
	"testing"

	"github.com/BartekS5/personbatch/pkg/logger"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.SetLogger(zap.NewNop())
	os.Exit(m.Run())
}
