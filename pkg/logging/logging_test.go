package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphql-toolkit/core/pkg/logging"
)

func TestNoop_DoesNotPanicOnUse(t *testing.T) {
	l := logging.Noop()
	assert.NotPanics(t, func() {
		l.Debug("test message")
		l.Info("test message")
		l.Error("test message")
	})
}

func TestNewZap_ReturnsUsableLogger(t *testing.T) {
	l := logging.NewZap()
	assert.NotNil(t, l)
	assert.NotPanics(t, func() {
		l.Debug("test message")
	})
}
