package database

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewPoolRejectsBadURL(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	_, err := NewPool(context.Background(), "postgres://%zz", 4, time.Second, logger)
	assert.ErrorContains(t, err, "parse database url")
}
