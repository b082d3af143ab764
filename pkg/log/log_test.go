package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestWithFields_DevelopmentFilter(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	buf := &bytes.Buffer{}
	base := logrus.New()
	base.SetOutput(buf)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	l := &logger{entry: logrus.NewEntry(base)}
	l.WithFields(Fields{"month": "2024-03", "internal_detail": "x"}).Info("teste")

	assert.Contains(t, buf.String(), "month=2024-03")
	assert.NotContains(t, buf.String(), "internal_detail")
}

func TestWithFields_Production(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	buf := &bytes.Buffer{}
	base := logrus.New()
	base.SetOutput(buf)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	ctx, id := WithCorrelationID(context.Background())
	l := &logger{entry: logrus.NewEntry(base)}
	l.WithContext(ctx).WithField("rows", 3).Info("teste")

	assert.Contains(t, buf.String(), "correlation_id="+id)
	assert.Contains(t, buf.String(), "rows=3")
}
