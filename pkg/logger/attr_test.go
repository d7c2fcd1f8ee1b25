package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/notifykit/pkg/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("recipients", slog.Int("email", 2), slog.Int("sms", 1))
	assert.Equal(t, "recipients", attr.Key)
	assert.Equal(t, slog.KindGroup, attr.Value.Kind())
	assert.Len(t, attr.Value.Group(), 2)
}

func TestErrors(t *testing.T) {
	t.Parallel()

	t.Run("skips nil errors", func(t *testing.T) {
		attr := logger.Errors(nil, errors.New("a"), nil, errors.New("b"))
		assert.Equal(t, "errors", attr.Key)
		group := attr.Value.Group()
		assert.Len(t, group, 2)
		assert.Equal(t, "1", group[0].Key)
		assert.Equal(t, "3", group[1].Key)
	})

	t.Run("empty when all nil", func(t *testing.T) {
		assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
	})
}

func TestError(t *testing.T) {
	t.Parallel()
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.Equal(t, "error", logger.Error(errors.New("x")).Key)
}

func TestDomainAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.AttemptID("").Equal(slog.Attr{}))
	assert.Equal(t, "abc", logger.AttemptID("abc").Value.String())
	assert.True(t, logger.MessageID("").Equal(slog.Attr{}))
	assert.Equal(t, "message_id", logger.MessageID("m-1").Key)
	assert.Equal(t, int64(42), logger.ContactID(42).Value.Int64())
	assert.Equal(t, "category_id", logger.CategoryID(7).Key)
	assert.Equal(t, "email", logger.Channel("email").Value.String())
	assert.Equal(t, "recipient_kind", logger.RecipientKind("multiple").Key)
	assert.Equal(t, "sending", logger.State("sending").Value.String())
	assert.Equal(t, int64(3), logger.Count("completed", 3).Value.Int64())
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
	assert.Equal(t, "component", logger.Component("dispatcher").Key)
}
