package mediator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-go/internal/application/mediator"
)

type pingQuery struct{ Text string }

type pingHandler struct{ seenID string }

func (h *pingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	h.seenID = mediator.RequestIDFromContext(ctx)
	return request.(*pingQuery).Text, nil
}

func TestMediator_SendThroughMiddleware(t *testing.T) {
	// Arrange
	m := mediator.NewMediator()
	handler := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, handler))

	var order []string
	m.Use(func(ctx context.Context, r mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		order = append(order, "outer")
		return next(ctx, r)
	})
	m.Use(mediator.RequestIDMiddleware())
	m.Use(func(ctx context.Context, r mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		order = append(order, "inner")
		return next(ctx, r)
	})

	// Act
	resp, err := m.Send(context.Background(), &pingQuery{Text: "pong"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "pong", resp)
	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.NotEmpty(t, handler.seenID)
}

func TestMediator_KeepsExistingRequestID(t *testing.T) {
	m := mediator.NewMediator()
	handler := &pingHandler{}
	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, handler))
	m.Use(mediator.RequestIDMiddleware())

	_, err := m.Send(mediator.WithRequestID(context.Background(), "fixed"), &pingQuery{})

	require.NoError(t, err)
	assert.Equal(t, "fixed", handler.seenID)
}

func TestMediator_Errors(t *testing.T) {
	m := mediator.NewMediator()

	_, err := m.Send(context.Background(), nil)
	assert.Error(t, err)

	_, err = m.Send(context.Background(), &pingQuery{})
	assert.ErrorContains(t, err, "no handler registered")

	require.NoError(t, mediator.RegisterHandler[*pingQuery](m, &pingHandler{}))
	assert.Error(t, mediator.RegisterHandler[*pingQuery](m, &pingHandler{}))
	assert.Error(t, m.Register(nil, &pingHandler{}))
}
