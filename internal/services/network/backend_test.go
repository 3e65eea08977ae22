package network_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/riordanpawley/daybook/internal/apitest"
	"github.com/riordanpawley/daybook/internal/services/api"
	"github.com/riordanpawley/daybook/internal/services/network"
	"github.com/stretchr/testify/assert"
)

func TestStatusChecker_AgainstBackend(t *testing.T) {
	srv := apitest.NewServer(t)
	client := api.NewClient(srv.URL, srv.Client(), nil)
	checker := network.NewStatusChecker(client, nil)

	assert.True(t, checker.Check(context.Background()))

	srv.Override(http.MethodGet, "/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	assert.False(t, checker.Check(context.Background()))
	assert.False(t, checker.IsOnline())
}
