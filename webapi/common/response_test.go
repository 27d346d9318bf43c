package common_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/amirasaad/banking/pkg/domain"
	"github.com/amirasaad/banking/webapi/common"
	"github.com/stretchr/testify/assert"
)

func TestErrorToStatusCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.Validationf("bad input"), http.StatusBadRequest},
		{"forbidden", domain.Forbiddenf("no"), http.StatusForbidden},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("%w: account x", domain.ErrNotFound), http.StatusNotFound},
		{"conflict", domain.ErrConflict, http.StatusConflict},
		{"invalid state", domain.InvalidStatef("inactive"), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, common.ErrorToStatusCode(tc.err))
		})
	}
}
