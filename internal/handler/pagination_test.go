package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"devlink/backend/internal/errorx"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		want       Page
		wantOffset int
		wantErr    bool
	}{
		{name: "defaults", query: "", want: Page{Page: 1, Limit: 20}, wantOffset: 0},
		{name: "explicit", query: "page=3&limit=10", want: Page{Page: 3, Limit: 10}, wantOffset: 20},
		{name: "last allowed page", query: "page=10000&limit=100", want: Page{Page: 10000, Limit: 100}, wantOffset: 999900},
		{name: "page zero", query: "page=0", wantErr: true},
		{name: "page not a number", query: "page=two", wantErr: true},
		{name: "page past the bound", query: "page=10001", wantErr: true},
		{name: "page at int max", query: "page=9223372036854775807&limit=100", wantErr: true},
		{name: "limit zero", query: "limit=0", wantErr: true},
		{name: "limit too large", query: "limit=101", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

			got, err := parsePage(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errorx.BadRequest, errorx.CodeOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOffset, got.Offset())
		})
	}
}
