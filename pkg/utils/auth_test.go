package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/engagement-go/internal/domain/user"
	"github.com/linskybing/engagement-go/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetActorFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := GetActorFromContext(c)
	assert.Error(t, err)

	c.Set(ClaimsKey, "not claims")
	_, err = GetUserIDFromContext(c)
	assert.Error(t, err)

	c.Set(ClaimsKey, &types.Claims{UserID: 4, Role: user.RoleProvider})
	actor, err := GetActorFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, user.Actor{ID: 4, Role: user.RoleProvider}, actor)
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, err := ParseIDParam(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	for _, bad := range []string{"", "0", "-3", "abc"} {
		c.Params = gin.Params{{Key: "id", Value: bad}}
		_, err := ParseIDParam(c, "id")
		assert.Error(t, err, bad)
	}
}

func TestParseOptionalIDQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/x", nil)
	got, err := ParseOptionalIDQuery(c, "campaign_id")
	require.NoError(t, err)
	assert.Nil(t, got)

	c.Request = httptest.NewRequest("GET", "/x?campaign_id=9", nil)
	got, err = ParseOptionalIDQuery(c, "campaign_id")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(9), *got)

	c.Request = httptest.NewRequest("GET", "/x?campaign_id=nine", nil)
	_, err = ParseOptionalIDQuery(c, "campaign_id")
	assert.Error(t, err)
}
