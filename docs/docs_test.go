package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerRegistrado(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec))
	assert.Contains(t, spec.Paths["/api/stock-moves/credit-purchase"], "post")
	assert.Contains(t, spec.Paths["/api/suppliers/{id}/statement.pdf"], "get")
	assert.Contains(t, spec.Paths["/api/payable-ledgers"], "post")
}
