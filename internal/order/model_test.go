package order

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/storex/internal/money"
)

func TestOrderJSON_CarriesBothIDKeys(t *testing.T) {
	o := Order{ID: "o1", UserID: "u1", Total: money.MustParse("12.5"), OrderStatus: StatusPending}

	raw, err := json.Marshal(o)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "o1", got["id"])
	assert.Equal(t, "o1", got["_id"])
	assert.Equal(t, "12.50", got["total"])
	assert.Equal(t, "PENDING", got["orderStatus"])

	var back Order
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, "o1", back.ID)

	raw, err = json.Marshal(&Detail{ID: "o2", Address: &Address{ID: "a1", City: "Springfield"}})
	require.NoError(t, err)
	got = nil
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "o2", got["_id"])
	assert.Equal(t, "Springfield", got["address"].(map[string]any)["city"])
}
