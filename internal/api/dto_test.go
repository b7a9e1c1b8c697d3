package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
)

func TestMappingRoundTrip(t *testing.T) {
	todos := []model.Todo{
		{},
		{UserID: 1, ID: 1, Title: "delectus aut autem", Completed: false},
		{UserID: 9, ID: 200, Title: "ipsam aperiam voluptates", Completed: true},
	}
	for _, todo := range todos {
		req := ToRequest(todo)
		b, err := json.Marshal(req)
		require.NoError(t, err)

		var resp TodoResponse
		require.NoError(t, json.Unmarshal(b, &resp))
		assert.Equal(t, todo, resp.ToModel())
	}
}

func TestWireSchema(t *testing.T) {
	b, err := json.Marshal(ToRequest(model.Todo{UserID: 2, ID: 5, Title: "x", Completed: true}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":2,"id":5,"title":"x","completed":true}`, string(b))
}

func TestResponseIgnoresUnknownFields(t *testing.T) {
	var resp TodoResponse
	err := json.Unmarshal([]byte(`{"userId":1,"id":3,"title":"t","completed":true,"dueDate":"tomorrow"}`), &resp)
	require.NoError(t, err)
	assert.Equal(t, model.Todo{UserID: 1, ID: 3, Title: "t", Completed: true}, resp.ToModel())
}

func TestToModelsPreservesOrder(t *testing.T) {
	got := ToModels([]TodoResponse{{ID: 3}, {ID: 1}, {ID: 2}})
	require.Len(t, got, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{got[0].ID, got[1].ID, got[2].ID})
	assert.NotNil(t, ToModels(nil))
}

func TestResponseRequiresAllFields(t *testing.T) {
	cases := map[string]string{
		"no id":        `{"userId":1,"title":"t","completed":false}`,
		"no title":     `{"userId":1,"id":3,"completed":false}`,
		"null title":   `{"userId":1,"id":3,"title":null,"completed":false}`,
		"no userId":    `{"id":3,"title":"t","completed":false}`,
		"no completed": `{"userId":1,"id":3,"title":"t"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var resp TodoResponse
			assert.ErrorContains(t, json.Unmarshal([]byte(body), &resp), "todo missing")
		})
	}

	var list []TodoResponse
	err := json.Unmarshal([]byte(`[{"userId":1,"id":1,"title":"a","completed":true},{"id":2}]`), &list)
	assert.ErrorContains(t, err, "todo missing userId, title, completed")
}
