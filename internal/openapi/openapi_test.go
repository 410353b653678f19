package openapi_test

import (
	"context"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/blockkit/internal/openapi"
	_ "github.com/reoring/blockkit/surface"
)

func TestBuild_ProjectsCatalog(t *testing.T) {
	doc, err := openapi.Build(context.Background(), openapi.Options{})
	require.NoError(t, err)
	assert.Equal(t, openapi.Version, doc.OpenAPI)
	assert.Equal(t, "Block Kit", doc.Info.Title)

	schemas := doc.Components.Schemas
	for _, name := range []string{"surface", "block", "actions_element", "image", "image_block", "modal", "message"} {
		require.Contains(t, schemas, name)
	}
	assert.Len(t, schemas["actions_element"].Value.OneOf, 14)

	elements := schemas["actions"].Value.Properties["elements"].Value
	require.NotNil(t, elements.MaxItems)
	assert.EqualValues(t, 5, *elements.MaxItems)
	assert.EqualValues(t, 1, elements.MinItems)
	assert.Equal(t, "#/components/schemas/actions_element", elements.Items.Ref)
	assert.Same(t, schemas["actions_element"].Value, elements.Items.Value, "refs resolve to the component")

	typ := schemas["header"].Value.Properties["type"].Value
	assert.Equal(t, []any{"header"}, typ.Enum)
	assert.True(t, schemas["header"].Value.AdditionalProperties.Has != nil && !*schemas["header"].Value.AdditionalProperties.Has)
}

func TestMarshal(t *testing.T) {
	doc, err := openapi.Build(context.Background(), openapi.Options{Title: "Slack surfaces", Version: "2"})
	require.NoError(t, err)
	b, err := openapi.Marshal(doc)
	require.NoError(t, err)

	var back struct {
		OpenAPI string `json:"openapi"`
		Info    struct {
			Title string `json:"title"`
		} `json:"info"`
		Components struct {
			Schemas map[string]json.RawMessage `json:"schemas"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "3.0.3", back.OpenAPI)
	assert.Equal(t, "Slack surfaces", back.Info.Title)
	assert.Contains(t, string(back.Components.Schemas["section"]), `"#/components/schemas/section_accessory"`)
}
