package swagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentListsOperations(t *testing.T) {
	var doc struct {
		Swagger string                            `json:"swagger"`
		Paths   map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))
	assert.Equal(t, "2.0", doc.Swagger)

	for _, path := range []string{
		"/health",
		"/version",
		"/api/v1/settings",
		"/api/v1/shows",
		"/api/v1/shows/{id}",
		"/api/v1/schedule/slots",
		"/api/v1/schedule/slots/recurring",
		"/api/v1/schedule/slots/{id}",
		"/api/v1/schedule/on-air",
		"/api/v1/schedule/purge-corrupt",
		"/api/v1/recordings",
		"/api/v1/recordings/{id}",
		"/api/v1/recordings/{id}/download",
		"/api/v1/recordings/{id}/trim",
		"/api/v1/recordings/{id}/fade",
		"/api/v1/recordings/{id}/normalize",
		"/api/v1/recorder/status",
		"/api/v1/episodes",
		"/api/v1/episodes/{id}",
		"/api/v1/feed",
	} {
		assert.Contains(t, doc.Paths, path)
	}

	assert.Contains(t, doc.Paths["/api/v1/schedule/slots"], "post")
	assert.Contains(t, doc.Paths["/api/v1/recordings/{id}/trim"], "post")
}
