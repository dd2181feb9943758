package router

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/erp/invoicing/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSwagger_ServesDocument(t *testing.T) {
	engine := gin.New()
	RegisterSwagger(engine, middleware.SwaggerConfig{Enabled: true})

	w := serve(engine, http.MethodGet, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "Invoicing API", doc.Info.Title)
	assert.Equal(t, "/api/v1", doc.BasePath)
	assert.Contains(t, doc.Paths["/invoices/{id}/balance"], "get")
	assert.Contains(t, doc.Paths["/payments/delete"], "post")
	assert.Contains(t, doc.Paths["/items/{id}"], "patch")
}

// toSwaggerPath turns gin's :param segments into {param}
func toSwaggerPath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if strings.HasPrefix(s, ":") {
			segments[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

func TestRegisterSwagger_DocumentsEveryRoute(t *testing.T) {
	engine := gin.New()
	RegisterSwagger(engine, middleware.SwaggerConfig{Enabled: true})

	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(serve(engine, http.MethodGet, "/swagger/doc.json").Body.Bytes(), &doc))

	for _, registrar := range Groups(Handlers{}) {
		group := registrar.(*DomainGroup)
		for _, route := range group.routes {
			path := toSwaggerPath(group.Prefix() + route.path)
			assert.Contains(t, doc.Paths[path], strings.ToLower(route.method), "%s %s", route.method, path)
		}
	}
}

func TestRegisterSwagger_Disabled(t *testing.T) {
	engine := gin.New()
	RegisterSwagger(engine, middleware.SwaggerConfig{Enabled: false})

	w := serve(engine, http.MethodGet, "/swagger/doc.json")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
