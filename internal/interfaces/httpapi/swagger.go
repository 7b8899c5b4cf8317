package httpapi

import (
	_ "embed"
	"io"
	"net/http"
	"strings"
)

const openAPIPath = "/openapi.yaml"

//go:embed openapi.yaml
var openAPIDocument []byte

// swaggerPage loads swagger-ui from the public CDN and points it at openAPIPath.
var swaggerPage = strings.ReplaceAll(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Cricket Fantasy API</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="docs"></div>
<script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({ url: "{{spec}}", dom_id: "#docs", deepLinking: true });
</script>
</body>
</html>`, "{{spec}}", openAPIPath)

func (h *Handler) OpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(openAPIDocument)
}

func (h *Handler) SwaggerUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, swaggerPage)
}
