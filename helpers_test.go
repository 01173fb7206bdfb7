package xmlvalidate

import (
	"testing"

	"github.com/agentflare-ai/go-xmldom"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) xmldom.Document {
	t.Helper()
	doc, err := ParseDocument([]byte(text), "test.xml")
	require.NoError(t, err)
	return doc
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
