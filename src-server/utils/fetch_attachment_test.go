package utils_test

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"guildkeeper/src-server/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAttachment(t *testing.T) {
	body := []byte(`[{"title":"a","content":"b"}]`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	defer srv.Close()
	ctx := context.Background()

	data, digest, err := utils.FetchAttachment(ctx, srv.Client(), srv.URL+"/file.json", 1024)
	require.NoError(t, err)
	assert.Equal(t, body, data)
	assert.Equal(t, fmt.Sprintf("%x", sha256.Sum256(body)), digest)

	_, _, err = utils.FetchAttachment(ctx, srv.Client(), srv.URL+"/file.json", 4)
	assert.ErrorContains(t, err, "larger than")

	_, _, err = utils.FetchAttachment(ctx, srv.Client(), srv.URL+"/missing", 1024)
	assert.Error(t, err)
}
