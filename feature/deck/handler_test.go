package deck

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"card-vault/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp() (*fiber.App, *mocks.Memory) {
	app := fiber.New()
	store := mocks.NewMemory()
	handler := NewHandler(NewService(store, testCfg, zap.NewNop()))
	handler.RegisterRoutes(app)
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func TestUploadThenListDeck(t *testing.T) {
	app, store := setupTestApp()
	img := base64.StdEncoding.EncodeToString([]byte("<svg/>"))

	status, body := doJSON(t, app, "POST", "/decks/Elves",
		fmt.Sprintf(`{"cards":[{"name":"elf1","svgBase64":"%s"}]}`, img))
	require.Equal(t, 201, status)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, []string{"Elves/elf1.svg"}, store.Keys())

	status, body = doJSON(t, app, "GET", "/decks/Elves", "")
	require.Equal(t, 200, status)
	assert.Equal(t, "Elves", body["title"])
	assert.Equal(t, []any{"Elves/elf1.svg"}, body["keys"])
}

func TestUploadRejectsBadEntryWithIndex(t *testing.T) {
	app, store := setupTestApp()
	img := base64.StdEncoding.EncodeToString([]byte("<svg/>"))

	status, body := doJSON(t, app, "POST", "/decks/Elves",
		fmt.Sprintf(`{"cards":[{"name":"elf1","svgBase64":"%s"},{"name":"elf2"}]}`, img))
	assert.Equal(t, 400, status)
	assert.Contains(t, body["error"], "card 1")
	// Validation runs before any write.
	assert.Empty(t, store.Keys())
}

func TestDeleteDeckEndToEnd(t *testing.T) {
	app, _ := setupTestApp()
	img := base64.StdEncoding.EncodeToString([]byte("<svg/>"))

	status, _ := doJSON(t, app, "POST", "/decks/Elves",
		fmt.Sprintf(`{"cards":[{"name":"elf1","svgBase64":"%s"},{"name":"elf2","pngBase64":"%s"}]}`, img, img))
	require.Equal(t, 201, status)

	status, body := doJSON(t, app, "DELETE", "/decks/Elves", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, float64(2), body["deleted"])

	status, _ = doJSON(t, app, "DELETE", "/decks/Elves", "")
	assert.Equal(t, 404, status)
}

func TestListAllDecksEndToEnd(t *testing.T) {
	app, _ := setupTestApp()
	img := base64.StdEncoding.EncodeToString([]byte("<svg/>"))

	for _, deck := range []string{"Elves", "Dragons"} {
		status, _ := doJSON(t, app, "POST", "/decks/"+deck,
			fmt.Sprintf(`{"cards":[{"name":"one","svgBase64":"%s"}]}`, img))
		require.Equal(t, 201, status)
	}

	req := httptest.NewRequest("GET", "/decks", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var decks []Deck
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decks))
	require.Len(t, decks, 2)

	titles := []string{decks[0].Title, decks[1].Title}
	assert.ElementsMatch(t, []string{"Elves", "Dragons"}, titles)
}
