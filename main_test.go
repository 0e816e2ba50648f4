package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ankurkotwal/fitcard/fc"
	"github.com/ankurkotwal/fitcard/fc/common"
)

func TestCardsSerial(t *testing.T) {
	router := getTestServer(t)
	for n := 0; n < 5; n++ {
		checkCards(t, router)
	}
}

func TestCardsConc(t *testing.T) {
	router := getTestServer(t)
	var wg sync.WaitGroup
	for n := 0; n < 5; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			checkCards(t, router)
		}()
	}
	wg.Wait()
}

func checkCards(t *testing.T, router *gin.Engine) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test/cards", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Status %d", w.Code)
		return
	}
	if n := strings.Count(w.Body.String(), "data:image/jpeg;base64,"); n != 2 {
		t.Errorf("Expected 2 cards, got %d", n)
	}
}

func getTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	config, err := common.LoadConfig("config/config.yaml")
	if err != nil {
		t.Fatal(err)
	}
	files, err := fc.GetFilesFromDir("testdata/cards")
	if err != nil {
		t.Fatal(err)
	}
	router, _ := fc.GetServer(config, true, files)
	return router
}
